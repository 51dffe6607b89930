package service_test

import (
	"context"
	"testing"

	. "todoapi/pkg/test"

	"todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	"todoapi/internal/core/service"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
)

type TodoServiceSuite struct {
	suite.Suite
	Registration port.RegistrationService
	Auth         port.AuthService
	Todos        port.TodoService
}

func (s *TodoServiceSuite) SetupTest() {
	db := InitTestDB()

	accountRepo := repository.NewAccountRepository(db, nil)
	todoRepo := repository.NewTodoRepository(db, nil)

	s.Registration = service.NewRegistrationService(accountRepo)
	s.Auth = service.NewAuthService(accountRepo)
	s.Todos = service.NewTodoService(todoRepo, nil)
}

func TestTodoServiceSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TodoServiceSuite))
}

func (s *TodoServiceSuite) signup(name string) string {
	ctx := context.Background()

	_, err := s.Registration.Register(ctx, name, "pass1234")
	Expect(err).To(BeNil())

	result, err := s.Auth.Authenticate(ctx, name, "pass1234")
	Expect(err).To(BeNil())

	return result.UserID()
}

func (s *TodoServiceSuite) TestAddCreatesIncompleteTodo() {
	userID := s.signup("alice")

	todo, err := s.Todos.Add(context.Background(), userID, "buy milk")

	Expect(err).To(BeNil())
	Expect(todo.ID).To(BeNumerically(">", 0))
	Expect(todo.Text).To(Equal("buy milk"))
	Expect(todo.Status).To(Equal(domain.TodoStatusIncomplete))
	Expect(todo.UserID).To(Equal(userID))
}

func (s *TodoServiceSuite) TestListReturnsOwnTodosInOrder() {
	ctx := context.Background()
	userID := s.signup("alice")

	first, _ := s.Todos.Add(ctx, userID, "first")
	second, _ := s.Todos.Add(ctx, userID, "second")

	todos, err := s.Todos.List(ctx, userID)

	Expect(err).To(BeNil())
	Expect(todos).To(HaveLen(2))
	Expect(todos[0].ID).To(Equal(first.ID))
	Expect(todos[1].ID).To(Equal(second.ID))
}

func (s *TodoServiceSuite) TestUpdateStatusToggles() {
	ctx := context.Background()
	userID := s.signup("alice")

	todo, _ := s.Todos.Add(ctx, userID, "task")

	updated, err := s.Todos.UpdateStatus(ctx, userID, todo.ID, domain.TodoStatusCompleted)

	Expect(err).To(BeNil())
	Expect(updated.Status).To(Equal(domain.TodoStatusCompleted))
	Expect(updated.Text).To(Equal("task"))

	reverted, err := s.Todos.UpdateStatus(ctx, userID, todo.ID, domain.TodoStatusIncomplete)

	Expect(err).To(BeNil())
	Expect(reverted.Status).To(Equal(domain.TodoStatusIncomplete))
}

func (s *TodoServiceSuite) TestUpdateStatusUnknownID() {
	userID := s.signup("alice")

	_, err := s.Todos.UpdateStatus(context.Background(), userID, 999, domain.TodoStatusCompleted)

	Expect(err).To(MatchError(domain.ErrTodoNotFound))
}

func (s *TodoServiceSuite) TestUpdateStatusOtherUsersTodo() {
	ctx := context.Background()
	alice := s.signup("alice")
	bob := s.signup("bob")

	todo, _ := s.Todos.Add(ctx, alice, "alice task")

	_, err := s.Todos.UpdateStatus(ctx, bob, todo.ID, domain.TodoStatusCompleted)

	Expect(err).To(MatchError(domain.ErrTodoNotFound))
}

func (s *TodoServiceSuite) TestDelete() {
	ctx := context.Background()
	userID := s.signup("alice")

	todo, _ := s.Todos.Add(ctx, userID, "task")

	Expect(s.Todos.Delete(ctx, userID, todo.ID)).To(Succeed())

	todos, err := s.Todos.List(ctx, userID)

	Expect(err).To(BeNil())
	Expect(todos).To(BeEmpty())
}

func (s *TodoServiceSuite) TestDeleteOtherUsersTodo() {
	ctx := context.Background()
	alice := s.signup("alice")
	bob := s.signup("bob")

	todo, _ := s.Todos.Add(ctx, alice, "alice task")

	err := s.Todos.Delete(ctx, bob, todo.ID)

	Expect(err).To(MatchError(domain.ErrTodoNotFound))
}
