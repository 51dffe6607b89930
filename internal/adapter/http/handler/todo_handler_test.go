package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
)

type TodoHandlerSuite struct {
	suite.Suite
	Router *gin.Engine
}

func (s *TodoHandlerSuite) SetupTest() {
	s.Router = setupTestRouter()
}

func TestTodoHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TodoHandlerSuite))
}

func (s *TodoHandlerSuite) TestGetTodosRequiresLogin() {
	client := newAPIClient(s.Router)

	rr := client.do("GET", "/api/todos", "")

	Expect(rr.Code).To(Equal(http.StatusForbidden))
}

func (s *TodoHandlerSuite) TestGetTodosWithSessionButNoLogin() {
	client := newAPIClient(s.Router)
	client.FetchCsrfToken()

	rr := client.do("GET", "/api/todos", "")

	Expect(rr.Code).To(Equal(http.StatusForbidden))
}

func (s *TodoHandlerSuite) TestGetTodosEmptyIsAnArray() {
	client := newAPIClient(s.Router)
	client.SignupAndLogin("alice", "pass1234")

	rr := client.do("GET", "/api/todos", "")

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(rr.Body.String()).To(Equal("[]"))
}

func (s *TodoHandlerSuite) TestCreateTodo() {
	client := newAPIClient(s.Router)
	client.SignupAndLogin("alice", "pass1234")

	rr := client.do("POST", "/api/todos", `{"text": "buy milk"}`)

	Expect(rr.Code).To(Equal(http.StatusOK))

	todo := decodeTodo(rr)

	Expect(todo.ID).To(BeNumerically(">", 0))
	Expect(todo.Text).To(Equal("buy milk"))
	Expect(todo.Completed).To(BeFalse())
}

func (s *TodoHandlerSuite) TestCreateTodoValidationError() {
	client := newAPIClient(s.Router)
	client.SignupAndLogin("alice", "pass1234")

	rr := client.do("POST", "/api/todos", `{}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	data := decodeError(rr)

	Expect(data.Error.Code).To(Equal("VALIDATION_ERROR"))
}

func (s *TodoHandlerSuite) TestCreateTodoWithoutCsrfToken() {
	client := newAPIClient(s.Router)
	client.SignupAndLogin("alice", "pass1234")
	client.csrfToken = ""

	rr := client.do("POST", "/api/todos", `{"text": "buy milk"}`)

	Expect(rr.Code).To(Equal(http.StatusForbidden))
}

func (s *TodoHandlerSuite) TestUpdateTodoStatus() {
	client := newAPIClient(s.Router)
	client.SignupAndLogin("alice", "pass1234")

	created := decodeTodo(client.do("POST", "/api/todos", `{"text": "buy milk"}`))

	rr := client.do("PUT", fmt.Sprintf("/api/todos/%d", created.ID), `{"completed": true}`)

	Expect(rr.Code).To(Equal(http.StatusOK))

	todo := decodeTodo(rr)

	Expect(todo.ID).To(Equal(created.ID))
	Expect(todo.Text).To(Equal("buy milk"))
	Expect(todo.Completed).To(BeTrue())
}

func (s *TodoHandlerSuite) TestUpdateTodoMissingCompleted() {
	client := newAPIClient(s.Router)
	client.SignupAndLogin("alice", "pass1234")

	created := decodeTodo(client.do("POST", "/api/todos", `{"text": "buy milk"}`))

	rr := client.do("PUT", fmt.Sprintf("/api/todos/%d", created.ID), `{}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

func (s *TodoHandlerSuite) TestUpdateTodoBadID() {
	client := newAPIClient(s.Router)
	client.SignupAndLogin("alice", "pass1234")

	rr := client.do("PUT", "/api/todos/not-a-number", `{"completed": true}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

func (s *TodoHandlerSuite) TestUpdateTodoUnknownID() {
	client := newAPIClient(s.Router)
	client.SignupAndLogin("alice", "pass1234")

	rr := client.do("PUT", "/api/todos/999", `{"completed": true}`)

	Expect(rr.Code).To(Equal(http.StatusNotFound))
}

func (s *TodoHandlerSuite) TestDeleteTodo() {
	client := newAPIClient(s.Router)
	client.SignupAndLogin("alice", "pass1234")

	created := decodeTodo(client.do("POST", "/api/todos", `{"text": "buy milk"}`))

	rr := client.do("DELETE", fmt.Sprintf("/api/todos/%d", created.ID), "")

	Expect(rr.Code).To(Equal(http.StatusNoContent))

	todos := decodeTodos(client.do("GET", "/api/todos", ""))

	Expect(todos).To(BeEmpty())
}

func (s *TodoHandlerSuite) TestDeleteTodoUnknownID() {
	client := newAPIClient(s.Router)
	client.SignupAndLogin("alice", "pass1234")

	rr := client.do("DELETE", "/api/todos/999", "")

	Expect(rr.Code).To(Equal(http.StatusNotFound))
}

func (s *TodoHandlerSuite) TestTodosAreIsolatedPerUser() {
	alice := newAPIClient(s.Router)
	alice.SignupAndLogin("alice", "pass1234")

	bob := newAPIClient(s.Router)
	bob.SignupAndLogin("bob", "pass1234")

	created := decodeTodo(alice.do("POST", "/api/todos", `{"text": "alice task"}`))

	// bob sees nothing and cannot touch alice's todo
	Expect(decodeTodos(bob.do("GET", "/api/todos", ""))).To(BeEmpty())

	rr := bob.do("PUT", fmt.Sprintf("/api/todos/%d", created.ID), `{"completed": true}`)
	Expect(rr.Code).To(Equal(http.StatusNotFound))

	rr = bob.do("DELETE", fmt.Sprintf("/api/todos/%d", created.ID), "")
	Expect(rr.Code).To(Equal(http.StatusNotFound))
}

func (s *TodoHandlerSuite) TestFullTodoFlow() {
	client := newAPIClient(s.Router)
	client.SignupAndLogin("alice", "pass1234")

	first := decodeTodo(client.do("POST", "/api/todos", `{"text": "first"}`))
	second := decodeTodo(client.do("POST", "/api/todos", `{"text": "second"}`))

	todos := decodeTodos(client.do("GET", "/api/todos", ""))

	Expect(todos).To(HaveLen(2))
	Expect(todos[0].ID).To(Equal(first.ID))
	Expect(todos[1].ID).To(Equal(second.ID))

	client.do("PUT", fmt.Sprintf("/api/todos/%d", first.ID), `{"completed": true}`)

	todos = decodeTodos(client.do("GET", "/api/todos", ""))

	Expect(todos[0].Completed).To(BeTrue())
	Expect(todos[1].Completed).To(BeFalse())
}
