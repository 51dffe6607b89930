package port

import (
	"context"

	"todoapi/internal/core/domain"
)

type TodoRepository interface {
	// ListByUser returns the owner's todos ordered by id.
	ListByUser(ctx context.Context, userID string) ([]domain.Todo, error)
	// NextID draws the next value from the todo id sequence.
	NextID(ctx context.Context) (int64, error)
	Add(ctx context.Context, todo domain.Todo) error
	// Get is scoped by both todo id and owner; a todo belonging to another
	// user is indistinguishable from an absent one.
	Get(ctx context.Context, todoID int64, userID string) (domain.Todo, error)
	Update(ctx context.Context, todo domain.Todo) error
	Delete(ctx context.Context, todoID int64, userID string) error
}

type TodoService interface {
	List(ctx context.Context, userID string) ([]domain.Todo, error)
	Add(ctx context.Context, userID string, text string) (domain.Todo, error)
	UpdateStatus(ctx context.Context, userID string, todoID int64, status domain.TodoStatus) (domain.Todo, error)
	Delete(ctx context.Context, userID string, todoID int64) error
}
