package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	tel "todoapi/internal/core/telemetry"
)

type TodoService struct {
	repo      port.TodoRepository
	telemetry port.Telemetry
}

func NewTodoService(repo port.TodoRepository, telemetry port.Telemetry) *TodoService {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TodoService{
		repo:      repo,
		telemetry: telemetry,
	}
}

func (ts *TodoService) List(ctx context.Context, userID string) ([]domain.Todo, error) {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, "todo", "List", userID, nil)
	defer span.End()

	startTime := time.Now()

	todos, err := ts.repo.ListByUser(ctx, userID)
	ts.telemetry.RecordServiceOperation(ctx, "todo", "List", userID, time.Since(startTime), err)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(map[string]interface{}{"todo.count": len(todos)})
	span.SetStatus("ok", "")

	return todos, nil
}

// Add draws the next id from the sequence and persists a new incomplete todo.
func (ts *TodoService) Add(ctx context.Context, userID string, text string) (domain.Todo, error) {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, "todo", "Add", userID, map[string]interface{}{
		"todo.text": text,
	})
	defer span.End()

	startTime := time.Now()

	todoID, err := ts.repo.NextID(ctx)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		ts.telemetry.RecordServiceOperation(ctx, "todo", "Add", userID, time.Since(startTime), err)
		return domain.Todo{}, err
	}

	newTodo := domain.Todo{
		ID:     todoID,
		Text:   text,
		Status: domain.TodoStatusIncomplete,
		UserID: userID,
	}

	if err := ts.repo.Add(ctx, newTodo); err != nil {
		slog.Error("Todo#Add", "insert", err, "todo_id", todoID)
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		ts.telemetry.RecordServiceOperation(ctx, "todo", "Add", userID, time.Since(startTime), err)
		return domain.Todo{}, err
	}

	ts.telemetry.RecordBusinessEvent(ctx, "created", "todo", strconv.FormatInt(todoID, 10), userID, map[string]interface{}{
		"todo.id": todoID,
	})

	span.SetStatus("ok", "")
	ts.telemetry.RecordServiceOperation(ctx, "todo", "Add", userID, time.Since(startTime), nil)

	return newTodo, nil
}

// UpdateStatus replaces the status of the owner's todo. Both the lookup and
// the write are scoped by owner, so a foreign todo id reads as not found.
func (ts *TodoService) UpdateStatus(ctx context.Context, userID string, todoID int64, status domain.TodoStatus) (domain.Todo, error) {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, "todo", "UpdateStatus", userID, map[string]interface{}{
		"todo.id":     todoID,
		"todo.status": status.String(),
	})
	defer span.End()

	startTime := time.Now()

	todo, err := ts.repo.Get(ctx, todoID, userID)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		ts.telemetry.RecordServiceOperation(ctx, "todo", "UpdateStatus", userID, time.Since(startTime), err)
		return domain.Todo{}, err
	}

	changed := todo.ChangeStatus(status)

	if err := ts.repo.Update(ctx, changed); err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		ts.telemetry.RecordServiceOperation(ctx, "todo", "UpdateStatus", userID, time.Since(startTime), err)
		return domain.Todo{}, err
	}

	ts.telemetry.RecordBusinessEvent(ctx, "updated", "todo", strconv.FormatInt(todoID, 10), userID, map[string]interface{}{
		"todo.id":     todoID,
		"todo.status": status.String(),
	})

	span.SetStatus("ok", "")
	ts.telemetry.RecordServiceOperation(ctx, "todo", "UpdateStatus", userID, time.Since(startTime), nil)

	return changed, nil
}

func (ts *TodoService) Delete(ctx context.Context, userID string, todoID int64) error {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, "todo", "Delete", userID, map[string]interface{}{
		"todo.id": todoID,
	})
	defer span.End()

	startTime := time.Now()

	err := ts.repo.Delete(ctx, todoID, userID)
	ts.telemetry.RecordServiceOperation(ctx, "todo", "Delete", userID, time.Since(startTime), err)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return err
	}

	span.SetStatus("ok", "")

	return nil
}
