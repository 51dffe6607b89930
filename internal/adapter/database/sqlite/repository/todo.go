package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"

	"todoapi/internal/adapter/database/sqlite"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	tel "todoapi/internal/core/telemetry"
)

type TodoRepository struct {
	db        *sqlite.DB
	telemetry port.Telemetry
}

func NewTodoRepository(db *sqlite.DB, telemetry port.Telemetry) port.TodoRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TodoRepository{
		db:        db,
		telemetry: telemetry,
	}
}

func (tr *TodoRepository) ListByUser(ctx context.Context, userID string) ([]domain.Todo, error) {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "ListByUser", "todo", map[string]interface{}{
		"db.system": "sqlite",
		"db.table":  "todo",
		"user.id":   userID,
	})
	defer span.End()

	startTime := time.Now()

	query, args, err := tr.db.QueryBuilder.Select("todo_id", "text", "completed", "user_id").
		From("todo").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("todo_id ASC").
		ToSql()

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return nil, err
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "ListByUser", "todo", query, args)

	rows, err := tr.db.QueryContext(ctx, query, args...)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		tr.telemetry.RecordRepositoryOperation(ctx, "ListByUser", "todo", time.Since(startTime), err)
		return nil, err
	}

	defer rows.Close()

	todos := make([]domain.Todo, 0)

	for rows.Next() {
		todo, err := scanTodo(rows)

		if err != nil {
			span.SetStatus("error", err.Error())
			span.RecordError(err)
			return nil, err
		}

		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(map[string]interface{}{"db.rows_returned": len(todos)})
	span.SetStatus("ok", "")
	tr.telemetry.RecordRepositoryOperation(ctx, "ListByUser", "todo", time.Since(startTime), nil)

	return todos, nil
}

// NextID appends a row to the sequence table and reads back the generated
// rowid; sqlite AUTOINCREMENT guarantees it never repeats.
func (tr *TodoRepository) NextID(ctx context.Context) (int64, error) {
	result, err := tr.db.ExecContext(ctx, "INSERT INTO todo_id_sequence DEFAULT VALUES")

	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()

	if err != nil {
		return 0, err
	}

	return id, nil
}

func (tr *TodoRepository) Add(ctx context.Context, todo domain.Todo) error {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "Add", "todo", map[string]interface{}{
		"db.system":    "sqlite",
		"db.table":     "todo",
		"db.operation": "INSERT",
		"todo.id":      todo.ID,
		"user.id":      todo.UserID,
	})
	defer span.End()

	startTime := time.Now()

	query, args, err := tr.db.QueryBuilder.Insert("todo").
		Columns("todo_id", "text", "completed", "user_id").
		Values(todo.ID, todo.Text, todo.Status.Completed(), todo.UserID).
		ToSql()

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return err
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "Add", "todo", query, args)

	if _, err := tr.db.ExecContext(ctx, query, args...); err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		tr.telemetry.RecordRepositoryOperation(ctx, "Add", "todo", time.Since(startTime), err)
		slog.Error("Insert failed", "error", err, "todo_id", todo.ID)
		return err
	}

	span.SetStatus("ok", "")
	tr.telemetry.RecordRepositoryOperation(ctx, "Add", "todo", time.Since(startTime), nil)

	return nil
}

func (tr *TodoRepository) Get(ctx context.Context, todoID int64, userID string) (domain.Todo, error) {
	query, args, err := tr.db.QueryBuilder.Select("todo_id", "text", "completed", "user_id").
		From("todo").
		Where(sq.Eq{"todo_id": todoID}).
		Where(sq.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "Get", "todo", query, args)

	row := tr.db.QueryRowContext(ctx, query, args...)

	var todo domain.Todo
	var completed bool

	err = row.Scan(&todo.ID, &todo.Text, &completed, &todo.UserID)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Todo{}, domain.ErrTodoNotFound
	}

	if err != nil {
		slog.Error("Error getting todo", "error", err, "todo_id", todoID)
		return domain.Todo{}, err
	}

	todo.Status = domain.StatusFromCompleted(completed)

	return todo, nil
}

func (tr *TodoRepository) Update(ctx context.Context, todo domain.Todo) error {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "Update", "todo", map[string]interface{}{
		"db.system":    "sqlite",
		"db.table":     "todo",
		"db.operation": "UPDATE",
		"todo.id":      todo.ID,
		"user.id":      todo.UserID,
	})
	defer span.End()

	startTime := time.Now()

	query, args, err := tr.db.QueryBuilder.Update("todo").
		Set("text", todo.Text).
		Set("completed", todo.Status.Completed()).
		Where(sq.Eq{"todo_id": todo.ID}).
		Where(sq.Eq{"user_id": todo.UserID}).
		ToSql()

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return err
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "Update", "todo", query, args)

	result, err := tr.db.ExecContext(ctx, query, args...)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		tr.telemetry.RecordRepositoryOperation(ctx, "Update", "todo", time.Since(startTime), err)
		return err
	}

	rowsAffected, _ := result.RowsAffected()

	if rowsAffected == 0 {
		span.SetStatus("error", domain.ErrTodoNotFound.Error())
		tr.telemetry.RecordRepositoryOperation(ctx, "Update", "todo", time.Since(startTime), domain.ErrTodoNotFound)
		return domain.ErrTodoNotFound
	}

	span.SetStatus("ok", "")
	tr.telemetry.RecordRepositoryOperation(ctx, "Update", "todo", time.Since(startTime), nil)

	return nil
}

func (tr *TodoRepository) Delete(ctx context.Context, todoID int64, userID string) error {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "Delete", "todo", map[string]interface{}{
		"db.system":    "sqlite",
		"db.table":     "todo",
		"db.operation": "DELETE",
		"todo.id":      todoID,
		"user.id":      userID,
	})
	defer span.End()

	startTime := time.Now()

	query, args, err := tr.db.QueryBuilder.Delete("todo").
		Where(sq.Eq{"todo_id": todoID}).
		Where(sq.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return err
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "Delete", "todo", query, args)

	result, err := tr.db.ExecContext(ctx, query, args...)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		tr.telemetry.RecordRepositoryOperation(ctx, "Delete", "todo", time.Since(startTime), err)
		return err
	}

	rowsAffected, _ := result.RowsAffected()

	if rowsAffected == 0 {
		span.SetStatus("error", domain.ErrTodoNotFound.Error())
		tr.telemetry.RecordRepositoryOperation(ctx, "Delete", "todo", time.Since(startTime), domain.ErrTodoNotFound)
		return domain.ErrTodoNotFound
	}

	span.SetStatus("ok", "")
	tr.telemetry.RecordRepositoryOperation(ctx, "Delete", "todo", time.Since(startTime), nil)

	return nil
}

func scanTodo(rows *sql.Rows) (domain.Todo, error) {
	var todo domain.Todo
	var completed bool

	if err := rows.Scan(&todo.ID, &todo.Text, &completed, &todo.UserID); err != nil {
		return domain.Todo{}, err
	}

	todo.Status = domain.StatusFromCompleted(completed)

	return todo, nil
}
