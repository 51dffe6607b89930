package repository

import (
	"context"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"todoapi/internal/adapter/database/postgres"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

type TodoRepository struct {
	db *postgres.DB
}

func NewTodoRepository(db *postgres.DB) port.TodoRepository {
	return &TodoRepository{db: db}
}

func (tr *TodoRepository) ListByUser(ctx context.Context, userID string) ([]domain.Todo, error) {
	query, args, err := tr.db.QueryBuilder.Select("todo_id", "text", "completed", "user_id").
		From("todo").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("todo_id ASC").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.Query(ctx, query, args...)

	if err != nil {
		slog.Error("Error fetching todos", "error", err)
		return nil, err
	}

	defer rows.Close()

	todos := make([]domain.Todo, 0)

	for rows.Next() {
		var todo domain.Todo
		var completed bool

		if err := rows.Scan(&todo.ID, &todo.Text, &completed, &todo.UserID); err != nil {
			return nil, err
		}

		todo.Status = domain.StatusFromCompleted(completed)
		todos = append(todos, todo)
	}

	return todos, rows.Err()
}

func (tr *TodoRepository) NextID(ctx context.Context) (int64, error) {
	var id int64

	if err := tr.db.QueryRow(ctx, "SELECT nextval('todo_id_seq')").Scan(&id); err != nil {
		return 0, err
	}

	return id, nil
}

func (tr *TodoRepository) Add(ctx context.Context, todo domain.Todo) error {
	query, args, err := tr.db.QueryBuilder.Insert("todo").
		Columns("todo_id", "text", "completed", "user_id").
		Values(todo.ID, todo.Text, todo.Status.Completed(), todo.UserID).
		ToSql()

	if err != nil {
		return err
	}

	if _, err := tr.db.Exec(ctx, query, args...); err != nil {
		slog.Error("Insert failed", "error", err, "todo_id", todo.ID)
		return err
	}

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

	var todo domain.Todo
	var completed bool

	err = tr.db.QueryRow(ctx, query, args...).Scan(&todo.ID, &todo.Text, &completed, &todo.UserID)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Todo{}, domain.ErrTodoNotFound
	}

	if err != nil {
		return domain.Todo{}, err
	}

	todo.Status = domain.StatusFromCompleted(completed)

	return todo, nil
}

func (tr *TodoRepository) Update(ctx context.Context, todo domain.Todo) error {
	query, args, err := tr.db.QueryBuilder.Update("todo").
		Set("text", todo.Text).
		Set("completed", todo.Status.Completed()).
		Where(sq.Eq{"todo_id": todo.ID}).
		Where(sq.Eq{"user_id": todo.UserID}).
		ToSql()

	if err != nil {
		return err
	}

	tag, err := tr.db.Exec(ctx, query, args...)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}

	return nil
}

func (tr *TodoRepository) Delete(ctx context.Context, todoID int64, userID string) error {
	query, args, err := tr.db.QueryBuilder.Delete("todo").
		Where(sq.Eq{"todo_id": todoID}).
		Where(sq.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return err
	}

	tag, err := tr.db.Exec(ctx, query, args...)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}

	return nil
}
