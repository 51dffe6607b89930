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

type AccountRepository struct {
	db *postgres.DB
}

func NewAccountRepository(db *postgres.DB) port.AccountRepository {
	return &AccountRepository{db: db}
}

func (ar *AccountRepository) ExistsProfileName(ctx context.Context, name string) (bool, error) {
	query, args, err := ar.db.QueryBuilder.Select("COUNT(*)").
		From("user_profile").
		Where(sq.Eq{"name": name}).
		ToSql()

	if err != nil {
		return false, err
	}

	var count int
	if err := ar.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

func (ar *AccountRepository) FindByProfileName(ctx context.Context, name string) (domain.Account, error) {
	query, args, err := ar.db.QueryBuilder.Select("a.user_id", "a.password").
		From("account a").
		Join("user_profile p ON p.user_id = a.user_id").
		Where(sq.Eq{"p.name": name}).
		ToSql()

	if err != nil {
		return domain.Account{}, err
	}

	var account domain.Account
	err = ar.db.QueryRow(ctx, query, args...).Scan(&account.UserID, &account.Password)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	if err != nil {
		slog.Error("Error finding account by name", "error", err)
		return domain.Account{}, err
	}

	return account, nil
}

func (ar *AccountRepository) Register(ctx context.Context, account domain.Account, profile domain.UserProfile) error {
	tx, err := ar.db.Begin(ctx)

	if err != nil {
		return err
	}

	defer tx.Rollback(ctx)

	accountQuery, accountArgs, err := ar.db.QueryBuilder.Insert("account").
		Columns("user_id", "password").
		Values(account.UserID, account.Password).
		ToSql()

	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, accountQuery, accountArgs...); err != nil {
		return err
	}

	profileQuery, profileArgs, err := ar.db.QueryBuilder.Insert("user_profile").
		Columns("user_id", "name").
		Values(profile.UserID, profile.Name).
		ToSql()

	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, profileQuery, profileArgs...); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
