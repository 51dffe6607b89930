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

type AccountRepository struct {
	db        *sqlite.DB
	telemetry port.Telemetry
}

func NewAccountRepository(db *sqlite.DB, telemetry port.Telemetry) port.AccountRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &AccountRepository{
		db:        db,
		telemetry: telemetry,
	}
}

func (ar *AccountRepository) ExistsProfileName(ctx context.Context, name string) (bool, error) {
	query, args, err := ar.db.QueryBuilder.Select("COUNT(*)").
		From("user_profile").
		Where(sq.Eq{"name": name}).
		ToSql()

	if err != nil {
		return false, err
	}

	ar.telemetry.RecordRepositoryQuery(ctx, "ExistsProfileName", "account", query, args)

	var count int
	if err := ar.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
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

	ar.telemetry.RecordRepositoryQuery(ctx, "FindByProfileName", "account", query, args)

	var account domain.Account
	err = ar.db.QueryRowContext(ctx, query, args...).Scan(&account.UserID, &account.Password)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	if err != nil {
		slog.Error("Error finding account by name", "error", err)
		return domain.Account{}, err
	}

	return account, nil
}

// Register inserts the account and its profile in one transaction; a failure
// on either insert rolls both back.
func (ar *AccountRepository) Register(ctx context.Context, account domain.Account, profile domain.UserProfile) error {
	ctx, span := ar.telemetry.StartRepositorySpan(ctx, "Register", "account", map[string]interface{}{
		"db.system":    "sqlite",
		"db.operation": "INSERT",
		"user.id":      account.UserID,
	})
	defer span.End()

	startTime := time.Now()

	tx, err := ar.db.BeginTx(ctx, nil)

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return err
	}

	defer tx.Rollback()

	accountQuery, accountArgs, err := ar.db.QueryBuilder.Insert("account").
		Columns("user_id", "password").
		Values(account.UserID, account.Password).
		ToSql()

	if err != nil {
		return err
	}

	ar.telemetry.RecordRepositoryQuery(ctx, "Register", "account", accountQuery, accountArgs)

	if _, err := tx.ExecContext(ctx, accountQuery, accountArgs...); err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		ar.telemetry.RecordRepositoryOperation(ctx, "Register", "account", time.Since(startTime), err)
		return err
	}

	profileQuery, profileArgs, err := ar.db.QueryBuilder.Insert("user_profile").
		Columns("user_id", "name").
		Values(profile.UserID, profile.Name).
		ToSql()

	if err != nil {
		return err
	}

	ar.telemetry.RecordRepositoryQuery(ctx, "Register", "user_profile", profileQuery, profileArgs)

	if _, err := tx.ExecContext(ctx, profileQuery, profileArgs...); err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		ar.telemetry.RecordRepositoryOperation(ctx, "Register", "account", time.Since(startTime), err)
		return err
	}

	if err := tx.Commit(); err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		ar.telemetry.RecordRepositoryOperation(ctx, "Register", "account", time.Since(startTime), err)
		return err
	}

	ar.telemetry.RecordBusinessEvent(ctx, "registered", "account", account.UserID, account.UserID, map[string]interface{}{
		"profile.name": profile.Name,
	})

	span.SetStatus("ok", "")
	ar.telemetry.RecordRepositoryOperation(ctx, "Register", "account", time.Since(startTime), nil)

	return nil
}
