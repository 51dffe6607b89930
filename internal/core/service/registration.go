package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	"todoapi/internal/core/util"
)

type RegistrationService struct {
	accounts port.AccountRepository
}

func NewRegistrationService(accounts port.AccountRepository) *RegistrationService {
	return &RegistrationService{accounts}
}

// Register creates an account plus profile for a fresh user name. A taken
// name returns the conflict sentinel without touching the database, so the
// call is an idempotent no-op on conflict.
func (rs *RegistrationService) Register(ctx context.Context, userName string, password string) (domain.AccountRegistrationResult, error) {
	exists, err := rs.accounts.ExistsProfileName(ctx, userName)

	if err != nil {
		return RegistrationFailed, err
	}

	if exists {
		return domain.RegistrationNameConflict, nil
	}

	encrypted, err := util.GenerateEncrypt(password)

	if err != nil {
		return RegistrationFailed, err
	}

	userID := uuid.NewString()

	account := domain.Account{
		UserID:   userID,
		Password: encrypted,
	}

	profile := domain.UserProfile{
		UserID: userID,
		Name:   userName,
	}

	if err := rs.accounts.Register(ctx, account, profile); err != nil {
		slog.Error("Registration#Register", "insert", err)
		return RegistrationFailed, err
	}

	return domain.RegistrationSuccess, nil
}

// RegistrationFailed is returned alongside a non-nil error; callers must check
// the error first.
const RegistrationFailed = domain.AccountRegistrationResult(-1)
