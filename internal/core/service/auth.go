package service

import (
	"context"
	"errors"
	"log/slog"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	"todoapi/internal/core/util"
)

type AuthService struct {
	accounts port.AccountRepository
}

func NewAuthService(accounts port.AccountRepository) *AuthService {
	return &AuthService{accounts}
}

// Authenticate checks the credentials against the stored account. The two
// failure modes stay distinct in the result; the HTTP layer maps both to 401.
func (as *AuthService) Authenticate(ctx context.Context, userName string, password string) (domain.AuthenticationResult, error) {
	account, err := as.accounts.FindByProfileName(ctx, userName)

	if errors.Is(err, domain.ErrAccountNotFound) {
		return domain.AuthenticationNameNotFound(), nil
	}

	if err != nil {
		slog.Error("Auth#Authenticate", "find_by_name", err)
		return domain.AuthenticationResult{}, err
	}

	if err := util.ComparePassword(password, account.Password); err != nil {
		return domain.AuthenticationPasswordMismatch(), nil
	}

	return domain.AuthenticationSuccess(account.UserID), nil
}
