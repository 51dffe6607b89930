package port

import (
	"context"

	"todoapi/internal/core/domain"
)

type RegistrationService interface {
	Register(ctx context.Context, userName string, password string) (domain.AccountRegistrationResult, error)
}

type AuthService interface {
	Authenticate(ctx context.Context, userName string, password string) (domain.AuthenticationResult, error)
}
