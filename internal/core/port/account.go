package port

import (
	"context"

	"todoapi/internal/core/domain"
)

type AccountRepository interface {
	// ExistsProfileName reports whether a profile already claimed the name.
	ExistsProfileName(ctx context.Context, name string) (bool, error)
	// FindByProfileName returns the account joined through the profile name.
	// Returns domain.ErrAccountNotFound when the name is unknown.
	FindByProfileName(ctx context.Context, name string) (domain.Account, error)
	// Register inserts the account and its profile in one transaction.
	Register(ctx context.Context, account domain.Account, profile domain.UserProfile) error
}
