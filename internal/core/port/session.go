package port

import (
	"context"

	"todoapi/internal/core/domain"
)

// SessionStore keeps sessions keyed by their opaque id. Backends are
// interchangeable: in-process for a single node, Redis when sessions must
// survive restarts.
type SessionStore interface {
	// Create stores and returns a fresh anonymous session with a new CSRF token.
	Create(ctx context.Context) (domain.Session, error)
	// Get returns domain.ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Delete(ctx context.Context, id string) error
}
