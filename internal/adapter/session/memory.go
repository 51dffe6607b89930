package session

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

// MemoryStore keeps sessions in process memory. Good for a single node and
// for tests; sessions are lost on restart.
type MemoryStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewMemoryStore(ttl time.Duration) port.SessionStore {
	return &MemoryStore{
		cache: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (ms *MemoryStore) Create(ctx context.Context) (domain.Session, error) {
	id, err := newToken()

	if err != nil {
		return domain.Session{}, err
	}

	csrfToken, err := newToken()

	if err != nil {
		return domain.Session{}, err
	}

	sess := domain.Session{
		ID:        id,
		CSRFToken: csrfToken,
		CreatedAt: time.Now(),
	}

	ms.cache.Set(sess.ID, sess, ms.ttl)

	return sess, nil
}

func (ms *MemoryStore) Get(ctx context.Context, id string) (domain.Session, error) {
	value, found := ms.cache.Get(id)

	if !found {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	sess, ok := value.(domain.Session)

	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	return sess, nil
}

// Save refreshes the TTL as a side effect, so active sessions stay alive.
func (ms *MemoryStore) Save(ctx context.Context, sess domain.Session) error {
	ms.cache.Set(sess.ID, sess, ms.ttl)
	return nil
}

func (ms *MemoryStore) Delete(ctx context.Context, id string) error {
	ms.cache.Delete(id)
	return nil
}
