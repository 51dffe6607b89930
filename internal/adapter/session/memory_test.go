package session

import (
	"context"
	"testing"
	"time"

	"todoapi/internal/core/domain"

	. "github.com/onsi/gomega"
)

func TestMemoryStoreCreateAndGet(t *testing.T) {
	RegisterTestingT(t)

	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	sess, err := store.Create(ctx)

	Expect(err).To(BeNil())
	Expect(sess.ID).ToNot(BeEmpty())
	Expect(sess.CSRFToken).ToNot(BeEmpty())
	Expect(sess.ID).ToNot(Equal(sess.CSRFToken))
	Expect(sess.Authenticated()).To(BeFalse())

	loaded, err := store.Get(ctx, sess.ID)

	Expect(err).To(BeNil())
	Expect(loaded).To(Equal(sess))
}

func TestMemoryStoreGetUnknownID(t *testing.T) {
	RegisterTestingT(t)

	store := NewMemoryStore(time.Minute)

	_, err := store.Get(context.Background(), "no-such-session")

	Expect(err).To(MatchError(domain.ErrSessionNotFound))
}

func TestMemoryStoreSavePersistsUserID(t *testing.T) {
	RegisterTestingT(t)

	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	sess, _ := store.Create(ctx)
	sess.UserID = "user-1"

	Expect(store.Save(ctx, sess)).To(Succeed())

	loaded, err := store.Get(ctx, sess.ID)

	Expect(err).To(BeNil())
	Expect(loaded.UserID).To(Equal("user-1"))
	Expect(loaded.Authenticated()).To(BeTrue())
}

func TestMemoryStoreDelete(t *testing.T) {
	RegisterTestingT(t)

	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	sess, _ := store.Create(ctx)

	Expect(store.Delete(ctx, sess.ID)).To(Succeed())

	_, err := store.Get(ctx, sess.ID)

	Expect(err).To(MatchError(domain.ErrSessionNotFound))
}

func TestMemoryStoreSessionsAreUnique(t *testing.T) {
	RegisterTestingT(t)

	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	first, _ := store.Create(ctx)
	second, _ := store.Create(ctx)

	Expect(first.ID).ToNot(Equal(second.ID))
	Expect(first.CSRFToken).ToNot(Equal(second.CSRFToken))
}
