package session

import (
	"crypto/rand"
	"encoding/hex"
)

// newToken returns 32 random bytes hex-encoded; used for both session ids and
// CSRF tokens, which must be unguessable.
func newToken() (string, error) {
	buf := make([]byte, 32)

	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}
