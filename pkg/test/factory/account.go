package factory

import (
	fab "github.com/Goldziher/fabricator"
	"golang.org/x/crypto/bcrypt"
)

// NewAccount builds an account with a bcrypt hash of "12345678" unless the
// test supplies its own Password.
func NewAccount[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	hasPassword := false

	for _, data := range customData {
		if _, exists := data["Password"]; exists {
			hasPassword = true
			break
		}
	}

	if !hasPassword {
		hash, _ := bcrypt.GenerateFromPassword([]byte("12345678"), bcrypt.DefaultCost)

		customData = append(customData, map[string]any{
			"Password": string(hash),
		})
	}

	return instance.Build(customData...)
}

func NewUserProfile[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	return instance.Build(customData...)
}
