package domain_test

import (
	"testing"

	"todoapi/internal/core/domain"

	. "github.com/onsi/gomega"
)

func TestAuthenticationSuccessCarriesUserID(t *testing.T) {
	RegisterTestingT(t)

	result := domain.AuthenticationSuccess("user-1")

	Expect(result.Failed()).To(BeFalse())
	Expect(result.UserID()).To(Equal("user-1"))
}

func TestAuthenticationFailuresHaveNoUserID(t *testing.T) {
	RegisterTestingT(t)

	for _, result := range []domain.AuthenticationResult{
		domain.AuthenticationNameNotFound(),
		domain.AuthenticationPasswordMismatch(),
	} {
		Expect(result.Failed()).To(BeTrue())
		Expect(func() { result.UserID() }).To(Panic())
	}
}

func TestZeroAuthenticationResultIsFailed(t *testing.T) {
	RegisterTestingT(t)

	var result domain.AuthenticationResult

	Expect(result.Failed()).To(BeTrue())
}
