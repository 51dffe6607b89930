package middleware

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestAllowListExactMatch(t *testing.T) {
	RegisterTestingT(t)

	al, err := NewAllowList([]AllowRule{
		{Method: "POST", Pattern: "/api/login"},
	})

	Expect(err).To(BeNil())
	Expect(al.Allows("POST", "/api/login")).To(BeTrue())
	Expect(al.Allows("GET", "/api/login")).To(BeFalse())
	Expect(al.Allows("POST", "/api/login/extra")).To(BeFalse())
}

func TestAllowListSingleWildcardStopsAtSlash(t *testing.T) {
	RegisterTestingT(t)

	al, err := NewAllowList([]AllowRule{
		{Method: "GET", Pattern: "/api/*"},
	})

	Expect(err).To(BeNil())
	Expect(al.Allows("GET", "/api/todos")).To(BeTrue())
	Expect(al.Allows("GET", "/api/todos/1")).To(BeFalse())
}

func TestAllowListDoubleWildcardCrossesSlash(t *testing.T) {
	RegisterTestingT(t)

	al, err := NewAllowList([]AllowRule{
		{Method: "ALL", Pattern: "/public/**"},
	})

	Expect(err).To(BeNil())
	Expect(al.Allows("GET", "/public/css/site.css")).To(BeTrue())
	Expect(al.Allows("DELETE", "/public/index.html")).To(BeTrue())
	Expect(al.Allows("GET", "/private/index.html")).To(BeFalse())
}

func TestAllowListMethodAll(t *testing.T) {
	RegisterTestingT(t)

	al, err := NewAllowList([]AllowRule{
		{Method: "all", Pattern: "/api/health"},
	})

	Expect(err).To(BeNil())
	Expect(al.Allows("GET", "/api/health")).To(BeTrue())
	Expect(al.Allows("POST", "/api/health")).To(BeTrue())
}

func TestDefaultAllowRules(t *testing.T) {
	RegisterTestingT(t)

	al, err := NewAllowList(DefaultAllowRules())

	Expect(err).To(BeNil())
	Expect(al.Allows("POST", "/api/signup")).To(BeTrue())
	Expect(al.Allows("POST", "/api/login")).To(BeTrue())
	Expect(al.Allows("GET", "/api/csrf_token")).To(BeTrue())

	Expect(al.Allows("GET", "/api/todos")).To(BeFalse())
	Expect(al.Allows("POST", "/api/logout")).To(BeFalse())
}
