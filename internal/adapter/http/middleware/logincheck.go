package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"todoapi/internal/core/telemetry"

	"github.com/gin-gonic/gin"
)

// AllowRule is one allow-list entry: requests matching it skip the login
// check. Method is an HTTP method or "ALL".
type AllowRule struct {
	Method  string
	Pattern string
}

type compiledRule struct {
	method string
	re     *regexp.Regexp
}

// AllowList decides which requests may pass without an authenticated
// session. Patterns support two wildcards: `*` matches any run of
// characters except `/`, and `**` matches any run including `/`.
type AllowList struct {
	rules []compiledRule
}

func NewAllowList(rules []AllowRule) (*AllowList, error) {
	compiled := make([]compiledRule, 0, len(rules))

	for _, rule := range rules {
		re, err := compilePattern(rule.Pattern)

		if err != nil {
			return nil, fmt.Errorf("invalid allow pattern %q: %w", rule.Pattern, err)
		}

		compiled = append(compiled, compiledRule{
			method: strings.ToUpper(rule.Method),
			re:     re,
		})
	}

	return &AllowList{rules: compiled}, nil
}

func (al *AllowList) Allows(method, path string) bool {
	for _, rule := range al.rules {
		if rule.method != "ALL" && rule.method != method {
			continue
		}

		if rule.re.MatchString(path) {
			return true
		}
	}

	return false
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	var sb strings.Builder

	sb.WriteString("^")

	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '*' {
			sb.WriteString(regexp.QuoteMeta(string(pattern[i])))
			continue
		}

		if i+1 < len(pattern) && pattern[i+1] == '*' {
			sb.WriteString(".+")
			i++
			continue
		}

		sb.WriteString("[^/]+")
	}

	sb.WriteString("$")

	return regexp.Compile(sb.String())
}

// DefaultAllowRules covers the endpoints a user needs before logging in.
func DefaultAllowRules() []AllowRule {
	return []AllowRule{
		{Method: "POST", Pattern: "/api/signup"},
		{Method: "POST", Pattern: "/api/login"},
		{Method: "GET", Pattern: "/api/csrf_token"},
	}
}

// LoginCheckMiddleware rejects requests outside the allow list unless they
// carry an authenticated session. On success the user id is exposed on the
// gin context for downstream handlers.
func LoginCheckMiddleware(allowList *AllowList, metrics *telemetry.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if allowList.Allows(c.Request.Method, c.Request.URL.Path) {
			c.Next()
			return
		}

		sess, ok := GetSession(c)

		if !ok || !sess.Authenticated() {
			slog.Warn("Unauthenticated request rejected",
				"method", c.Request.Method,
				"path", c.Request.URL.Path)

			if metrics != nil {
				metrics.RecordLoginCheckDenied(c.Request.Context(), c.Request.URL.Path)
			}

			c.JSON(http.StatusForbidden, gin.H{
				"errors": []string{"Forbidden request"},
			})
			c.Abort()
			return
		}

		c.Set("x-user-id", sess.UserID)
		GetCurrent(c).Set("user_id", sess.UserID)

		c.Next()
	}
}
