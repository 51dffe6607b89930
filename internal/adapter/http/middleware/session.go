package middleware

import (
	"errors"
	"net/http"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"

	"github.com/gin-gonic/gin"
)

const SessionCookieName = "TODO_SESSION"

// SessionMiddleware resolves the session cookie into a domain.Session and
// stores it on the gin context. Requests without a valid cookie continue
// with no session; the login check decides whether that is acceptable.
func SessionMiddleware(store port.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookieName)

		if err != nil || cookie == "" {
			c.Next()
			return
		}

		sess, err := store.Get(c.Request.Context(), cookie)

		if errors.Is(err, domain.ErrSessionNotFound) {
			// expired or forged cookie, treat it as absent
			c.Next()
			return
		}

		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"errors": []string{"Failed to load session"},
			})
			c.Abort()
			return
		}

		c.Set("session", sess)
		c.Next()
	}
}

func GetSession(c *gin.Context) (domain.Session, bool) {
	value, exists := c.Get("session")

	if !exists {
		return domain.Session{}, false
	}

	sess, ok := value.(domain.Session)

	return sess, ok
}

func SetSessionCookie(c *gin.Context, sessionID string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, sessionID, maxAge, "/", "", false, true)
}

func ExpireSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}
