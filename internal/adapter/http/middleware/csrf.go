package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const CSRFTokenHeaderName = "X-CSRF-TOKEN"

// CSRFMiddleware verifies the CSRF token on every state-changing request.
// The token travels in the X-CSRF-TOKEN header and must match the one
// stored in the session. Missing or mismatching tokens get a 403.
func CSRFMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		sess, ok := GetSession(c)

		if !ok {
			slog.Warn("CSRF check without session", "path", c.Request.URL.Path)

			c.JSON(http.StatusForbidden, gin.H{
				"errors": []string{"Forbidden request"},
			})
			c.Abort()
			return
		}

		token := c.GetHeader(CSRFTokenHeaderName)

		if subtle.ConstantTimeCompare([]byte(token), []byte(sess.CSRFToken)) != 1 {
			slog.Warn("CSRF token mismatch",
				"path", c.Request.URL.Path,
				"method", c.Request.Method)

			c.JSON(http.StatusForbidden, gin.H{
				"errors": []string{"Forbidden request"},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
