package handler

import (
	"log/slog"
	"net/http"
	"time"

	. "todoapi/internal/adapter/http/helper"
	"todoapi/internal/adapter/http/middleware"
	. "todoapi/internal/adapter/http/validation"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/model/response"
	"todoapi/internal/core/port"
	"todoapi/internal/core/util"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	registration port.RegistrationService
	auth         port.AuthService
	sessions     port.SessionStore
	sessionTTL   time.Duration
}

func NewAuthHandler(registration port.RegistrationService, auth port.AuthService, sessions port.SessionStore, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		registration: registration,
		auth:         auth,
		sessions:     sessions,
		sessionTTL:   sessionTTL,
	}
}

// CsrfToken hands out the CSRF token bound to the caller's session,
// creating an anonymous session first when there is none yet.
func (a *AuthHandler) CsrfToken(c *gin.Context) {
	ctx := c.Request.Context()

	sess, ok := middleware.GetSession(c)

	if !ok {
		var err error
		sess, err = a.sessions.Create(ctx)

		if err != nil {
			slog.Error("Failed to create session", "error", err)
			SendInternalError(c, "Failed to create session")
			return
		}

		middleware.SetSessionCookie(c, sess.ID, int(a.sessionTTL.Seconds()))
	}

	c.JSON(http.StatusOK, response.CsrfTokenResponse{
		CsrfTokenHeaderName: middleware.CSRFTokenHeaderName,
		CsrfTokenValue:      sess.CSRFToken,
	})
}

func (a *AuthHandler) Signup(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.SignupRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	result, err := a.registration.Register(ctx, params.UserName, params.Password)

	if err != nil {
		slog.Error("Signup failed", "error", err)
		SendInternalError(c, "Failed to register account")
		return
	}

	if result == domain.RegistrationNameConflict {
		SendConflictError(c, "userName", "User name is already in use")
		return
	}

	c.Status(http.StatusNoContent)
}

func (a *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.LoginRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	result, err := a.auth.Authenticate(ctx, params.UserName, params.Password)

	if err != nil {
		slog.Error("Authentication failed", "error", err)
		SendInternalError(c, "Failed to authenticate")
		return
	}

	if result.Failed() {
		// one message for both unknown name and wrong password
		SendUnauthorizedError(c, "Invalid user name or password")
		return
	}

	// discard the pre-login session so its id never survives authentication
	if old, ok := middleware.GetSession(c); ok {
		if err := a.sessions.Delete(ctx, old.ID); err != nil {
			slog.Warn("Failed to discard pre-login session", "error", err)
		}
	}

	sess, err := a.sessions.Create(ctx)

	if err != nil {
		slog.Error("Failed to create session", "error", err)
		SendInternalError(c, "Failed to create session")
		return
	}

	sess.UserID = result.UserID()

	if err := a.sessions.Save(ctx, sess); err != nil {
		slog.Error("Failed to save session", "error", err)
		SendInternalError(c, "Failed to create session")
		return
	}

	middleware.SetSessionCookie(c, sess.ID, int(a.sessionTTL.Seconds()))

	c.Status(http.StatusNoContent)
}

func (a *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if sess, ok := middleware.GetSession(c); ok {
		if err := a.sessions.Delete(ctx, sess.ID); err != nil {
			slog.Warn("Failed to delete session", "error", err)
		}
	}

	middleware.ExpireSessionCookie(c)

	c.Status(http.StatusNoContent)
}
