package api

import (
	"errors"
	"net/http"
	"time"

	"lfmachado/gym-app/internal/domain"
	"lfmachado/gym-app/internal/i18n"
	"lfmachado/gym-app/internal/metrics"
	"lfmachado/gym-app/internal/service"
	"lfmachado/gym-app/internal/session"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes the authentication surface. It talks to the session
// gate rather than the auth service directly, so login failures flow
// through the gate's transient-error channel and session subscribers.
type AuthHandler struct {
	gate *session.Gate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(gate *session.Gate) *AuthHandler {
	return &AuthHandler{gate: gate}
}

// --- Request/Response Structs ---

// Missing-field checks are left to the auth service so each field maps to
// its own error code; binding here only rejects malformed JSON.

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Admin    int    `json:"admin"` // defaults to 0
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse excludes the password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Status    int       `json:"status"`
	Admin     int       `json:"admin"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// --- Handler Methods ---

// Register creates a trainer account. Missing fields come back from the
// service with their own auth codes.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, i18n.FallbackMessage)
		return
	}

	user, err := h.gate.Register(c.Request.Context(), req.Email, req.Password, req.Admin)
	if err != nil {
		status := http.StatusBadRequest
		var authErr *service.AuthError
		if errors.As(err, &authErr) {
			if authErr == service.ErrEmailInUse {
				status = http.StatusConflict
			}
			abortWithError(c, status, i18n.Translate(authErr.Code))
			return
		}
		abortWithError(c, http.StatusInternalServerError, i18n.FallbackMessage)
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// Login authenticates and returns a JWT. The response user comes from
// this call's result; the gate's CurrentUser is shared process state and
// may already reflect someone else's login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, i18n.FallbackMessage)
		return
	}

	token, user, err := h.gate.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		var authErr *service.AuthError
		if errors.As(err, &authErr) {
			status := http.StatusUnauthorized
			switch authErr {
			case service.ErrUserNotFound:
				status = http.StatusNotFound
			case service.ErrUserDisabled:
				status = http.StatusForbidden
			case service.ErrMissingEmail, service.ErrMissingPassword:
				status = http.StatusBadRequest
			}
			abortWithError(c, status, i18n.Translate(authErr.Code))
			return
		}
		abortWithError(c, http.StatusInternalServerError, i18n.FallbackMessage)
		return
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}

// Logout clears the gate's last-session state, which is process-wide
// telemetry, not a per-client session. The caller's JWT stays valid until
// it expires; clients discard it locally.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.gate.Logout()
	c.Status(http.StatusNoContent)
}

// ForgotPassword issues a reset token for the account.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, i18n.FallbackMessage)
		return
	}

	if err := h.gate.SendPasswordReset(c.Request.Context(), req.Email); err != nil {
		var authErr *service.AuthError
		if errors.As(err, &authErr) {
			status := http.StatusBadRequest
			if authErr == service.ErrUserNotFound {
				status = http.StatusNotFound
			}
			abortWithError(c, status, i18n.Translate(authErr.Code))
			return
		}
		abortWithError(c, http.StatusInternalServerError, i18n.FallbackMessage)
		return
	}
	c.Status(http.StatusNoContent)
}

// ResetPassword trades a valid reset token for a new password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, i18n.FallbackMessage)
		return
	}

	if err := h.gate.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, service.ErrResetTokenInvalid) {
			abortWithError(c, http.StatusUnauthorized, i18n.FallbackMessage)
			return
		}
		var authErr *service.AuthError
		if errors.As(err, &authErr) {
			abortWithError(c, http.StatusBadRequest, i18n.Translate(authErr.Code))
			return
		}
		abortWithError(c, http.StatusInternalServerError, i18n.FallbackMessage)
		return
	}
	c.Status(http.StatusNoContent)
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        user.ID.Hex(),
		Email:     user.Email,
		Status:    user.Status,
		Admin:     user.Admin,
		CreatedAt: user.CreatedAt,
	}
}
