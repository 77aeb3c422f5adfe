package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"work-diary/backend/config"
	"work-diary/backend/internal/api/middleware"
	"work-diary/backend/internal/dto"
	"work-diary/backend/internal/service"
	"work-diary/backend/pkg/response"
)

// AuthHandler serves registration, login and password flows.
type AuthHandler struct {
	cfg     *config.Config
	authSvc service.AuthService
}

// NewAuthHandler creates the AuthHandler.
func NewAuthHandler(cfg *config.Config, authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{cfg: cfg, authSvc: authSvc}
}

// Register creates a new account.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, service.ErrMissingFields.Error())
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields),
			errors.Is(err, service.ErrDepartmentRequired),
			errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrEmailExists):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, h.cfg.Feature.DevMode, err.Error())
		}
		return
	}

	response.Created(c, result)
}

// Login verifies credentials and issues a token, mirrored into a cookie
// for browser clients.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email and password are required")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.InternalError(c, h.cfg.Feature.DevMode, err.Error())
		return
	}

	h.setTokenCookie(c, result.Token, int(h.cfg.Auth.TokenTTL.Seconds()))
	response.OK(c, result)
}

// Logout revokes the presented token and clears the cookie.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString("token_jti")
	expiresAt, _ := c.Get("token_expires_at")
	exp, _ := expiresAt.(time.Time)

	if jti != "" {
		if err := h.authSvc.Logout(c.Request.Context(), jti, exp); err != nil {
			response.InternalError(c, h.cfg.Feature.DevMode, err.Error())
			return
		}
	}

	h.setTokenCookie(c, "", -1)
	response.OK(c, dto.MessageResponse{Message: "Logged out successfully"})
}

// ForgotPassword starts the email reset flow. The response does not
// reveal whether the address is registered.
// POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email is required")
		return
	}

	result, err := h.authSvc.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		response.InternalError(c, h.cfg.Feature.DevMode, err.Error())
		return
	}

	response.OK(c, result)
}

// ResetPassword completes the email reset flow.
// POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Token and password are required")
		return
	}

	result, err := h.authSvc.ResetPassword(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResetTokenInvalid):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrPasswordTooShort):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, h.cfg.Feature.DevMode, err.Error())
		}
		return
	}

	response.OK(c, result)
}

// ChangePassword rotates the password of the authenticated user.
// POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	email, ok := MustGetEmail(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Current and new password are required")
		return
	}

	result, err := h.authSvc.ChangePassword(c.Request.Context(), email, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCurrentPasswordWrong):
			response.Unauthorized(c, err.Error())
		case errors.Is(err, service.ErrPasswordTooShort):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, err.Error())
		default:
			response.InternalError(c, h.cfg.Feature.DevMode, err.Error())
		}
		return
	}

	response.OK(c, result)
}

// Me returns the authenticated user's profile.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, h.cfg.Feature.DevMode, err.Error())
		return
	}

	response.OK(c, user)
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if h.cfg.Auth.Cookie.SameSite == "strict" {
		sameSite = http.SameSiteStrictMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(middleware.TokenCookie, token, maxAge,
		"/", h.cfg.Auth.Cookie.Domain, h.cfg.Auth.Cookie.Secure, true)
}
