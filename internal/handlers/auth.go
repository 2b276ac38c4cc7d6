package handlers

import (
	"net/http"
	"time"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/config"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/dto"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/middleware"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/services"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/pkg/response"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
	cookie      config.CookieConfig
}

func NewAuthHandler(authService *services.AuthService, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string, expireAt time.Time) {
	maxAge := int(time.Until(expireAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}

func (h *AuthHandler) clearTokenCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
}

// Register creates an account and signs it in
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setTokenCookie(c, res.Token, res.ExpireAt)
	response.Created(c, "user created successfully", gin.H{"user": dto.ToUser(res.User)})
}

// Login handles user login
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setTokenCookie(c, res.Token, res.ExpireAt)
	response.Success(c, "authentication successful", gin.H{
		"user":     dto.ToUser(res.User),
		"expireAt": res.ExpireAt,
	})
}

// Logout clears the auth cookie
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cookie.Name); err != nil || token == "" {
		response.BadRequest(c, "user already logged out")
		return
	}
	h.clearTokenCookie(c)
	response.Success(c, "logged out successfully", nil)
}

// GetCurrentUser returns the current logged-in user
// GET /api/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, err := h.authService.GetUserByID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "authentication successful", gin.H{"user": dto.ToUser(user)})
}

// ForgotPassword emails a reset link
// POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req services.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "check your email for instructions on resetting your password", nil)
}

// ResetPassword sets a new password using an emailed token
// POST /api/auth/reset-password/:token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req services.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), c.Param("token"), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "password has been reset successfully", nil)
}

// ChangePassword replaces the caller's password
// POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req services.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), middleware.GetUserID(c), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "password changed successfully", nil)
}
