package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Diwak4r/ERP-System/internal/dto"
	"github.com/Diwak4r/ERP-System/internal/service"
	"github.com/Diwak4r/ERP-System/pkg/response"
)

// AuthHandler authentication HTTP handler
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// Refresh exchanges a refresh token for a new token pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), &req)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// Logout revokes the current access token and the optional refresh token
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, exp := tokenMeta(c)

	// body is optional
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if c.Request.ContentLength > 0 {
		_ = c.ShouldBindJSON(&req)
	}

	if err := h.authSvc.Logout(c.Request.Context(), jti, exp, req.RefreshToken); err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, nil)
}

// Me current user profile
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	result, err := h.authSvc.Me(c.Request.Context(), identity)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// ChangePassword changes the caller's password
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	identity, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), identity, &req); err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, nil)
}

func handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, 11001, err.Error())
	case errors.Is(err, service.ErrUserInactive):
		response.Forbidden(c, 11002, err.Error())
	case errors.Is(err, service.ErrRefreshTokenInvalid):
		response.Unauthorized(c, 11003, err.Error())
	case errors.Is(err, service.ErrOldPasswordWrong):
		response.BadRequest(c, 11004, err.Error())
	case errors.Is(err, service.ErrPasswordUnchanged):
		response.BadRequest(c, 11005, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, err.Error())
	default:
		response.InternalError(c)
	}
}
