// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"customer-service/internal/domain/auth"
	"customer-service/internal/middleware"
	xerrors "customer-service/internal/pkg/errors"
	"customer-service/internal/pkg/response"
	service "customer-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login authenticates the shared operator credential
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	req.IPAddress = c.ClientIP()
	req.UserAgent = c.Request.UserAgent()

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case xerrors.Is(err, xerrors.ErrRateLimited):
			response.Error(c, http.StatusTooManyRequests, "too many login attempts, try again later", nil)
		case xerrors.Is(err, xerrors.ErrUnauthorized):
			response.Unauthorized(c, "invalid credentials")
		default:
			response.Error(c, http.StatusInternalServerError, "login failed", err)
		}
		return
	}

	response.Success(c, http.StatusOK, "logged in", result)
}

// Logout revokes the current session
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, ok := middleware.GetJTI(c)
	if !ok {
		response.Unauthorized(c, "no active session")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), jti); err != nil {
		response.Error(c, http.StatusInternalServerError, "logout failed", err)
		return
	}

	response.Success(c, http.StatusOK, "logged out", nil)
}

// Me returns the authenticated identity
func (h *AuthHandler) Me(c *gin.Context) {
	username := middleware.MustGetUsername(c)
	response.Success(c, http.StatusOK, "authenticated", gin.H{"username": username})
}
