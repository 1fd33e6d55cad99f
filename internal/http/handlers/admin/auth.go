package admin

import (
	"errors"

	handlershared "github.com/lepanier/lepanier-api/internal/http/handlers/shared"
	"github.com/lepanier/lepanier-api/internal/http/response"
	"github.com/lepanier/lepanier-api/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest is the admin login body.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies admin credentials and returns a token.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid credentials")
			return
		}
		handlershared.RespondError(c, response.CodeInternal, "login failed", err)
		return
	}
	response.Success(c, gin.H{
		"admin":      admin,
		"token":      token,
		"expires_at": expiresAt,
	})
}

// Profile returns the authenticated admin.
func (h *Handler) Profile(c *gin.Context) {
	adminID, ok := handlershared.GetContextUint(c, "admin_id")
	if !ok {
		return
	}

	admin, err := h.AdminRepo.GetByID(adminID)
	if err != nil || admin == nil {
		response.NotFound(c, "admin not found")
		return
	}
	response.Success(c, gin.H{"admin": admin})
}
