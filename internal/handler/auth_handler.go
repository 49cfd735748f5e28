package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shopmate/shopmate-bot/internal/middleware"
	"github.com/shopmate/shopmate-bot/internal/service"
	"github.com/shopmate/shopmate-bot/internal/utils"
)

// AuthHandler handles admin dashboard authentication.
type AuthHandler struct {
	auth        *service.AuthService
	rateLimiter *middleware.LoginRateLimiter
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		auth:        auth,
		rateLimiter: middleware.NewLoginRateLimiter(),
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		if !h.rateLimiter.Allow(c.ClientIP()) {
			utils.Error(c, 429, "TOO_MANY_REQUESTS", "Too many failed login attempts")
			return
		}
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid username or password")
		return
	}

	utils.Success(c, 200, "Login successful", gin.H{"token": token})
}
