package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/padidar/visitor-analytics-go/internal/service"
	"github.com/padidar/visitor-analytics-go/pkg/response"
)

// AuthHandler handles login requests
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	UserName string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "username and password are required")
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusBadRequest, "Username or password is wrong")
			return
		}
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}
