package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	coreAuth "smart-pantry-chef/internal/core/auth"
	"smart-pantry-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Service account operations used by the handler
type Service interface {
	Register(ctx context.Context, name, email, password string) (*coreAuth.User, error)
	Login(ctx context.Context, email, password string) (string, *coreAuth.User, error)
}

// RegisterRequest registration body. Name and email are trimmed while decoding so
// binding validates the values that get stored.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// UnmarshalJSON implements json.Unmarshaler
func (r *RegisterRequest) UnmarshalJSON(data []byte) error {
	type plain RegisterRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = RegisterRequest(p)
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	return nil
}

// LoginRequest login body
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UnmarshalJSON implements json.Unmarshaler
func (r *LoginRequest) UnmarshalJSON(data []byte) error {
	type plain LoginRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = LoginRequest(p)
	r.Email = strings.TrimSpace(r.Email)
	return nil
}

// Handler auth endpoints
type Handler struct {
	service Service
}

// NewHandler creates an auth Handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// Register POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("Invalid registration request",
			zap.Error(err),
			zap.String("request_id", common.RequestIDFromContext(c.Request.Context())),
		)
		common.RespondError(c, http.StatusBadRequest, "Invalid registration data", err)
		return
	}

	if _, err := h.service.Register(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		common.RespondCustomError(c, err, "Internal server error")
		return
	}

	common.RespondSuccess(c, http.StatusCreated, gin.H{
		"message": "User registered successfully",
	})
}

// Login POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Email and password are required", err)
		return
	}

	token, user, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondCustomError(c, err, "Internal server error")
		return
	}

	common.RespondSuccess(c, http.StatusOK, gin.H{
		"token": token,
		"user":  user.Public(),
	})
}
