package auth

import (
	"crypto/subtle"
	"net/http"
	"time"

	"catalog-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	jwtManager *JWTManager
	users      map[string]string
	logger     *zap.Logger
}

// NewAuthHandler creates a new auth handler accepting the given username/password pairs
func NewAuthHandler(jwtManager *JWTManager, users map[string]string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		jwtManager: jwtManager,
		users:      users,
		logger:     logger,
	}
}

// LoginRequest represents the login request
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Type      string `json:"type" example:"Bearer"`
	ExpiresIn int    `json:"expires_in" example:"600"`
	ExpiresAt string `json:"expires_at" example:"2024-01-15T12:00:00Z"`
}

// Login handles POST /api/v1/auth/login
// @Summary      Login and get JWT token
// @Description  Authenticates a configured user (AUTH_USERS) and returns a bearer token for the write routes.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Login credentials"
// @Success      200      {object}  LoginResponse
// @Failure      400      {object}  errors.StandardError
// @Failure      401      {object}  errors.StandardError
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid login request", zap.Error(err))
		_ = c.Error(errors.NewValidationError("invalid request", "username or password"))
		c.Abort()
		return
	}

	if !h.validateCredentials(req.Username, req.Password) {
		h.logger.Warn("Invalid credentials", zap.String("username", req.Username))
		_ = c.Error(errors.NewUnauthorized("invalid credentials", "username or password incorrect"))
		c.Abort()
		return
	}

	token, expiresAt, err := h.jwtManager.GenerateToken(req.Username)
	if err != nil {
		_ = c.Error(errors.NewInternalError("failed to generate token", err))
		c.Abort()
		return
	}

	h.logger.Info("User logged in successfully", zap.String("username", req.Username))
	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		Type:      "Bearer",
		ExpiresIn: int(h.jwtManager.TTL().Seconds()),
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
}

func (h *AuthHandler) validateCredentials(username, password string) bool {
	expected, exists := h.users[username]
	if !exists {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(password)) == 1
}
