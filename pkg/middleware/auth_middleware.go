package middleware

import (
	"net/http"
	"strings"

	"catalog-service/internal/auth"
	"catalog-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware validates bearer tokens issued by jwtManager
func AuthMiddleware(jwtManager *auth.JWTManager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Missing authorization header",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errors.NewUnauthorized("missing authorization header", "Header: Authorization"))
			return
		}

		scheme, tokenString, found := strings.Cut(authHeader, " ")
		if !found || scheme != "Bearer" || tokenString == "" {
			logger.Warn("Invalid authorization header format",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errors.NewUnauthorized("invalid authorization header format", "Expected: Bearer <token>"))
			return
		}

		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			if err == auth.ErrExpiredToken {
				c.AbortWithStatusJSON(http.StatusUnauthorized, errors.NewUnauthorized("token expired", "Token has expired, please login again"))
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, errors.NewUnauthorized("invalid token", err.Error()))
			return
		}

		c.Set("username", claims.Username)
		c.Set("user_id", claims.Subject)

		logger.Debug("Token validated",
			zap.String("username", claims.Username),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)

		c.Next()
	}
}
