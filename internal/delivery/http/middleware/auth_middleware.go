package middleware

import (
	"context"
	"strings"

	"go-devconnector-backend/internal/domain"
	"go-devconnector-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// TokenHeader carries the access token issued at login and registration.
const TokenHeader = "x-auth-token"

// AuthMiddleware rejects requests without a valid token and stores the caller id
// in both the gin context and the request context. It never touches the database.
func AuthMiddleware(authUC domain.AuthUsecase, secLog *security.SecurityLogger) gin.HandlerFunc {
	if secLog == nil {
		secLog = security.Nop()
	}

	return func(c *gin.Context) {
		tokenString := strings.TrimSpace(c.GetHeader(TokenHeader))
		if tokenString == "" {
			// Fallback for clients sending a standard bearer header
			if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
				tokenString = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			}
		}

		if tokenString == "" {
			c.Error(domain.ErrMissingToken)
			c.Abort()
			return
		}

		userID, err := authUC.VerifyToken(tokenString)
		if err != nil {
			secLog.LogUnauthorizedAccess(c.Request.Context(), c.ClientIP(), RequestIDFrom(c), c.FullPath(), "invalid_token")
			c.Error(domain.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), userID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), domain.KeyUserID, userID))

		c.Next()
	}
}

// CallerID returns the id stored by AuthMiddleware, or "" on public routes.
func CallerID(c *gin.Context) string {
	return c.GetString(string(domain.KeyUserID))
}
