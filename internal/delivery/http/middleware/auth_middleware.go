package middleware

import (
	"errors"
	"net/http"
	"strings"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// SessionCookie carries the session token for browser clients.
const SessionCookie = "token"

// TokenVerifier validates a session token and returns its payload.
type TokenVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

func AuthMiddleware(verifier TokenVerifier, authUC domain.AuthUsecase, secLogger *security.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reject := func(message, reason string) {
			secLogger.LogUnauthorized(c.Request.Context(), c.ClientIP(), c.GetString(RequestIDKey), c.FullPath(), reason)
			response.Error(c, http.StatusUnauthorized, message, nil)
			c.Abort()
		}

		tokenString := extractToken(c)
		if tokenString == "" {
			reject("Token is missing", "missing_token")
			return
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				reject("Token has expired", "expired_token")
				return
			}
			reject("Token is invalid", "invalid_token")
			return
		}

		// The stored account type wins over the one embedded in the token
		user, err := authUC.GetCurrentUser(c.Request.Context(), claims.ID)
		if err != nil {
			if apperror.Is(err, apperror.KindNotFound) {
				reject("User not found", "unknown_user")
				return
			}
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUserEmail), user.Email)
		c.Set(string(domain.KeyUserRole), string(user.AccountType))
		c.Request = c.Request.WithContext(domain.WithActor(c.Request.Context(), user.Actor()))

		c.Next()
	}
}

// RequireRole only lets actors with the given account type through.
// It must run after AuthMiddleware.
func RequireRole(role domain.AccountType) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := domain.ActorFrom(c.Request.Context())
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
			c.Abort()
			return
		}
		if err := domain.RequireRole(actor, role); err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// extractToken reads the bearer header first, then the session cookie.
func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}
