package delivery

import (
	"net/http"
	"strings"

	authdomain "mindmaker-backend/internal/auth/domain"
	"mindmaker-backend/internal/auth/identity"
	"mindmaker-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

const userKey = "user"

func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		user, err := authUsecase.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the user when a valid bearer token is sent and
// otherwise lets the request through anonymously.
func OptionalAuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if user, err := authUsecase.ValidateToken(c.Request.Context(), token); err == nil {
				c.Set(userKey, user)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the user attached by one of the middlewares, or nil.
func CurrentUser(c *gin.Context) *authdomain.User {
	if v, exists := c.Get(userKey); exists {
		if user, ok := v.(*authdomain.User); ok {
			return user
		}
	}
	return nil
}

// IdentityFrom is the identity of the caller, anonymous when no user is attached.
func IdentityFrom(c *gin.Context) identity.Identity {
	return identity.FromUser(CurrentUser(c))
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
