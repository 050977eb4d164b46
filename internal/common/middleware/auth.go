package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"slotbot-backend/internal/common/errors"
	usermodels "slotbot-backend/internal/features/user/models"
)

const userContextKey = "user"

// UserResolver maps a bearer token to its user; nil user means no session.
type UserResolver interface {
	Resolve(ctx context.Context, token string) (*usermodels.User, error)
}

// AdminChecker decides whether an email belongs to an administrator.
type AdminChecker interface {
	IsAdmin(email string) bool
}

// SessionAuth attaches the authenticated user to the context when a valid
// bearer token is present. It never rejects; RequireAuth does that.
func SessionAuth(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if user != nil {
			c.Set(userContextKey, user)
		}
		c.Next()
	}
}

// RequireAuth rejects requests that have no authenticated user.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserFrom(c); !ok {
			AbortWithError(c, errors.NewUnauthorizedError("Authentication required"))
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests whose user is not an administrator.
func RequireAdmin(admins AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := UserFrom(c)
		if !ok {
			AbortWithError(c, errors.NewUnauthorizedError("Authentication required"))
			return
		}
		if !admins.IsAdmin(user.Email) {
			AbortWithError(c, errors.NewForbiddenError("Administrator access required"))
			return
		}
		c.Next()
	}
}

// UserFrom returns the authenticated user set by SessionAuth.
func UserFrom(c *gin.Context) (*usermodels.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*usermodels.User)
	return user, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
