package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/florenda/florenda-api/internal/domains/users/domain"
	"github.com/florenda/florenda-api/internal/domains/users/ports"
	apierrors "github.com/florenda/florenda-api/internal/shared/errors"
)

const authenticatedUserKey = "authenticatedUser"

// AuthMiddleware validates the bearer token of every request and stores the
// resolved account on the gin context.
func AuthMiddleware(service ports.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		user, err := service.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, "invalid or expired session")
			return
		}
		c.Set(authenticatedUserKey, user)
		c.Next()
	}
}

// AuthenticatedUser returns the account resolved by AuthMiddleware, or nil.
func AuthenticatedUser(c *gin.Context) *domain.User {
	value, ok := c.Get(authenticatedUserKey)
	if !ok {
		return nil
	}
	user, ok := value.(*domain.User)
	if !ok {
		return nil
	}
	return user
}

// RequireAdmin aborts requests whose session does not belong to an admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := AuthenticatedUser(c)
		if user == nil || user.Role != domain.RoleAdmin {
			apierrors.DefaultResponder.Respond(c, apierrors.ErrUnauthorized.WithDetail("admin role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func abortUnauthorized(c *gin.Context, detail string) {
	apierrors.DefaultResponder.Respond(c, apierrors.ErrUnauthorized.WithDetail(detail))
	c.Abort()
}
