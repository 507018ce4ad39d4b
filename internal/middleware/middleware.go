package middleware

import (
	"net/http"
	"strings"

	"github.com/franciscosanchezn/gin-ferias-api/internal/auth"
	"github.com/franciscosanchezn/gin-ferias-api/internal/models"
	"github.com/franciscosanchezn/gin-ferias-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ContextUserKey is the gin context key under which RequireAuth stores the
// authenticated *models.User.
const ContextUserKey = "currentUser"

// RequireAuth validates the Bearer token on the request and resolves it to a
// live user record.
//
// The user is always re-read from the store rather than trusted from the
// token payload, so account deletion and admin changes take effect
// immediately. Every rejection is a uniform 401: missing header, malformed
// scheme, failed verification, and deleted account are indistinguishable to
// the caller.
func RequireAuth(tokens auth.TokenService, users services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondUnauthenticated(c)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			respondUnauthenticated(c)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		identity, err := tokens.Verify(tokenString)
		if err != nil {
			respondUnauthenticated(c)
			return
		}

		user, err := users.GetByID(identity.UserID)
		if err != nil {
			respondUnauthenticated(c)
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user attached by RequireAuth, or nil when the
// route was not authenticated.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func respondUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "Authentication required"))
	c.Abort()
}
