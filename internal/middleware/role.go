package middleware

import (
	"net/http"

	"github.com/franciscosanchezn/gin-ferias-api/internal/models"
	"github.com/gin-gonic/gin"
)

// RequireAdmin gates a route to admin users. It must run after RequireAuth
// and reads the live user record from the context, not the token claim, so
// a promotion or demotion applies to tokens issued before the change.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "Authentication required"))
			c.Abort()
			return
		}

		if !user.IsAdmin {
			c.JSON(http.StatusForbidden, models.NewAPIError(models.ErrForbidden, "Admin privileges required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
