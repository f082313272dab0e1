package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thebob0072/skillmatch-auth/domain"
)

// RequireRole gates a route behind a minimum privilege tier. The deny is
// two-tier: requests with no authenticated identity get 401, authenticated
// requests below the bar get 403. An admin hitting a god-only route is
// denied, not asked to sign in again.
func RequireRole(min domain.Role) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		role, ok := UserRole(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required", "code": "unauthenticated"})
			c.Abort()
			return
		}

		if !role.AtLeast(min) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this area", "code": "forbidden"})
			c.Abort()
			return
		}

		c.Next()
	})
}
