package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// AdminUserHeader carries the identity of the back-office operator.
	AdminUserHeader = "X-Admin-User"
	// AdminUserKey is the context key for the operator identity.
	AdminUserKey = "admin_user"
)

// AdminUser copies the operator identity set by the back-office gateway into
// the request context. Authentication happens upstream; an absent header
// leaves the identity empty.
func AdminUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := strings.TrimSpace(c.GetHeader(AdminUserHeader)); user != "" {
			c.Set(AdminUserKey, user)
		}
		c.Next()
	}
}

// GetAdminUser returns the operator identity stored by AdminUser, if any.
func GetAdminUser(c *gin.Context) string {
	return c.GetString(AdminUserKey)
}
