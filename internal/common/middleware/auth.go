package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const adminPasswordHeader = "X-Admin-Password"

// AdminAuth gates mutating admin routes behind the single shared password.
// The site is single-tenant; there are no accounts, no sessions and no
// lockout — just one plaintext secret compared against the header.
func AdminAuth(password string) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.GetHeader(adminPasswordHeader)
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(password)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized: admin password required",
			})
			return
		}

		c.Next()
	}
}
