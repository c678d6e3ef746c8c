// internal/middleware/helpers.go
package middleware

import "github.com/gin-gonic/gin"

// MustGetUsername gets the authenticated identity from context or panics.
// Only valid behind Auth().
func MustGetUsername(c *gin.Context) string {
	username, exists := GetUsername(c)
	if !exists {
		panic("username not found in context")
	}
	return username
}
