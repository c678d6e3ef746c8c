// internal/pkg/jwt/claims.go
package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the session token claims. A single shared credential
// guards this system, so the identity is just the operator username.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
