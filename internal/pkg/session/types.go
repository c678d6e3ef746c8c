// internal/pkg/session/types.go
package session

import (
	"context"
	"time"
)

type Session struct {
	JTI            string    `json:"jti"`
	Username       string    `json:"username"`
	IPAddress      string    `json:"ip_address"`
	UserAgent      string    `json:"user_agent"`
	LoginAt        time.Time `json:"login_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// Store persists active sessions keyed by jti. A missing jti means the
// session was revoked or expired.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, jti string) (*Session, error)
	Delete(ctx context.Context, jti string) error
}
