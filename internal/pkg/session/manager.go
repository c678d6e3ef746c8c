// internal/pkg/session/manager.go
package session

import (
	"context"
	"fmt"
	"time"

	xerrors "customer-service/internal/pkg/errors"
	"customer-service/internal/pkg/jwt"
)

// Manager issues and validates server-side sessions. The token itself is
// a signed JWT, but the session record in the store is authoritative:
// deleting it revokes the token before its expiry.
type Manager struct {
	tokens *jwt.Manager
	store  Store
}

func NewManager(tokens *jwt.Manager, store Store) *Manager {
	return &Manager{tokens: tokens, store: store}
}

// Create issues a session token for username and records the session.
func (m *Manager) Create(ctx context.Context, username, ip, userAgent string) (string, *Session, error) {
	token, jti, err := m.tokens.Generate(username)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	s := &Session{
		JTI:            jti,
		Username:       username,
		IPAddress:      ip,
		UserAgent:      userAgent,
		LoginAt:        now,
		LastActivityAt: now,
		ExpiresAt:      now.Add(m.tokens.Ttl),
	}

	if err := m.store.Save(ctx, s); err != nil {
		return "", nil, fmt.Errorf("failed to store session: %w", err)
	}
	return token, s, nil
}

// Validate checks the token signature and that the session record still
// exists. Returns ErrSessionExpired for anything a caller should treat as
// "log in again".
func (m *Manager) Validate(ctx context.Context, token string) (*Session, error) {
	claims, err := m.tokens.Verify(token)
	if err != nil {
		return nil, xerrors.ErrSessionExpired
	}

	s, err := m.store.Get(ctx, claims.ID)
	if err != nil {
		return nil, xerrors.ErrSessionExpired
	}
	if time.Now().After(s.ExpiresAt) {
		return nil, xerrors.ErrSessionExpired
	}

	s.LastActivityAt = time.Now()
	return s, nil
}

// Revoke deletes the session record so the token stops validating.
func (m *Manager) Revoke(ctx context.Context, jti string) error {
	return m.store.Delete(ctx, jti)
}
