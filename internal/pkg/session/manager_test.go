package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xerrors "customer-service/internal/pkg/errors"
	"customer-service/internal/pkg/jwt"
)

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	tokens, err := jwt.NewManager(jwt.Config{
		Secret:   "test-secret",
		Issuer:   "customer-service",
		Audience: "customer-service",
		TTL:      ttl,
	})
	require.NoError(t, err)
	return NewManager(tokens, NewMemoryStore())
}

func TestSessionRoundTrip(t *testing.T) {
	m := newTestManager(t, time.Hour)
	ctx := context.Background()

	token, created, err := m.Create(ctx, "admin", "10.0.0.1", "test-agent")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	s, err := m.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", s.Username)
	assert.Equal(t, created.JTI, s.JTI)
	assert.Equal(t, "10.0.0.1", s.IPAddress)
}

func TestRevokedSessionStopsValidating(t *testing.T) {
	m := newTestManager(t, time.Hour)
	ctx := context.Background()

	token, created, err := m.Create(ctx, "admin", "10.0.0.1", "test-agent")
	require.NoError(t, err)

	require.NoError(t, m.Revoke(ctx, created.JTI))

	_, err = m.Validate(ctx, token)
	assert.ErrorIs(t, err, xerrors.ErrSessionExpired)
}

func TestGarbageTokenRejected(t *testing.T) {
	m := newTestManager(t, time.Hour)

	_, err := m.Validate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, xerrors.ErrSessionExpired)
}

func TestTokenFromDifferentSecretRejected(t *testing.T) {
	m := newTestManager(t, time.Hour)

	other, err := jwt.NewManager(jwt.Config{
		Secret: "other-secret", Issuer: "customer-service",
		Audience: "customer-service", TTL: time.Hour,
	})
	require.NoError(t, err)

	forged, _, err := other.Generate("admin")
	require.NoError(t, err)

	_, err = m.Validate(context.Background(), forged)
	assert.ErrorIs(t, err, xerrors.ErrSessionExpired)
}
