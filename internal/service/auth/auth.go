// internal/service/auth/auth.go
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"customer-service/internal/domain/auth"
	xerrors "customer-service/internal/pkg/errors"
	"customer-service/internal/pkg/session"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Credentials is the single shared operator credential. PasswordHash is
// the bcrypt hash and is preferred; Password is the legacy plaintext
// fallback kept for deployments that have not migrated yet.
type Credentials struct {
	Username     string
	PasswordHash string
	Password     string
}

// LoginLimiter throttles login attempts per IP and username.
type LoginLimiter interface {
	CheckLoginAttempt(ctx context.Context, ip, username string) (bool, int64, error)
	ResetLoginAttempts(ctx context.Context, ip, username string) error
}

// AuthService is the access guard: it authenticates the shared credential
// and issues the sessions every mutating operation requires.
type AuthService struct {
	creds    Credentials
	sessions *session.Manager
	limiter  LoginLimiter
	logger   *zap.Logger
}

func NewAuthService(creds Credentials, sessions *session.Manager, limiter LoginLimiter, logger *zap.Logger) *AuthService {
	return &AuthService{
		creds:    creds,
		sessions: sessions,
		limiter:  limiter,
		logger:   logger,
	}
}

// Login authenticates the shared credential and opens a session.
func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error) {
	if s.limiter != nil {
		allowed, _, err := s.limiter.CheckLoginAttempt(ctx, req.IPAddress, req.Username)
		if err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}
		if !allowed {
			return nil, xerrors.ErrRateLimited
		}
	}

	if !s.checkCredentials(req.Username, req.Password) {
		s.logger.Warn("failed login attempt",
			zap.String("username", req.Username),
			zap.String("ip", req.IPAddress),
		)
		return nil, xerrors.ErrUnauthorized
	}

	token, sess, err := s.sessions.Create(ctx, req.Username, req.IPAddress, req.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if s.limiter != nil {
		if err := s.limiter.ResetLoginAttempts(ctx, req.IPAddress, req.Username); err != nil {
			s.logger.Warn("failed to reset login attempts", zap.Error(err))
		}
	}

	s.logger.Info("operator logged in",
		zap.String("username", req.Username),
		zap.String("ip", req.IPAddress),
	)

	return &auth.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   sess.ExpiresAt,
		Username:    sess.Username,
	}, nil
}

// ValidateToken resolves a session token to its session, or
// ErrSessionExpired.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*session.Session, error) {
	return s.sessions.Validate(ctx, token)
}

// Logout revokes the session behind the given jti.
func (s *AuthService) Logout(ctx context.Context, jti string) error {
	if err := s.sessions.Revoke(ctx, jti); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *AuthService) checkCredentials(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.creds.Username)) != 1 {
		return false
	}
	if s.creds.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.creds.PasswordHash), []byte(password)) == nil
	}
	// Legacy plaintext fallback; deployments should set the hash instead.
	if s.creds.Password != "" {
		return subtle.ConstantTimeCompare([]byte(password), []byte(s.creds.Password)) == 1
	}
	return false
}
