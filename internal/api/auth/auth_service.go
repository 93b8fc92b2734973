package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/trackify/trackify/internal/api/session"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Register creates a new user with a hashed credential.
	Register(ctx context.Context, username, password string) (*User, error)

	// Login verifies the credential and mints a session token on success.
	Login(ctx context.Context, username, password string) (string, *User, error)

	// Logout destroys the session behind the token. Idempotent.
	Logout(ctx context.Context, token string) error
}

// AuthServiceImpl implements the AuthService interface
type AuthServiceImpl struct {
	logger     *slog.Logger
	repo       AuthRepo
	sessions   session.Store
	sessionTTL time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(repo AuthRepo, sessions session.Store, sessionTTL time.Duration, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		logger:     logger,
		repo:       repo,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// Register hashes the password and creates the account. The plaintext never
// reaches the repository.
func (s *AuthServiceImpl) Register(ctx context.Context, username, password string) (*User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, username, hash)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "User registered", slog.String("username", user.Username))
	return user, nil
}

// Login looks up the account, verifies the password, and establishes a
// session. ErrUserNotFound and ErrInvalidCredentials stay distinguishable for
// the handler; neither outcome creates a session.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, *User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		// A malformed stored hash fails closed as a credential mismatch;
		// the detail stays in the logs.
		s.logger.ErrorContext(ctx, "Stored password hash could not be verified",
			slog.String("username", username),
			slog.Any("error", err))
		return "", nil, ErrInvalidCredentials
	}
	if !ok {
		return "", nil, ErrInvalidCredentials
	}

	token := uuid.NewString()
	identity := session.Identity{UserID: user.ID, Username: user.Username}
	if err := s.sessions.Set(ctx, token, identity, s.sessionTTL); err != nil {
		return "", nil, fmt.Errorf("failed to store session: %w", err)
	}

	return token, user, nil
}

// Logout destroys the session behind the token. Destroying an absent or
// already-destroyed session succeeds.
func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, token); err != nil && !errors.Is(err, session.ErrNotFound) {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}
