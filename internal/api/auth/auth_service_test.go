package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trackify/trackify/internal/api/session"
)

// MockAuthRepo is a mock implementation of the AuthRepo interface
type MockAuthRepo struct {
	mock.Mock
}

func (m *MockAuthRepo) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockAuthRepo) CreateUser(ctx context.Context, username, passwordHash string) (*User, error) {
	args := m.Called(ctx, username, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func newTestService(repo AuthRepo) (*AuthServiceImpl, *session.MemoryStore) {
	sessions := session.NewMemoryStore()
	return NewAuthService(repo, sessions, time.Hour, slog.Default()), sessions
}

func TestRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service, _ := newTestService(mockRepo)
		ctx := context.Background()

		created := &User{ID: "user-1", Username: "alice"}
		mockRepo.On("CreateUser", ctx, "alice", mock.MatchedBy(func(hash string) bool {
			// The repository must only ever see a hashed credential.
			return strings.HasPrefix(hash, "$argon2id$") && hash != "password123"
		})).Return(created, nil).Once()

		user, err := service.Register(ctx, "alice", "password123")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		mockRepo.AssertExpectations(t)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service, _ := newTestService(mockRepo)
		ctx := context.Background()

		mockRepo.On("CreateUser", ctx, "alice", mock.AnythingOfType("string")).
			Return(nil, ErrDuplicateUsername).Once()

		_, err := service.Register(ctx, "alice", "password123")
		assert.ErrorIs(t, err, ErrDuplicateUsername)
		mockRepo.AssertExpectations(t)
	})

	t.Run("EmptyPassword", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service, _ := newTestService(mockRepo)

		_, err := service.Register(context.Background(), "alice", "")
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "CreateUser")
	})
}

func TestLogin(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}
	user := &User{ID: "user-1", Username: "alice", PasswordHash: hash}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service, sessions := newTestService(mockRepo)
		ctx := context.Background()

		mockRepo.On("GetUserByUsername", ctx, "alice").Return(user, nil).Once()

		token, loggedIn, err := service.Login(ctx, "alice", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "alice", loggedIn.Username)

		// The token must resolve to the authenticated identity.
		identity, err := sessions.Get(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", identity.UserID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("UserNotFound", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service, _ := newTestService(mockRepo)
		ctx := context.Background()

		mockRepo.On("GetUserByUsername", ctx, "ghost").Return(nil, ErrUserNotFound).Once()

		token, _, err := service.Login(ctx, "ghost", "password123")
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Empty(t, token)
		mockRepo.AssertExpectations(t)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service, _ := newTestService(mockRepo)
		ctx := context.Background()

		mockRepo.On("GetUserByUsername", ctx, "alice").Return(user, nil).Once()

		token, _, err := service.Login(ctx, "alice", "wrongpassword")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Empty(t, token)
		mockRepo.AssertExpectations(t)
	})

	t.Run("MalformedStoredHashFailsClosed", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service, _ := newTestService(mockRepo)
		ctx := context.Background()

		broken := &User{ID: "user-2", Username: "bob", PasswordHash: "not-a-hash"}
		mockRepo.On("GetUserByUsername", ctx, "bob").Return(broken, nil).Once()

		token, _, err := service.Login(ctx, "bob", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Empty(t, token)
		mockRepo.AssertExpectations(t)
	})

	t.Run("FailedLoginCreatesNoSession", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service, sessions := newTestService(mockRepo)
		ctx := context.Background()

		mockRepo.On("GetUserByUsername", ctx, "alice").Return(user, nil).Once()

		_, _, err := service.Login(ctx, "alice", "wrongpassword")
		require.Error(t, err)

		// No stray session should exist for any token.
		_, err = sessions.Get(ctx, "any-token")
		assert.ErrorIs(t, err, session.ErrNotFound)
	})
}

func TestLogout(t *testing.T) {
	t.Run("DestroysSession", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service, sessions := newTestService(mockRepo)
		ctx := context.Background()

		require.NoError(t, sessions.Set(ctx, "token-1", session.Identity{UserID: "user-1", Username: "alice"}, time.Hour))

		require.NoError(t, service.Logout(ctx, "token-1"))

		_, err := sessions.Get(ctx, "token-1")
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("IdempotentWhenAnonymous", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service, _ := newTestService(mockRepo)

		assert.NoError(t, service.Logout(context.Background(), "unknown-token"))
		assert.NoError(t, service.Logout(context.Background(), ""))
	})

	t.Run("RepeatedLogout", func(t *testing.T) {
		mockRepo := new(MockAuthRepo)
		service, sessions := newTestService(mockRepo)
		ctx := context.Background()

		require.NoError(t, sessions.Set(ctx, "token-1", session.Identity{UserID: "user-1", Username: "alice"}, time.Hour))
		require.NoError(t, service.Logout(ctx, "token-1"))
		assert.NoError(t, service.Logout(ctx, "token-1"))
	})
}

func TestLoginErrorsStayDistinguishable(t *testing.T) {
	// Handlers rely on these being separate sentinels.
	assert.False(t, errors.Is(ErrUserNotFound, ErrInvalidCredentials))
	assert.False(t, errors.Is(ErrInvalidCredentials, ErrUserNotFound))
}
