package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PGXQuerier is the subset of pgxpool.Pool the repository needs. pgxmock
// satisfies it in tests.
type PGXQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ AuthRepo = (*PostgresAuthRepo)(nil)

// AuthRepo is the credential store. It only ever sees hashed passwords;
// callers hash before CreateUser.
type AuthRepo interface {
	// GetUserByUsername returns the account or ErrUserNotFound.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// CreateUser inserts a new account. A username collision returns
	// ErrDuplicateUsername; uniqueness is enforced atomically by the store.
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)
}

type PostgresAuthRepo struct {
	logger *slog.Logger
	db     PGXQuerier
}

func NewPostgresAuthRepo(db PGXQuerier, logger *slog.Logger) *PostgresAuthRepo {
	return &PostgresAuthRepo{
		logger: logger,
		db:     db,
	}
}

// GetUserByUsername returns the account or ErrUserNotFound.
func (r *PostgresAuthRepo) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := r.db.QueryRow(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE username = $1",
		username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by username: query failed: %w", err)
	}
	return &user, nil
}

// CreateUser inserts a new account, mapping unique violations to
// ErrDuplicateUsername.
func (r *PostgresAuthRepo) CreateUser(ctx context.Context, username, passwordHash string) (*User, error) {
	var user User
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, password_hash)
         VALUES ($1, $2)
         RETURNING id, username, password_hash, created_at`,
		username, passwordHash).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create user: db insert failed: %w", err)
	}
	return &user, nil
}
