package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PGXQuerier is the subset of pgxpool.Pool the store needs. pgxmock satisfies
// it in tests.
type PGXQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Store = (*PostgresStore)(nil)

// PostgresStore persists sessions in the sessions table, joining users on
// read so the identity snapshot follows the account record.
type PostgresStore struct {
	logger *slog.Logger
	db     PGXQuerier
}

func NewPostgresStore(db PGXQuerier, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{
		logger: logger,
		db:     db,
	}
}

// Get resolves a token to its identity, or ErrNotFound.
func (s *PostgresStore) Get(ctx context.Context, token string) (*Identity, error) {
	// Tokens come straight from the client's cookie; the column is uuid, so
	// anything that does not parse cannot name a live session.
	if _, err := uuid.Parse(token); err != nil {
		return nil, ErrNotFound
	}

	var identity Identity
	var expiresAt time.Time

	err := s.db.QueryRow(ctx,
		`SELECT u.id, u.username, s.expires_at
         FROM sessions s
         JOIN users u ON u.id = s.user_id
         WHERE s.token = $1`,
		token).Scan(&identity.UserID, &identity.Username, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session lookup: query failed: %w", err)
	}

	if time.Now().After(expiresAt) {
		// Expired rows are reaped lazily; the identity is already gone
		// from the caller's point of view.
		if _, err := s.db.Exec(ctx, "DELETE FROM sessions WHERE token = $1", token); err != nil {
			s.logger.WarnContext(ctx, "Failed to delete expired session", slog.Any("error", err))
		}
		return nil, ErrNotFound
	}

	return &identity, nil
}

// Set binds a token to an identity for the given TTL.
func (s *PostgresStore) Set(ctx context.Context, token string, identity Identity, ttl time.Duration) error {
	expiresAt := time.Now().Add(ttl)
	_, err := s.db.Exec(ctx,
		"INSERT INTO sessions (token, user_id, expires_at) VALUES ($1, $2, $3)",
		token, identity.UserID, expiresAt)
	if err != nil {
		return fmt.Errorf("session set: db insert failed: %w", err)
	}
	return nil
}

// Destroy removes a session. Destroying an absent token is not an error.
func (s *PostgresStore) Destroy(ctx context.Context, token string) error {
	if _, err := uuid.Parse(token); err != nil {
		return nil
	}

	_, err := s.db.Exec(ctx, "DELETE FROM sessions WHERE token = $1", token)
	if err != nil {
		return fmt.Errorf("session destroy: db delete failed: %w", err)
	}
	return nil
}
