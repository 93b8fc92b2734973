package spotify

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Gateway is the external playlist-fetching collaborator.
type Gateway interface {
	UserPlaylists(ctx context.Context, userID string) ([]Playlist, error)
}

var _ PlaylistService = (*PlaylistServiceImpl)(nil)

// PlaylistService defines the interface for playlist lookup operations
type PlaylistService interface {
	// Lookup normalizes free-form profile input and fetches the user's
	// public playlists. Returns the normalized ID alongside the result.
	Lookup(ctx context.Context, profileInput string) (string, []Playlist, error)
}

// PlaylistServiceImpl implements the PlaylistService interface
type PlaylistServiceImpl struct {
	logger  *slog.Logger
	gateway Gateway
}

// NewPlaylistService creates a new PlaylistService
func NewPlaylistService(gateway Gateway, logger *slog.Logger) *PlaylistServiceImpl {
	return &PlaylistServiceImpl{
		logger:  logger,
		gateway: gateway,
	}
}

// Lookup rejects unrecognizable input before the gateway is ever called; any
// gateway failure surfaces as ErrGateway with detail kept for the logs.
func (s *PlaylistServiceImpl) Lookup(ctx context.Context, profileInput string) (string, []Playlist, error) {
	userID, ok := NormalizeUserID(profileInput)
	if !ok {
		return "", nil, ErrInvalidProfile
	}

	tracer := otel.Tracer("trackify/spotify")
	ctx, span := tracer.Start(ctx, "spotify.UserPlaylists")
	span.SetAttributes(attribute.String("spotify.user_id", userID))
	defer span.End()

	playlists, err := s.gateway.UserPlaylists(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Playlist fetch failed",
			slog.String("user_id", userID),
			slog.Any("error", err))
		span.RecordError(err)
		return userID, nil, fmt.Errorf("fetch playlists for %s: %w", userID, err)
	}

	return userID, playlists, nil
}
