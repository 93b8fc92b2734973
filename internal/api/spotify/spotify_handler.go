package spotify

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/trackify/trackify/app/observability/metrics"
	"github.com/trackify/trackify/internal/api"
)

// LookupRequest represents the playlist lookup request body
type LookupRequest struct {
	SpotifyProfile string `json:"spotify_profile"`
}

// LookupResponse represents the playlist lookup response body
type LookupResponse struct {
	Success   bool       `json:"success"`
	UserID    string     `json:"user_id,omitempty"`
	Playlists []Playlist `json:"playlists,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// HandlerImpl handles HTTP requests for playlist lookups
type HandlerImpl struct {
	playlistService PlaylistService
	logger          *slog.Logger
}

// NewPlaylistHandlerImpl creates a new playlist HandlerImpl
func NewPlaylistHandlerImpl(playlistService PlaylistService, logger *slog.Logger) *HandlerImpl {
	metrics.InitAppMetrics()
	return &HandlerImpl{
		playlistService: playlistService,
		logger:          logger,
	}
}

// Lookup resolves free-form profile input to a user's public playlists.
func (h *HandlerImpl) Lookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	var req LookupRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	userID, playlists, err := h.playlistService.Lookup(ctx, req.SpotifyProfile)

	m := metrics.Get()
	m.PlaylistLookupDurationSeconds.Record(ctx, time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, ErrInvalidProfile) {
			m.PlaylistLookupsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "rejected")))
			api.ErrorResponse(w, r, http.StatusBadRequest, "Enter a numeric Spotify user ID or an open.spotify.com profile URL")
			return
		}

		// Gateway detail was already logged by the service; the client only
		// sees the generic retrieval failure.
		m.PlaylistLookupsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "gateway_error")))
		m.GatewayErrorsTotal.Add(ctx, 1)
		api.ErrorResponse(w, r, http.StatusBadGateway, "Error retrieving playlists. Please try again.")
		return
	}

	m.PlaylistLookupsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))
	api.WriteJSONResponse(w, r, http.StatusOK, LookupResponse{
		Success:   true,
		UserID:    userID,
		Playlists: playlists,
	})
}
