package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPlaylistService is a mock implementation of the PlaylistService interface
type MockPlaylistService struct {
	mock.Mock
}

func (m *MockPlaylistService) Lookup(ctx context.Context, profileInput string) (string, []Playlist, error) {
	args := m.Called(ctx, profileInput)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]Playlist), args.Error(2)
}

func lookupRequest(t *testing.T, profile string) *http.Request {
	t.Helper()
	body, err := json.Marshal(LookupRequest{SpotifyProfile: profile})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/playlists", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestLookupHandlerImpl(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockPlaylistService)
		handler := NewPlaylistHandlerImpl(mockService, slog.Default())

		playlists := []Playlist{
			{ID: "pl-1", Name: "Road Trip", Public: true},
			{ID: "pl-2", Name: "Focus", Public: true},
		}
		mockService.On("Lookup", mock.Anything, "https://open.spotify.com/user/123456").
			Return("123456", playlists, nil).Once()

		w := httptest.NewRecorder()
		handler.Lookup(w, lookupRequest(t, "https://open.spotify.com/user/123456"))

		assert.Equal(t, http.StatusOK, w.Code)

		var resp LookupResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "123456", resp.UserID)
		require.Len(t, resp.Playlists, 2)
		assert.Equal(t, "Road Trip", resp.Playlists[0].Name)
		mockService.AssertExpectations(t)
	})

	t.Run("InvalidProfile", func(t *testing.T) {
		mockService := new(MockPlaylistService)
		handler := NewPlaylistHandlerImpl(mockService, slog.Default())

		mockService.On("Lookup", mock.Anything, "not-a-profile").
			Return("", nil, ErrInvalidProfile).Once()

		w := httptest.NewRecorder()
		handler.Lookup(w, lookupRequest(t, "not-a-profile"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "numeric Spotify user ID")
		mockService.AssertExpectations(t)
	})

	t.Run("GatewayFailure", func(t *testing.T) {
		mockService := new(MockPlaylistService)
		handler := NewPlaylistHandlerImpl(mockService, slog.Default())

		mockService.On("Lookup", mock.Anything, "123456").
			Return("123456", nil, fmt.Errorf("%w: unexpected status 500", ErrGateway)).Once()

		w := httptest.NewRecorder()
		handler.Lookup(w, lookupRequest(t, "123456"))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "Error retrieving playlists")
		mockService.AssertExpectations(t)
	})

	t.Run("EmptyPlaylists", func(t *testing.T) {
		mockService := new(MockPlaylistService)
		handler := NewPlaylistHandlerImpl(mockService, slog.Default())

		mockService.On("Lookup", mock.Anything, "123456").
			Return("123456", []Playlist{}, nil).Once()

		w := httptest.NewRecorder()
		handler.Lookup(w, lookupRequest(t, "123456"))

		assert.Equal(t, http.StatusOK, w.Code)

		var resp LookupResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Empty(t, resp.Playlists)
		mockService.AssertExpectations(t)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		mockService := new(MockPlaylistService)
		handler := NewPlaylistHandlerImpl(mockService, slog.Default())

		req := httptest.NewRequest(http.MethodPost, "/playlists", bytes.NewBufferString(`{"spotify_profile":`))
		w := httptest.NewRecorder()
		handler.Lookup(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Lookup")
	})
}
