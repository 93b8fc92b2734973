package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

var _ Gateway = (*Client)(nil)

// Client talks to the Spotify Web API using the client-credentials grant.
// Token acquisition and refresh are handled by the oauth2 transport; requests
// are bounded by the caller context and the configured client timeout.
type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a Spotify Web API client. tokenURL and baseURL are
// configurable so tests can point the client at a local server.
func NewClient(clientID, clientSecret, tokenURL, baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("missing spotify client credentials")
	}

	cc := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}

	httpClient := cc.Client(context.Background())
	httpClient.Timeout = timeout

	return &Client{
		logger:     logger,
		httpClient: httpClient,
		baseURL:    baseURL,
	}, nil
}

// UserPlaylists fetches the first page of a user's public playlists. Every
// failure mode collapses into ErrGateway; the wrapped detail is for logs.
func (c *Client) UserPlaylists(ctx context.Context, userID string) ([]Playlist, error) {
	endpoint := fmt.Sprintf("%s/users/%s/playlists", c.baseURL, url.PathEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrGateway, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrGateway, resp.StatusCode)
	}

	var page playlistPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrGateway, err)
	}

	return page.Items, nil
}
