package spotify

import "errors"

// ErrInvalidProfile signals that the profile input could not be normalized to
// a Spotify user ID. The gateway is never called for such input.
var ErrInvalidProfile = errors.New("input is not a Spotify user ID or profile URL")

// ErrGateway collapses every external-lookup failure (network, token, API
// status, decode) into one outcome. Detail stays in logs and wrapped errors.
var ErrGateway = errors.New("spotify gateway failure")

// Image represents an image resource.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// Owner identifies the profile that owns a playlist.
type Owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type playlistTracks struct {
	Total int `json:"total"`
}

// Playlist is a playlist summary as returned by the lookup endpoints.
type Playlist struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Owner       Owner          `json:"owner"`
	Public      bool           `json:"public"`
	Tracks      playlistTracks `json:"tracks"`
	Images      []Image        `json:"images"`
	URI         string         `json:"uri"`
}

// playlistPage is one page of a paginated playlist listing. Only the first
// page is consumed; pagination is out of scope.
type playlistPage struct {
	Items    []Playlist `json:"items"`
	Total    int        `json:"total"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
	Next     *string    `json:"next"`
	Previous *string    `json:"previous"`
}
