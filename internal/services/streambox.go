// Streambox catalog implementation of [Catalog].
//
// Streambox exposes a JSON HTTP API for track search and stream resolution,
// authenticated with OAuth2 client credentials.

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/player"
	"github.com/desertthunder/mixtape/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const defaultStreamboxBaseURL = "https://api.streambox.example.com/v1"

// StreamboxTrack represents a track in Streambox API responses.
type StreamboxTrack struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	StreamURL   string `json:"stream_url"`
	DurationSec int    `json:"duration_seconds"`
}

// StreamboxSearchResponse represents the payload of a track search.
type StreamboxSearchResponse struct {
	Tracks []StreamboxTrack `json:"tracks"`
	Total  int              `json:"total"`
}

// StreamboxStreamResponse represents the payload of a stream resolution.
type StreamboxStreamResponse struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	DurationSec int    `json:"duration_seconds"`
}

// StreamboxCatalog implements [Catalog] against the Streambox API.
type StreamboxCatalog struct {
	baseURL    string
	creds      *clientcredentials.Config
	httpClient *http.Client
}

// NewStreamboxCatalog creates a catalog client from configuration. client may
// be nil, in which case [http.DefaultClient] is used until Authenticate
// installs a token-refreshing one.
func NewStreamboxCatalog(cfg shared.CatalogConfig, client *http.Client) *StreamboxCatalog {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultStreamboxBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	c := &StreamboxCatalog{baseURL: baseURL, httpClient: client}

	if cfg.ClientID != "" && cfg.ClientSecret != "" {
		c.creds = &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
	}

	return c
}

// Name returns the catalog service name.
func (c *StreamboxCatalog) Name() string {
	return "Streambox"
}

// Authenticate exchanges client credentials for a token source and installs an
// HTTP client that refreshes it. A catalog configured without credentials
// authenticates trivially (public endpoints only).
func (c *StreamboxCatalog) Authenticate(ctx context.Context) error {
	if c.creds == nil {
		return nil
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	if _, err := c.creds.Token(ctx); err != nil {
		return fmt.Errorf("failed to exchange client credentials: %w", err)
	}

	c.httpClient = c.creds.Client(ctx)
	return nil
}

// doRequest performs a GET against the Streambox API and decodes the JSON
// response into result.
func (c *StreamboxCatalog) doRequest(ctx context.Context, endpoint string, result any) error {
	apiURL := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d: %s", shared.ErrAPIRequest, endpoint, resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// SearchTracks retrieves public tracks matching the query.
func (c *StreamboxCatalog) SearchTracks(ctx context.Context, query string) ([]*models.Track, error) {
	endpoint := "/tracks/search?q=" + url.QueryEscape(query)

	var payload StreamboxSearchResponse
	if err := c.doRequest(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	tracks := make([]*models.Track, 0, len(payload.Tracks))
	for _, st := range payload.Tracks {
		tracks = append(tracks, &models.Track{
			ID:        st.ID,
			Title:     st.Title,
			Artist:    st.Artist,
			StreamURL: st.StreamURL,
			Duration:  st.DurationSec,
		})
	}

	return tracks, nil
}

// Stream resolves a playable handle for the track id.
func (c *StreamboxCatalog) Stream(ctx context.Context, trackID string) (player.Handle, error) {
	endpoint := "/tracks/" + url.PathEscape(trackID) + "/stream"

	var payload StreamboxStreamResponse
	if err := c.doRequest(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrStreamUnavailable, err)
	}

	if payload.URL == "" {
		return nil, fmt.Errorf("%w: empty stream URL for track %s", shared.ErrStreamUnavailable, trackID)
	}

	return newStreamHandle(payload.URL, time.Duration(payload.DurationSec)*time.Second), nil
}
