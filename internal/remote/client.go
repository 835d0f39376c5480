// filepath: internal/remote/client.go
package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"mediacatalog/internal/config"
	"mediacatalog/internal/models"
	"mediacatalog/internal/repository"
)

var _ repository.RemoteCatalog = (*Client)(nil)

// Client talks to the optional remote record-of-truth over REST. It exists so
// a freshly wiped local store can be rehydrated; every call is best-effort
// from the caller's point of view.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient creates a remote catalog client from the configuration. Returns
// nil when mirroring is disabled, which callers treat as "no remote".
func NewClient(cfg *config.Config) *Client {
	if !cfg.Remote.Enabled {
		return nil
	}
	return &Client{
		BaseURL:    cfg.Remote.BaseURL,
		Token:      cfg.Remote.Token,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// PutMedia projects a media record to the remote store.
func (c *Client) PutMedia(item *models.MediaItem) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("remote put: %w", err)
	}
	return c.do(http.MethodPost, c.BaseURL+"/media", bytes.NewReader(payload), nil)
}

// DeleteMedia removes a media record from the remote store.
func (c *Client) DeleteMedia(id string) error {
	return c.do(http.MethodDelete, c.BaseURL+"/media/"+url.PathEscape(id), nil, nil)
}

// ListMediaByAlbum fetches an album's media from the remote store, newest
// first like the local store.
func (c *Client) ListMediaByAlbum(albumID string) ([]models.MediaItem, error) {
	endpoint := c.BaseURL + "/media?album_id=" + url.QueryEscape(albumID)
	var items []models.MediaItem
	if err := c.do(http.MethodGet, endpoint, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.MediaItem{}
	}
	return items, nil
}

func (c *Client) do(method, endpoint string, body io.Reader, out any) error {
	req, err := http.NewRequest(method, endpoint, body)
	if err != nil {
		return fmt.Errorf("remote request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("remote request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("remote returned status %d for %s %s", resp.StatusCode, method, endpoint)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("remote response: %w", err)
		}
	}
	return nil
}
