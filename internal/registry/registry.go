// Package registry announces services to a NANDA-style index.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// announceTimeout bounds the whole register round trip.
const announceTimeout = 6 * time.Second

// Announcement is the registration payload the index expects.
type Announcement struct {
	AgentID   string         `json:"agent_id"`
	AgentURL  string         `json:"agent_url"`
	Protocols []string       `json:"protocols"`
	Facts     map[string]any `json:"facts"`
}

// Client posts announcements to a registry's /register endpoint.
type Client struct {
	base string
	http *http.Client
}

// New returns a Client for the registry at base (scheme and host,
// trailing slash tolerated).
func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: announceTimeout},
	}
}

// Base returns the registry base URL.
func (c *Client) Base() string { return c.base }

// Announce registers the service with the index. Any non-2xx response
// is an error.
func (c *Client) Announce(ctx context.Context, a Announcement) error {
	b, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal announcement: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/register", bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("announce: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("announce: registry returned %s", resp.Status)
	}
	return nil
}
