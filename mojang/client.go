// Package mojang resolves Minecraft display names to stable account UUIDs
// via the Mojang profile API.
package mojang

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.mojang.com"

var (
	// ErrNotFound means no Minecraft account exists for the given name.
	ErrNotFound = errors.New("mojang: username not found")
	// ErrUnavailable covers transport failures, 5xx responses and
	// malformed bodies. The caller decides whether to resubmit.
	ErrUnavailable = errors.New("mojang: service unavailable")
)

// Profile is the resolved identity: the canonical name and the UUID every
// other API keys on.
type Profile struct {
	Name string `json:"name"`
	UUID string `json:"id"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a local server.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

// Resolve looks up the UUID for a display name. It performs exactly one
// request: no retries, no caching.
func (c *Client) Resolve(ctx context.Context, name string) (*Profile, error) {
	endpoint := fmt.Sprintf("%s/users/profiles/minecraft/%s", c.baseURL, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	if profile.UUID == "" {
		return nil, fmt.Errorf("%w: empty profile id", ErrUnavailable)
	}
	return &profile, nil
}
