// Package hypixel wraps the two Hypixel API endpoints the bot depends on:
// the player document and the per-mode player counts.
package hypixel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.hypixel.net"

var (
	// ErrRateLimited is returned on HTTP 429. The user-facing copy tells
	// people to wait rather than "try later", so it stays distinct from
	// ErrUnavailable.
	ErrRateLimited = errors.New("hypixel: rate limited")
	// ErrNoProfile means the Minecraft account exists but has never
	// logged into Hypixel (the API returns success with a null player).
	ErrNoProfile = errors.New("hypixel: no player data")
	// ErrUnavailable covers every other failure mode.
	ErrUnavailable = errors.New("hypixel: service unavailable")
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a local server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

type playerResponse struct {
	Success bool    `json:"success"`
	Player  *Player `json:"player"`
}

// Player fetches the player document for a UUID. Every call hits the
// network; documents are never cached.
func (c *Client) Player(ctx context.Context, uuid string) (*Player, error) {
	endpoint := fmt.Sprintf("%s/player?key=%s&uuid=%s", c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(uuid))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var body playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	if !body.Success {
		return nil, fmt.Errorf("%w: api reported failure", ErrUnavailable)
	}
	if body.Player == nil {
		return nil, ErrNoProfile
	}
	return body.Player, nil
}

type countsResponse struct {
	Success bool `json:"success"`
	Games   map[string]struct {
		Modes map[string]int `json:"modes"`
	} `json:"games"`
}

// PixelPartyQueue returns the current number of players in the Pixel Party
// mode, from the /counts endpoint.
func (c *Client) PixelPartyQueue(ctx context.Context) (int, error) {
	endpoint := fmt.Sprintf("%s/counts?key=%s", c.baseURL, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var body countsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	if !body.Success {
		return 0, fmt.Errorf("%w: api reported failure", ErrUnavailable)
	}
	return body.Games["ARCADE"].Modes["PIXEL_PARTY"], nil
}
