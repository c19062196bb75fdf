package hypixel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithBaseURL("test-key", srv.URL)
}

func TestClientPlayer_Success(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/player", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "abc123", r.URL.Query().Get("uuid"))
		w.Write([]byte(`{"success":true,"player":{"displayname":"Steve","networkExp":37500}}`))
	})

	player, err := client.Player(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "Steve", player.Displayname)
	assert.Equal(t, float64(37500), player.NetworkExp)
}

func TestClientPlayer_RateLimited(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Player(context.Background(), "abc123")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestClientPlayer_NullPlayer(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"player":null}`))
	})

	_, err := client.Player(context.Background(), "abc123")
	assert.ErrorIs(t, err, ErrNoProfile)
}

func TestClientPlayer_APIFailure(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"cause":"Invalid API key"}`))
	})

	_, err := client.Player(context.Background(), "abc123")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClientPlayer_ServerError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Player(context.Background(), "abc123")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClientPlayer_MalformedBody(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":`))
	})

	_, err := client.Player(context.Background(), "abc123")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClientPixelPartyQueue(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/counts", r.URL.Path)
		w.Write([]byte(`{"success":true,"games":{"ARCADE":{"modes":{"PIXEL_PARTY":27,"DROPPER":101}}}}`))
	})

	count, err := client.PixelPartyQueue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 27, count)
}

func TestClientPixelPartyQueue_ModeAbsent(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"games":{"ARCADE":{"modes":{"DROPPER":5}}}}`))
	})

	count, err := client.PixelPartyQueue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestClientPixelPartyQueue_ServerError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.PixelPartyQueue(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
