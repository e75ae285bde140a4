package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Resolve(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "221B Baker Street, London", r.URL.Query().Get("q"))
		assert.Equal(t, "ops@example.com", r.URL.Query().Get("email"))
		assert.Equal(t, "waypost/1.0", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"51.5237", "lon":"-0.1585"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "ops@example.com", 5*time.Second)
	coords, err := c.Resolve(context.Background(), "221B Baker Street, London")
	require.NoError(t, err)
	assert.InDelta(t, 51.5237, coords.Latitude, 1e-9)
	assert.InDelta(t, -0.1585, coords.Longitude, 1e-9)
}

func TestClient_Resolve_NoResult(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	_, err := c.Resolve(context.Background(), "nowhere at all")
	assert.True(t, errors.Is(err, ErrNoResult))
}

func TestClient_Resolve_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	_, err := c.Resolve(context.Background(), "some address")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoResult))
}

func TestClient_Resolve_BadCoordinates(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"not-a-number", "lon":"0"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	_, err := c.Resolve(context.Background(), "some address")
	require.Error(t, err)
}

func TestClient_Resolve_ContextCancelled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, "", 5*time.Second)
	_, err := c.Resolve(ctx, "some address")
	require.Error(t, err)
}
