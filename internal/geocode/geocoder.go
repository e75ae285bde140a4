// Package geocode resolves textual addresses into coordinates.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"waypost/internal/observability"
)

// ErrNoResult indicates the geocoder returned no match for the address.
var ErrNoResult = errors.New("address could not be resolved")

// Coordinates is a geocoded latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocoder maps a textual address to coordinates. Implementations must treat
// "no match" as an error; callers never receive partial coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (Coordinates, error)
}

// Client is a Nominatim-compatible HTTP geocoder.
type Client struct {
	baseURL    string
	email      string
	httpClient *http.Client
}

// NewClient returns a Client against the given Nominatim-compatible endpoint.
// The email is sent along with requests as required by the public Nominatim
// usage policy; leave it empty for self-hosted instances.
func NewClient(baseURL, email string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		email:      email,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// nominatimPlace is the subset of the search response we consume.
type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve looks up the address and returns its coordinates.
func (c *Client) Resolve(ctx context.Context, address string) (Coordinates, error) {
	start := time.Now()

	coords, err := c.resolve(ctx, address)
	switch {
	case errors.Is(err, ErrNoResult):
		observability.ObserveGeocode("miss", start)
	case err != nil:
		observability.ObserveGeocode("error", start)
	default:
		observability.ObserveGeocode("hit", start)
	}
	return coords, err
}

func (c *Client) resolve(ctx context.Context, address string) (Coordinates, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("q", address)
	if c.email != "" {
		params.Set("email", c.email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return Coordinates{}, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", "waypost/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(places) == 0 {
		return Coordinates{}, ErrNoResult
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("invalid latitude %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("invalid longitude %q: %w", places[0].Lon, err)
	}

	return Coordinates{Latitude: lat, Longitude: lon}, nil
}
