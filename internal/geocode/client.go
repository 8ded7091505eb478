// Package geocode resolves free-text locations to coordinates via a
// Mapbox-style forward-geocoding API.
package geocode

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const defaultBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

// Point is a longitude/latitude pair.
type Point struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Client calls the forward-geocoding API.
type Client struct {
	httpClient *http.Client
	token      string

	// Overridable URL for testing.
	baseURL string
}

// NewClient creates a geocoding client with the given access token.
func NewClient(token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("geocoding token is required")
	}
	return &Client{
		httpClient: &http.Client{},
		token:      token,
		baseURL:    defaultBaseURL,
	}, nil
}

// forwardResponse is the relevant slice of the geocoding API response.
type forwardResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Forward resolves a location string to a coordinate pair.
func (c *Client) Forward(location string) (Point, error) {
	if location == "" {
		return Point{}, fmt.Errorf("location is required")
	}

	params := url.Values{
		"access_token": {c.token},
		"limit":        {"1"},
	}
	endpoint := fmt.Sprintf("%s/%s.json?%s", c.baseURL, url.PathEscape(location), params.Encode())

	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		return Point{}, fmt.Errorf("sending request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = fmt.Errorf("%w (also failed to close body: %v)", err, closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return Point{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var result forwardResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Point{}, fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Features) == 0 || len(result.Features[0].Geometry.Coordinates) < 2 {
		return Point{}, fmt.Errorf("no results for %q", location)
	}

	coords := result.Features[0].Geometry.Coordinates
	return Point{Longitude: coords[0], Latitude: coords[1]}, nil
}
