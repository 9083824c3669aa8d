package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Geocoder resolves coordinates to a city name against a nominatim-style
// reverse endpoint. Best effort only: callers surface failures as a
// dismissible message and never retry automatically.
type Geocoder struct {
	baseURL string
	client  *http.Client
}

func NewGeocoder(baseURL string, client *http.Client) *Geocoder {
	return &Geocoder{baseURL: baseURL, client: client}
}

type reverseResponse struct {
	Address struct {
		City  string `json:"city"`
		State string `json:"state"`
	} `json:"address"`
}

// ReverseGeocode returns the city (or state when the city is missing) for
// the coordinates.
func (g *Geocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	u := fmt.Sprintf("%s/reverse?format=json&lat=%s&lon=%s",
		g.baseURL,
		url.QueryEscape(strconv.FormatFloat(lat, 'f', -1, 64)),
		url.QueryEscape(strconv.FormatFloat(lon, 'f', -1, 64)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("create reverse geocode request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var rr reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return "", fmt.Errorf("decode reverse geocode response: %w", err)
	}

	switch {
	case rr.Address.City != "":
		return rr.Address.City, nil
	case rr.Address.State != "":
		return rr.Address.State, nil
	default:
		return "", fmt.Errorf("no city in geocoder response")
	}
}
