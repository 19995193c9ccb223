package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/farmii/farm-advisory/internal/httpx"
)

// OpenMeteoResolver resolves city names via the Open-Meteo geocoding API.
// It needs no API key.
type OpenMeteoResolver struct {
	name    string
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoResolver(client *http.Client) *OpenMeteoResolver {
	return &OpenMeteoResolver{
		name:    "openmeteo-geocoding",
		baseURL: "https://geocoding-api.open-meteo.com/v1/search",
		httpCfg: httpx.ClientConfig{
			Client:  client,
			Backoff: httpx.DefaultBackoff(),
		},
		circuit: httpx.NewBreaker("openmeteo-geocoding"),
	}
}

func (r *OpenMeteoResolver) Resolve(ctx context.Context, city string) (Place, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("name", city)
		values.Set("count", "1")
		values.Set("language", "en")
		values.Set("format", "json")

		u := fmt.Sprintf("%s?%s", r.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := httpx.Do(ctx, r.httpCfg, r.circuit, buildRequest)
	if err != nil {
		return Place{}, fmt.Errorf("geocode %q: %w", city, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Country   string  `json:"country"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Place{}, fmt.Errorf("geocode %q: decode response: %w", city, err)
	}

	if len(payload.Results) == 0 {
		return Place{}, fmt.Errorf("geocode %q: %w", city, ErrNotFound)
	}

	g := payload.Results[0]
	return Place{
		Name:      g.Name,
		Country:   g.Country,
		Latitude:  g.Latitude,
		Longitude: g.Longitude,
	}, nil
}
