package geo

import (
	"context"
	"fmt"
	"strings"

	"github.com/kelvins/geocoder"
)

// GoogleResolver resolves city names via the Google Geocoding API.
// Used instead of Open-Meteo geocoding when a Google API key is configured.
type GoogleResolver struct{}

func NewGoogleResolver(apiKey string) *GoogleResolver {
	geocoder.ApiKey = apiKey
	return &GoogleResolver{}
}

// Resolve looks the city up through the Google Geocoding API. The
// underlying client does not take a context; ctx only gates entry.
func (r *GoogleResolver) Resolve(ctx context.Context, city string) (Place, error) {
	if err := ctx.Err(); err != nil {
		return Place{}, err
	}

	loc, err := geocoder.Geocoding(geocoder.Address{City: city})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return Place{}, fmt.Errorf("geocode %q: %w", city, ErrNotFound)
		}
		return Place{}, fmt.Errorf("geocode %q: %w", city, err)
	}

	return Place{
		Name:      city,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}, nil
}
