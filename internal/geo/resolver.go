// Package geo resolves free-text place names to geographic coordinates.
package geo

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned when a place name does not resolve to coordinates.
var ErrNotFound = errors.New("location not found")

// Place is a resolved location.
type Place struct {
	Name      string
	Country   string
	Latitude  float64
	Longitude float64
}

// Label returns the display name used in advisory reports, e.g. "Pune, India".
func (p Place) Label() string {
	if p.Country == "" {
		return p.Name
	}
	return strings.TrimSpace(p.Name + ", " + p.Country)
}

// Resolver turns a city name into coordinates.
type Resolver interface {
	Resolve(ctx context.Context, city string) (Place, error)
}
