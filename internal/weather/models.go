package weather

import (
	"time"

	"github.com/farmii/farm-advisory/internal/advisory"
)

// Location represents a logical place for which we track advisories.
// Either City (optionally with Country) or both coordinates must be set.
type Location struct {
	City    string   `json:"city"`
	Country string   `json:"country,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

// ResolvedLocation is the geocoded place a report was generated for.
type ResolvedLocation struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CurrentConditions is the point-in-time snapshot that accompanies a
// forecast. The advisory engine does not consume it; it is passed through
// to clients.
type CurrentConditions struct {
	Temperature   float64 `json:"temperature"`
	Windspeed     float64 `json:"windspeed"`
	Winddirection float64 `json:"winddirection"`
	Weathercode   int     `json:"weathercode"`
	Time          string  `json:"time"`
}

// RawForecast is the upstream forecast payload before normalization.
type RawForecast struct {
	Daily   advisory.RawDaily
	Current *CurrentConditions
}

// Report is one advisory run for one location: the resolved place, the
// normalized forecast it was derived from, and the advisories themselves.
type Report struct {
	Location    ResolvedLocation         `json:"location"`
	GeneratedAt time.Time                `json:"generatedAt"` // always UTC
	Current     *CurrentConditions       `json:"current"`
	Daily       []advisory.DailyForecast `json:"daily"`
	Advisories  []advisory.Advisory      `json:"advisories"`
	Source      string                   `json:"source"`
}
