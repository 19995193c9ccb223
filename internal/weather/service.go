package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/farmii/farm-advisory/internal/advisory"
	"github.com/farmii/farm-advisory/internal/geo"
)

const (
	// MaxForecastDays caps how far ahead reports look.
	MaxForecastDays = 7

	sourceName = "open-meteo"
)

// ErrMissingLocation is returned when a query carries neither a city name
// nor a full coordinate pair.
var ErrMissingLocation = errors.New("provide city or lat & lon")

// Query identifies the place a report is requested for. City is used only
// when the coordinate pair is incomplete.
type Query struct {
	City string
	Lat  *float64
	Lon  *float64
}

// Service orchestrates location resolution, forecast fetching,
// normalization, and advisory derivation, and persists scheduled reports.
type Service struct {
	store    Store
	resolver geo.Resolver
	provider ForecastProvider
	engine   *advisory.Engine
}

// NewService creates a new Service.
func NewService(store Store, resolver geo.Resolver, provider ForecastProvider, engine *advisory.Engine) *Service {
	return &Service{
		store:    store,
		resolver: resolver,
		provider: provider,
		engine:   engine,
	}
}

// GetReport resolves the query to coordinates, fetches a forecast for up
// to days days, and derives advisories from it. days values outside 1..7
// are treated as 7.
func (s *Service) GetReport(ctx context.Context, q Query, days int) (Report, error) {
	if days <= 0 || days > MaxForecastDays {
		days = MaxForecastDays
	}

	resolved, err := s.resolve(ctx, q)
	if err != nil {
		return Report{}, err
	}

	raw, err := s.provider.FetchForecast(ctx, resolved.Latitude, resolved.Longitude, days)
	if err != nil {
		return Report{}, fmt.Errorf("fetch forecast for %s: %w", resolved.Name, err)
	}

	daily := advisory.Normalize(raw.Daily)
	advisories := s.engine.Generate(resolved.Name, daily)

	return Report{
		Location:    resolved,
		GeneratedAt: time.Now().UTC(),
		Current:     raw.Current,
		Daily:       daily,
		Advisories:  advisories,
		Source:      sourceName,
	}, nil
}

// resolve fills in coordinates, geocoding the city when the query does not
// carry a full pair. Mirrors the facade contract: city-only queries that do
// not geocode fail with geo.ErrNotFound; queries with neither city nor both
// coordinates fail with ErrMissingLocation.
func (s *Service) resolve(ctx context.Context, q Query) (ResolvedLocation, error) {
	if q.Lat != nil && q.Lon != nil {
		name := q.City
		if name == "" {
			name = "Unknown"
		}
		return ResolvedLocation{
			Name:      name,
			Latitude:  *q.Lat,
			Longitude: *q.Lon,
		}, nil
	}

	if q.City == "" {
		return ResolvedLocation{}, ErrMissingLocation
	}

	place, err := s.resolver.Resolve(ctx, q.City)
	if err != nil {
		return ResolvedLocation{}, err
	}

	return ResolvedLocation{
		Name:      place.Label(),
		Latitude:  place.Latitude,
		Longitude: place.Longitude,
	}, nil
}

// RefreshAndStore generates a fresh report for a tracked location and
// appends it to the store. Called by the scheduler.
func (s *Service) RefreshAndStore(ctx context.Context, loc Location) error {
	report, err := s.GetReport(ctx, Query{City: loc.City, Lat: loc.Lat, Lon: loc.Lon}, MaxForecastDays)
	if err != nil {
		// Keep the last good report; the next run retries.
		log.Printf("refresh failed for %s: %v", loc.Key(), err)
		return err
	}

	s.store.SaveReport(loc, report)
	return nil
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest(loc Location) (Report, error) {
	return s.store.GetLatest(loc)
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(loc Location, from, to time.Time) ([]Report, error) {
	return s.store.GetRange(loc, from, to)
}
