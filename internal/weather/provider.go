package weather

import (
	"context"
	"time"
)

// ForecastProvider abstracts a multi-day forecast source (e.g. Open-Meteo).
type ForecastProvider interface {
	Name() string
	FetchForecast(ctx context.Context, lat, lon float64, days int) (RawForecast, error)
}

// Store is the contract the in-memory report store (and any future
// persistent store) must satisfy.
type Store interface {
	SaveReport(loc Location, report Report)
	GetLatest(loc Location) (Report, error)
	GetRange(loc Location, from, to time.Time) ([]Report, error)
}
