package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/farmii/farm-advisory/internal/advisory"
	"github.com/farmii/farm-advisory/internal/weather"
)

type AppConfig struct {
	// GeocoderAPIKey enables the Google geocoder; when empty the keyless
	// Open-Meteo geocoding API is used instead.
	GeocoderAPIKey string

	// HTTPTimeout applies to all outbound provider calls.
	HTTPTimeout time.Duration

	// FetchInterval controls how often tracked locations are refreshed.
	FetchInterval time.Duration

	// Locations to refresh on a schedule.
	Locations []weather.Location

	// In-memory report store retention.
	StoreMaxHistory int           // max number of reports per location (0 = unlimited)
	StoreMaxAge     time.Duration // max age of reports (0 = unlimited)

	// Thresholds for the advisory rules.
	Thresholds advisory.Thresholds

	// GeocodeCacheSize bounds the resolver LRU cache.
	GeocodeCacheSize int

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// Refresh interval: default 1 hour; forecasts change slowly.
	intervalStr := getenvDefault("FETCH_INTERVAL", "1h")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	// Store retention.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 168) // roughly a week at hourly refreshes

	maxAgeStr := getenvDefault("STORE_MAX_AGE", "168h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	cfg.GeocodeCacheSize = getenvInt("GEOCODE_CACHE_SIZE", 256)
	cfg.Port = getenvDefault("PORT", "8080")

	cfg.Thresholds = loadThresholds()

	locs, err := loadTrackedLocations()
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	return cfg, nil
}

// loadThresholds starts from the built-in rule cutoffs and applies any
// per-threshold overrides from the environment.
func loadThresholds() advisory.Thresholds {
	t := advisory.DefaultThresholds()
	t.HighRainPop = getenvFloat("ADVISORY_HIGH_RAIN_POP", t.HighRainPop)
	t.MedRainPop = getenvFloat("ADVISORY_MED_RAIN_POP", t.MedRainPop)
	t.HeavyRainMM = getenvFloat("ADVISORY_HEAVY_RAIN_MM", t.HeavyRainMM)
	t.HeatC = getenvFloat("ADVISORY_HEAT_C", t.HeatC)
	t.WindKmh = getenvFloat("ADVISORY_WIND_KMH", t.WindKmh)
	t.DryWeekMM = getenvFloat("ADVISORY_DRY_WEEK_MM", t.DryWeekMM)
	return t
}

// loadTrackedLocations parses the comma-separated city/country pairs the
// scheduler keeps refreshed. An empty list is valid: the service then only
// answers on-demand requests.
func loadTrackedLocations() ([]weather.Location, error) {
	city := os.Getenv("ADVISORY_LOCATION_CITY")
	if city == "" {
		return nil, nil
	}
	country := os.Getenv("ADVISORY_LOCATION_COUNTRY")

	cities := strings.Split(city, ",")
	countries := strings.Split(country, ",")
	if country != "" && len(cities) != len(countries) {
		return nil, fmt.Errorf("number of cities and countries must be the same")
	}

	var locs []weather.Location
	for i := range cities {
		loc := weather.Location{City: strings.TrimSpace(cities[i])}
		if country != "" {
			loc.Country = strings.TrimSpace(countries[i])
		}
		locs = append(locs, loc)
	}

	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
