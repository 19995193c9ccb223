package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/farmii/farm-advisory/internal/advisory"
	"github.com/farmii/farm-advisory/internal/chat"
	"github.com/farmii/farm-advisory/internal/geo"
	"github.com/farmii/farm-advisory/internal/store"
	"github.com/farmii/farm-advisory/internal/weather"
)

type stubResolver struct {
	place geo.Place
	err   error
}

func (s stubResolver) Resolve(ctx context.Context, city string) (geo.Place, error) {
	return s.place, s.err
}

type stubProvider struct {
	raw weather.RawForecast
	err error
}

func (s stubProvider) Name() string { return "stub" }

func (s stubProvider) FetchForecast(ctx context.Context, lat, lon float64, days int) (weather.RawForecast, error) {
	return s.raw, s.err
}

func newTestApp(resolver geo.Resolver, provider weather.ForecastProvider) (*fiber.App, *store.MemoryStore) {
	app := fiber.New()

	memStore := store.NewMemoryStore(10, time.Hour)
	svc := weather.NewService(memStore, resolver, provider, advisory.NewEngine(advisory.DefaultThresholds()))
	RegisterRoutes(app, svc, chat.NewBot())
	return app, memStore
}

// TestAdvisoriesMissingLocation verifies that a request with neither a
// city nor a full coordinate pair returns 400.
func TestAdvisoriesMissingLocation(t *testing.T) {
	app, _ := newTestApp(stubResolver{}, stubProvider{})

	for _, target := range []string{
		"/api/v1/advisories",
		"/api/v1/advisories?lat=12.97",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status %d, got %d", target, http.StatusBadRequest, resp.StatusCode)
		}
	}
}

// TestAdvisoriesBadParams verifies that malformed numeric parameters
// return 400 before any upstream call.
func TestAdvisoriesBadParams(t *testing.T) {
	app, _ := newTestApp(stubResolver{}, stubProvider{})

	for _, target := range []string{
		"/api/v1/advisories?lat=abc&lon=77.59",
		"/api/v1/advisories?city=Pune&days=abc",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status %d, got %d", target, http.StatusBadRequest, resp.StatusCode)
		}
	}
}

// TestAdvisoriesUnknownCity verifies that an unresolvable city returns 404.
func TestAdvisoriesUnknownCity(t *testing.T) {
	app, _ := newTestApp(stubResolver{err: geo.ErrNotFound}, stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/advisories?city=Nowhereville", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

// TestAdvisoriesOK verifies the combined response shape for a resolvable
// city with a rainy forecast.
func TestAdvisoriesOK(t *testing.T) {
	resolver := stubResolver{place: geo.Place{Name: "Pune", Country: "India", Latitude: 18.52, Longitude: 73.86}}
	provider := stubProvider{raw: weather.RawForecast{
		Daily: advisory.RawDaily{
			Time:       []string{"2026-09-01"},
			TempMax:    []float64{30},
			TempMin:    []float64{22},
			PrecipSum:  []float64{25},
			PrecipProb: []float64{90},
		},
		Current: &weather.CurrentConditions{Temperature: 27, Weathercode: 61, Time: "2026-08-31T12:00"},
	}}

	app, _ := newTestApp(resolver, provider)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/advisories?city=Pune&days=3", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var payload struct {
		Status   string `json:"status"`
		Location struct {
			Name string `json:"name"`
		} `json:"location"`
		Advisories []advisory.Advisory `json:"advisories"`
		Source     string              `json:"source"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if payload.Status != "ok" || payload.Source != "open-meteo" {
		t.Fatalf("unexpected envelope: %s", body)
	}
	if payload.Location.Name != "Pune, India" {
		t.Fatalf("expected geocoded display name, got %q", payload.Location.Name)
	}
	if len(payload.Advisories) == 0 || payload.Advisories[0].ID != "rain-2026-09-01" {
		t.Fatalf("expected heavy rain advisory first, got %v", payload.Advisories)
	}
}

// TestLatestReport verifies parameter validation, the empty-store case,
// and retrieval of the most recent stored report.
func TestLatestReport(t *testing.T) {
	app, memStore := newTestApp(stubResolver{}, stubProvider{})

	// Missing city fails validation.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/advisories/latest", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Nothing stored yet.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/advisories/latest?city=Pune&country=India", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}

	loc := weather.Location{City: "Pune", Country: "India"}
	memStore.SaveReport(loc, weather.Report{
		Location:    weather.ResolvedLocation{Name: "Pune, India"},
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Source:      "open-meteo",
	})
	memStore.SaveReport(loc, weather.Report{
		Location:    weather.ResolvedLocation{Name: "Pune, India"},
		GeneratedAt: time.Date(2026, 8, 1, 13, 0, 0, 0, time.UTC),
		Source:      "open-meteo",
	})

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/advisories/latest?city=Pune&country=India", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var report weather.Report
	if err := json.Unmarshal(body, &report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if !report.GeneratedAt.Equal(time.Date(2026, 8, 1, 13, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected the most recent report, got %v", report.GeneratedAt)
	}
}

// TestHistoryValidation verifies that the history endpoint enforces its
// required parameters and range ordering.
func TestHistoryValidation(t *testing.T) {
	app, _ := newTestApp(stubResolver{}, stubProvider{})

	for _, target := range []string{
		// Missing city.
		"/api/v1/advisories/history?from=2026-08-01T00:00:00Z&to=2026-08-02T00:00:00Z",
		// Missing range.
		"/api/v1/advisories/history?city=Pune",
		// to before from.
		"/api/v1/advisories/history?city=Pune&from=2026-08-02T00:00:00Z&to=2026-08-01T00:00:00Z",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status %d, got %d", target, http.StatusBadRequest, resp.StatusCode)
		}
	}
}

// TestHistoryReturnsStoredReports verifies the happy path over the store.
func TestHistoryReturnsStoredReports(t *testing.T) {
	app, memStore := newTestApp(stubResolver{}, stubProvider{})

	loc := weather.Location{City: "Pune", Country: "India"}
	memStore.SaveReport(loc, weather.Report{
		Location:    weather.ResolvedLocation{Name: "Pune, India"},
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Source:      "open-meteo",
	})

	target := "/api/v1/advisories/history?city=Pune&country=India" +
		"&from=2026-08-01T00:00:00Z&to=2026-08-02T00:00:00Z"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var payload struct {
		Reports []weather.Report `json:"reports"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(payload.Reports))
	}
}

// TestChatEndpoint verifies reply generation and body validation.
func TestChatEndpoint(t *testing.T) {
	app, _ := newTestApp(stubResolver{}, stubProvider{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(`{"message":"will it rain tomorrow?"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var reply chat.Reply
	if err := json.Unmarshal(body, &reply); err != nil {
		t.Fatalf("failed to decode reply: %v", err)
	}
	if reply.ID == "" || !strings.Contains(reply.Message, "Weather") {
		t.Fatalf("unexpected reply: %+v", reply)
	}

	// Empty message fails validation.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

// TestMarketPrices verifies lookup and the unknown-commodity case.
func TestMarketPrices(t *testing.T) {
	app, _ := newTestApp(stubResolver{}, stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/market/prices?commodity=tomato", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/market/prices?commodity=saffron", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}
