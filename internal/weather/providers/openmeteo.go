package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/farmii/farm-advisory/internal/httpx"
	"github.com/farmii/farm-advisory/internal/weather"
)

// OpenMeteoProvider implements weather.ForecastProvider for Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		httpCfg: httpx.ClientConfig{
			Client:  client,
			Backoff: httpx.DefaultBackoff(),
		},
		circuit: httpx.NewBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// dailyParams is the daily parameter set advisories are derived from.
const dailyParams = "temperature_2m_max,temperature_2m_min,precipitation_sum," +
	"precipitation_probability_max,weathercode,windspeed_10m_max,uv_index_max"

func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, lat, lon float64, days int) (weather.RawForecast, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", lat))
		values.Set("longitude", fmt.Sprintf("%f", lon))
		values.Set("daily", dailyParams)
		values.Set("current_weather", "true")
		values.Set("timezone", "auto")
		values.Set("forecast_days", strconv.Itoa(days))

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := httpx.Do(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.RawForecast{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Daily          json.RawMessage `json:"daily"`
		CurrentWeather *struct {
			Temperature   float64 `json:"temperature"`
			Windspeed     float64 `json:"windspeed"`
			Winddirection float64 `json:"winddirection"`
			Weathercode   int     `json:"weathercode"`
			Time          string  `json:"time"`
		} `json:"current_weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.RawForecast{}, err
	}

	var raw weather.RawForecast

	if len(payload.Daily) > 0 {
		if err := json.Unmarshal(payload.Daily, &raw.Daily); err != nil {
			return weather.RawForecast{}, err
		}
	}

	if payload.CurrentWeather != nil {
		raw.Current = &weather.CurrentConditions{
			Temperature:   payload.CurrentWeather.Temperature,
			Windspeed:     payload.CurrentWeather.Windspeed,
			Winddirection: payload.CurrentWeather.Winddirection,
			Weathercode:   payload.CurrentWeather.Weathercode,
			Time:          payload.CurrentWeather.Time,
		}
	}

	return raw, nil
}
