package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fakhrymubarak/weather-chatbot/internal/config"
	"github.com/fakhrymubarak/weather-chatbot/internal/model"
	"github.com/sony/gobreaker"
)

// ErrLocationNotFound is the single failure outcome of the provider client.
// Network errors, timeouts, non-2xx statuses, malformed payloads and an
// open circuit all fold into it; the conversation flow does not distinguish
// them.
var ErrLocationNotFound = errors.New("location not found")

// Client fetches and normalizes weather data from OpenWeatherMap.
type Client interface {
	Current(ctx context.Context, city string) (*model.WeatherReading, error)
	Forecast(ctx context.Context, city string) ([]model.ForecastDay, error)
}

type client struct {
	httpClient  *http.Client
	breaker     *gobreaker.CircuitBreaker
	apiURL      string
	forecastURL string
}

// NewClient creates a provider client. Every request is bounded by the
// configured timeout and guarded by a circuit breaker; no retries are
// performed.
func NewClient(httpClient ...*http.Client) Client {
	hc := &http.Client{Timeout: config.GetWeatherRequestTimeout()}
	if len(httpClient) > 0 && httpClient[0] != nil {
		hc = httpClient[0]
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweathermap",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &client{
		httpClient:  hc,
		breaker:     cb,
		apiURL:      config.GetOpenWeatherApiUrl(),
		forecastURL: config.GetOpenWeatherForecastUrl(),
	}
}

// Current fetches current conditions for a free-text city name.
func (c *client) Current(ctx context.Context, city string) (*model.WeatherReading, error) {
	body, err := c.get(ctx, c.apiURL, city)
	if err != nil {
		return nil, ErrLocationNotFound
	}

	var data model.OpenWeatherMapCurrentResponse
	if err := json.Unmarshal(body, &data); err != nil {
		config.GetLogger().Errorw("malformed current-weather payload", "city", city, "error", err)
		return nil, ErrLocationNotFound
	}
	if len(data.Weather) == 0 {
		return nil, ErrLocationNotFound
	}

	return &model.WeatherReading{
		City:      city,
		Temp:      data.Main.Temp,
		FeelsLike: data.Main.FeelsLike,
		Desc:      data.Weather[0].Description,
		Humidity:  data.Main.Humidity,
		WindSpeed: data.Wind.Speed,
	}, nil
}

// Forecast fetches the 5-day/3-hour forecast and buckets it into at most
// five calendar days. The first entry seen for a day wins, and days keep
// the order they were first encountered in, which is chronological because
// provider entries are time-ordered.
func (c *client) Forecast(ctx context.Context, city string) ([]model.ForecastDay, error) {
	body, err := c.get(ctx, c.forecastURL, city)
	if err != nil {
		return nil, ErrLocationNotFound
	}

	var data model.OpenWeatherMapForecastResponse
	if err := json.Unmarshal(body, &data); err != nil {
		config.GetLogger().Errorw("malformed forecast payload", "city", city, "error", err)
		return nil, ErrLocationNotFound
	}
	if len(data.List) == 0 {
		return nil, ErrLocationNotFound
	}

	seen := make(map[string]bool)
	var days []model.ForecastDay
	for _, item := range data.List {
		if len(item.Weather) == 0 {
			continue
		}
		date := time.Unix(item.Dt, 0).Format("2006-01-02")
		if seen[date] {
			continue
		}
		seen[date] = true
		days = append(days, model.ForecastDay{
			Date: date,
			Temp: item.Main.Temp,
			Desc: item.Weather[0].Description,
		})
		if len(days) >= 5 {
			break
		}
	}
	if len(days) == 0 {
		return nil, ErrLocationNotFound
	}
	return days, nil
}

func (c *client) get(ctx context.Context, baseURL, city string) ([]byte, error) {
	apiKey := config.GetOpenWeatherMapAPIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("OPENWEATHERMAP_API_KEY environment variable not set")
	}

	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", apiKey)
	values.Set("units", "metric")
	values.Set("lang", "ru")

	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+values.Encode(), nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		config.GetLogger().Errorw("provider request failed", "city", city, "error", err)
		return nil, err
	}
	return result.([]byte), nil
}
