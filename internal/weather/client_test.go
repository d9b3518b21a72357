package weather

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func newTestClient(fn func(req *http.Request) *http.Response) *client {
	return &client{
		httpClient:  &http.Client{Transport: RoundTripperFunc(fn)},
		breaker:     gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: "test"}),
		apiURL:      "http://owm.test/weather",
		forecastURL: "http://owm.test/forecast",
	}
}

func jsonResponse(status int, v interface{}) *http.Response {
	b, _ := json.Marshal(v)
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(b)),
		Header:     make(http.Header),
	}
}

type owmMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
}

type owmWeather struct {
	Description string `json:"description"`
}

func TestCurrent_Success(t *testing.T) {
	t.Setenv("OPENWEATHERMAP_API_KEY", "test_api_key")

	var gotURL string
	c := newTestClient(func(req *http.Request) *http.Response {
		gotURL = req.URL.String()
		return jsonResponse(200, map[string]interface{}{
			"name":    "Moscow",
			"main":    owmMain{Temp: 11.3, FeelsLike: 9.8, Humidity: 81},
			"weather": []owmWeather{{Description: "пасмурно"}},
			"wind":    map[string]float64{"speed": 4.2},
		})
	})

	reading, err := c.Current(context.Background(), "Москва")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reading.City != "Москва" {
		t.Errorf("reading should keep the requested city name, got %q", reading.City)
	}
	if reading.Temp != 11.3 || reading.FeelsLike != 9.8 {
		t.Errorf("unexpected temperatures: %+v", reading)
	}
	if reading.Desc != "пасмурно" || reading.Humidity != 81 || reading.WindSpeed != 4.2 {
		t.Errorf("unexpected reading fields: %+v", reading)
	}

	for _, param := range []string{"units=metric", "lang=ru", "appid=test_api_key"} {
		if !bytes.Contains([]byte(gotURL), []byte(param)) {
			t.Errorf("expected %q in request URL %q", param, gotURL)
		}
	}
}

func TestCurrent_MissingWindDefaultsToZero(t *testing.T) {
	t.Setenv("OPENWEATHERMAP_API_KEY", "test_api_key")

	c := newTestClient(func(req *http.Request) *http.Response {
		return jsonResponse(200, map[string]interface{}{
			"main":    owmMain{Temp: 1.0},
			"weather": []owmWeather{{Description: "снег"}},
		})
	})

	reading, err := c.Current(context.Background(), "Норильск")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reading.WindSpeed != 0 {
		t.Errorf("expected zero wind speed, got %v", reading.WindSpeed)
	}
}

func TestCurrent_Failures(t *testing.T) {
	t.Setenv("OPENWEATHERMAP_API_KEY", "test_api_key")

	tests := []struct {
		name string
		resp func(req *http.Request) *http.Response
	}{
		{
			name: "provider 404",
			resp: func(req *http.Request) *http.Response {
				return jsonResponse(404, map[string]string{"message": "city not found"})
			},
		},
		{
			name: "provider 500",
			resp: func(req *http.Request) *http.Response {
				return jsonResponse(500, map[string]string{"message": "boom"})
			},
		},
		{
			name: "malformed payload",
			resp: func(req *http.Request) *http.Response {
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(bytes.NewReader([]byte("{not json"))),
					Header:     make(http.Header),
				}
			},
		},
		{
			name: "empty weather array",
			resp: func(req *http.Request) *http.Response {
				return jsonResponse(200, map[string]interface{}{"main": owmMain{Temp: 5}})
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(tt.resp)
			_, err := c.Current(context.Background(), "Nowhere")
			if !errors.Is(err, ErrLocationNotFound) {
				t.Errorf("expected ErrLocationNotFound, got %v", err)
			}
		})
	}
}

func TestCurrent_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENWEATHERMAP_API_KEY", "")

	c := newTestClient(func(req *http.Request) *http.Response {
		t.Fatal("no request should be issued without an API key")
		return nil
	})
	_, err := c.Current(context.Background(), "Москва")
	if !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestForecast_BucketsByCalendarDay(t *testing.T) {
	t.Setenv("OPENWEATHERMAP_API_KEY", "test_api_key")

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	type entry struct {
		Dt      int64        `json:"dt"`
		Main    owmMain      `json:"main"`
		Weather []owmWeather `json:"weather"`
	}
	var list []entry
	// Seven days, two 3-hour entries each. Only the first entry per day
	// should survive, and only five days should be returned.
	for day := 0; day < 7; day++ {
		ts := base.AddDate(0, 0, day)
		list = append(list,
			entry{Dt: ts.Unix(), Main: owmMain{Temp: float64(day)}, Weather: []owmWeather{{Description: "ясно"}}},
			entry{Dt: ts.Add(3 * time.Hour).Unix(), Main: owmMain{Temp: 99}, Weather: []owmWeather{{Description: "дождь"}}},
		)
	}

	c := newTestClient(func(req *http.Request) *http.Response {
		return jsonResponse(200, map[string]interface{}{"list": list})
	})

	days, err := c.Forecast(context.Background(), "Москва")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(days) != 5 {
		t.Fatalf("expected 5 days, got %d", len(days))
	}

	seen := make(map[string]bool)
	for i, d := range days {
		if seen[d.Date] {
			t.Errorf("duplicate calendar day %s", d.Date)
		}
		seen[d.Date] = true
		if i > 0 && days[i-1].Date >= d.Date {
			t.Errorf("days out of chronological order: %s before %s", days[i-1].Date, d.Date)
		}
		if d.Temp != float64(i) {
			t.Errorf("day %d should keep the first entry's temperature, got %v", i, d.Temp)
		}
		if d.Desc != "ясно" {
			t.Errorf("day %d should keep the first entry's description, got %q", i, d.Desc)
		}
	}
}

func TestForecast_EmptyList(t *testing.T) {
	t.Setenv("OPENWEATHERMAP_API_KEY", "test_api_key")

	c := newTestClient(func(req *http.Request) *http.Response {
		return jsonResponse(200, map[string]interface{}{"list": []struct{}{}})
	})
	_, err := c.Forecast(context.Background(), "Москва")
	if !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("expected ErrLocationNotFound, got %v", err)
	}
}
