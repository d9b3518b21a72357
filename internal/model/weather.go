package model

// WeatherReading is a normalized point-in-time observation from the
// provider. It is never persisted; it is rendered immediately or reduced
// to a WeatherEvent.
type WeatherReading struct {
	City      string
	Temp      float64
	FeelsLike float64
	Desc      string
	Humidity  int
	WindSpeed float64
}

// ForecastDay is one day of a multi-day forecast.
type ForecastDay struct {
	Date string // YYYY-MM-DD
	Temp float64
	Desc string
}

// WeatherEvent is a single archived weather request. Events are appended
// to a user's history in chronological order and never modified.
// The json tags define the durable-file schema.
type WeatherEvent struct {
	City      string  `json:"city"`
	Temp      float64 `json:"temp"`
	Desc      string  `json:"desc"`
	Timestamp string  `json:"timestamp"` // RFC 3339
}

// UserRecord is the persisted per-user state.
type UserRecord struct {
	DefaultCity string         `json:"default_city,omitempty"`
	History     []WeatherEvent `json:"history,omitempty"`
}

// Stats summarizes a user's request history.
type Stats struct {
	TotalRequests int
	TopCity       string
	TopCityCount  int
	FirstDate     string
	LastDate      string
}
