package history

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/fakhrymubarak/weather-chatbot/internal/model"
	"github.com/fakhrymubarak/weather-chatbot/internal/store"
)

var (
	// ErrNotFound is returned when no archived entry matches a lookup.
	ErrNotFound = errors.New("no matching history entry")
	// ErrEmpty is returned when a user has no history to summarize or export.
	ErrEmpty = errors.New("history is empty")
)

// ExportFilename is the attachment name of the CSV export.
const ExportFilename = "weather_history.csv"

var csvHeader = []string{"Город", "Температура (°C)", "Погода", "Дата и время"}

// Service derives archive lookups, statistics and export rows from a
// user's history.
type Service struct {
	store store.Store
	now   func() time.Time
}

// NewService creates a Service. An optional clock may be injected for
// tests; it defaults to time.Now.
func NewService(s store.Store, now ...func() time.Time) *Service {
	clock := time.Now
	if len(now) > 0 && now[0] != nil {
		clock = now[0]
	}
	return &Service{store: s, now: clock}
}

// FindYesterday returns the most recent archived entry for the exact city
// whose timestamp falls on the previous calendar day.
func (s *Service) FindYesterday(userID int64, city string) (model.WeatherEvent, error) {
	yesterday := s.now().AddDate(0, 0, -1).Format("2006-01-02")
	events := s.store.History(userID)
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].City == city && strings.HasPrefix(events[i].Timestamp, yesterday) {
			return events[i], nil
		}
	}
	return model.WeatherEvent{}, ErrNotFound
}

// ComputeStats summarizes a user's history. Ties for the most frequent
// city are broken by first appearance in the history.
func (s *Service) ComputeStats(userID int64) (model.Stats, error) {
	events := s.store.History(userID)
	if len(events) == 0 {
		return model.Stats{}, ErrEmpty
	}

	counts := make(map[string]int)
	var order []string
	for _, ev := range events {
		if counts[ev.City] == 0 {
			order = append(order, ev.City)
		}
		counts[ev.City]++
	}
	top := order[0]
	for _, city := range order {
		if counts[city] > counts[top] {
			top = city
		}
	}

	return model.Stats{
		TotalRequests: len(events),
		TopCity:       top,
		TopCityCount:  counts[top],
		FirstDate:     datePrefix(events[0].Timestamp),
		LastDate:      datePrefix(events[len(events)-1].Timestamp),
	}, nil
}

// ExportRows returns the history as-is for tabular export. An empty result
// signals that there is nothing to export.
func (s *Service) ExportRows(userID int64) []model.WeatherEvent {
	return s.store.History(userID)
}

// ExportCSV renders the history as a UTF-8 CSV document with a byte-order
// mark, one row per archived entry.
func (s *Service) ExportCSV(userID int64) ([]byte, error) {
	rows := s.ExportRows(userID)
	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM, required by the export consumers
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, ev := range rows {
		record := []string{
			ev.City,
			strconv.FormatFloat(ev.Temp, 'f', -1, 64),
			ev.Desc,
			ev.Timestamp,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func datePrefix(timestamp string) string {
	if len(timestamp) < 10 {
		return timestamp
	}
	return timestamp[:10]
}
