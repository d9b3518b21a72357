package store

import (
	"sync"

	"github.com/fakhrymubarak/weather-chatbot/internal/config"
	"github.com/fakhrymubarak/weather-chatbot/internal/model"
)

// Writer persists the whole user store to durable storage and loads it
// back. Implementations must treat Load of a missing store as an error;
// the store itself decides that this is non-fatal.
type Writer interface {
	Load() (map[int64]*model.UserRecord, error)
	Save(map[int64]*model.UserRecord) error
}

// Store holds per-user persisted state: the default city and the
// append-only request history.
type Store interface {
	DefaultCity(userID int64) (string, bool)
	SetDefaultCity(userID int64, city string)
	AppendHistory(userID int64, event model.WeatherEvent)
	History(userID int64) []model.WeatherEvent
}

type userStore struct {
	mu     sync.Mutex
	users  map[int64]*model.UserRecord
	writer Writer
}

// New creates a Store backed by the given writer. The store is loaded once
// here; a missing or corrupt durable store is logged and replaced with an
// empty one, never fatal.
func New(writer Writer) Store {
	users, err := writer.Load()
	if err != nil {
		config.GetLogger().Errorw("could not load user store, starting empty", "error", err)
		users = nil
	}
	if users == nil {
		users = make(map[int64]*model.UserRecord)
	}
	return &userStore{users: users, writer: writer}
}

func (s *userStore) DefaultCity(userID int64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[userID]
	if !ok || rec.DefaultCity == "" {
		return "", false
	}
	return rec.DefaultCity, true
}

func (s *userStore) SetDefaultCity(userID int64, city string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(userID).DefaultCity = city
	s.persist()
}

func (s *userStore) AppendHistory(userID int64, event model.WeatherEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.record(userID)
	rec.History = append(rec.History, event)
	s.persist()
}

func (s *userStore) History(userID int64) []model.WeatherEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[userID]
	if !ok {
		return nil
	}
	out := make([]model.WeatherEvent, len(rec.History))
	copy(out, rec.History)
	return out
}

// record returns the user's record, creating it lazily. Callers must hold
// the mutex.
func (s *userStore) record(userID int64) *model.UserRecord {
	rec, ok := s.users[userID]
	if !ok {
		rec = &model.UserRecord{}
		s.users[userID] = rec
	}
	return rec
}

// persist rewrites the full store after every mutation. A save failure is
// logged; the in-memory state keeps serving. Callers must hold the mutex.
func (s *userStore) persist() {
	if err := s.writer.Save(s.users); err != nil {
		config.GetLogger().Errorw("could not persist user store", "error", err)
	}
}
