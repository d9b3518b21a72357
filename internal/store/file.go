package store

import (
	"encoding/json"
	"os"

	"github.com/fakhrymubarak/weather-chatbot/internal/model"
)

// FileWriter persists the user store as a single JSON document mapping
// decimal user ids to records.
type FileWriter struct {
	path string
}

func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

func (w *FileWriter) Load() (map[int64]*model.UserRecord, error) {
	raw, err := os.ReadFile(w.path)
	if err != nil {
		return nil, err
	}
	var users map[int64]*model.UserRecord
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (w *FileWriter) Save(users map[int64]*model.UserRecord) error {
	b, err := json.MarshalIndent(users, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(w.path, b, 0o644)
}
