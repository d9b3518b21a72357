package main

import (
	"testing"
	"time"

	"github.com/fakhrymubarak/weather-chatbot/internal/store"
)

func TestNewWriterDefaultsToFile(t *testing.T) {
	w := newWriter()
	if _, ok := w.(*store.FileWriter); !ok {
		t.Errorf("Expected a file writer by default, got %T", w)
	}
}

func TestServerTimeout(t *testing.T) {
	if got := serverTimeout("read_timeout", 5*time.Second); got != 10*time.Second {
		t.Errorf("Expected configured read timeout 10s, got %v", got)
	}
	if got := serverTimeout("no_such_key", 5*time.Second); got != 5*time.Second {
		t.Errorf("Expected fallback timeout 5s, got %v", got)
	}
}
