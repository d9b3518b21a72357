package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fakhrymubarak/weather-chatbot/internal/config"
	"github.com/fakhrymubarak/weather-chatbot/internal/engine"
	"github.com/fakhrymubarak/weather-chatbot/internal/handler"
	"github.com/fakhrymubarak/weather-chatbot/internal/history"
	"github.com/fakhrymubarak/weather-chatbot/internal/store"
	"github.com/fakhrymubarak/weather-chatbot/internal/weather"
)

func main() {
	log := config.GetLogger()

	userStore := store.New(newWriter())
	weatherClient := weather.NewClient()
	historyService := history.NewService(userStore)
	conversation := engine.New(weatherClient, userStore, historyService)
	chatHandler := handler.NewChatHandler(conversation)

	mux := http.NewServeMux()
	mux.HandleFunc("/chat", chatHandler.HandleChat)
	mux.HandleFunc("/health", chatHandler.HandleHealth)

	port := config.GetServerPort()
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  serverTimeout("read_timeout", 10*time.Second),
		WriteTimeout: serverTimeout("write_timeout", 15*time.Second),
	}

	go func() {
		log.Infow("weather chat bot running", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server stopped", "error", err)
		}
	}()

	// Wait for termination signal, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}
}

// newWriter picks the durable-store backend from config.
func newWriter() store.Writer {
	switch config.GetStorageBackend() {
	case "redis":
		return store.NewRedisWriter(config.GetRedisAddr())
	default:
		return store.NewFileWriter(config.GetStoragePath())
	}
}

func serverTimeout(key string, def time.Duration) time.Duration {
	dur, err := time.ParseDuration(config.GetServerTimeout(key))
	if err != nil {
		return def
	}
	return dur
}
