package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aidar/workspace-service/internal/config"
)

// TestEnvironment содержит все ресурсы необходимые для end-to-end тестов
type TestEnvironment struct {
	App     *App
	Server  *httptest.Server
	BaseURL string
	client  *http.Client
}

// SetupTestEnvironment создает приложение и поднимает его на httptest сервере
func SetupTestEnvironment(t *testing.T, seed bool) *TestEnvironment {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:         "0",
			Host:         "127.0.0.1",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}, MaxAge: 60},
		Log:  config.LogConfig{Format: "text"},
		Seed: config.SeedConfig{Enabled: seed},
	}

	application, err := NewWithWriter(cfg, io.Discard)
	require.NoError(t, err, "Failed to create application")

	err = application.Initialize(context.Background())
	require.NoError(t, err, "Failed to initialize application")

	server := httptest.NewServer(application.Handler())

	env := &TestEnvironment{
		App:     application,
		Server:  server,
		BaseURL: server.URL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	t.Cleanup(env.Cleanup)

	return env
}

// Cleanup останавливает тестовый сервер
func (te *TestEnvironment) Cleanup() {
	if te.Server != nil {
		te.Server.Close()
	}
}

// MakeRequest вспомогательная функция для HTTP запросов в тестах
func (te *TestEnvironment) MakeRequest(t *testing.T, method, path string, body io.Reader) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, te.BaseURL+path, body)
	require.NoError(t, err, "Failed to create request")

	req.Header.Set("Content-Type", "application/json")

	resp, err := te.client.Do(req)
	require.NoError(t, err, "Failed to make request")

	return resp
}
