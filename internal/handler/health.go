package handler

import (
	"net/http"
	"time"
)

// Версия и имя сервиса для корневого эндпоинта
const (
	ServiceName    = "InsightFlow - Workspace Service"
	ServiceVersion = "1.0.0"
)

// HealthHandler обрабатывает служебные эндпоинты
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler создает новый HealthHandler
func NewHealthHandler(startedAt time.Time) *HealthHandler {
	return &HealthHandler{startedAt: startedAt}
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    int64     `json:"uptime"` // секунды
}

// InfoResponse представляет информацию о сервисе
type InfoResponse struct {
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Status    string   `json:"status"`
	Endpoints []string `json:"endpoints"`
}

// Health обрабатывает GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: now,
		Uptime:    int64(now.Sub(h.startedAt).Seconds()),
	})
}

// Info обрабатывает GET /
func (h *HealthHandler) Info(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, r, http.StatusOK, InfoResponse{
		Service: ServiceName,
		Version: ServiceVersion,
		Status:  "running",
		Endpoints: []string{
			"POST /workspaces",
			"GET /workspaces",
			"GET /workspaces/{id}",
			"PATCH /workspaces/{id}",
			"DELETE /workspaces/{id}",
			"GET /stats",
		},
	})
}
