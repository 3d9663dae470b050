package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/aidar/workspace-service/internal/config"
	"github.com/aidar/workspace-service/internal/handler"
	"github.com/aidar/workspace-service/internal/middleware"
	"github.com/aidar/workspace-service/internal/repository/memory"
	"github.com/aidar/workspace-service/internal/service"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config    *config.Config
	store     *memory.WorkspaceRepository
	server    *http.Server
	logger    *slog.Logger
	startedAt time.Time
}

// New создает новый экземпляр приложения
func New(cfg *config.Config) (*App, error) {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter создает приложение, пишущее логи в out
func NewWithWriter(cfg *config.Config, out io.Writer) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &App{
		config:    cfg,
		logger:    newLogger(cfg.Log, out),
		startedAt: time.Now().UTC(),
	}

	return app, nil
}

func newLogger(cfg config.LogConfig, out io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(out, opts))
	}
	return slog.New(slog.NewJSONHandler(out, opts))
}

// Initialize инициализирует все компоненты приложения
func (a *App) Initialize(ctx context.Context) error {
	// Хранилище живет в памяти процесса все время работы приложения
	a.store = memory.NewWorkspaceRepository()

	if a.config.Seed.Enabled {
		if err := service.SeedWorkspaces(ctx, a.store, time.Now().UTC()); err != nil {
			return fmt.Errorf("failed to seed data: %w", err)
		}
		count, err := a.store.CountActive(ctx)
		if err != nil {
			return fmt.Errorf("failed to count seeded workspaces: %w", err)
		}
		a.logger.Info("Seed data loaded", "workspaces", count)
	}

	// Настраиваем HTTP сервер и роутинг
	a.setupServer()

	a.logger.Info("Application initialized successfully")
	return nil
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() {
	// Инициализируем слой сервисов (бизнес-логика)
	workspaceService := service.NewWorkspaceService(a.store, a.logger)
	statsService := service.NewStatsService(a.store)

	// Инициализируем HTTP обработчики
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService, a.logger)
	statsHandler := handler.NewStatsHandler(statsService, a.logger)
	healthHandler := handler.NewHealthHandler(a.startedAt)

	// Настраиваем роутер
	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(middleware.CORS(a.config.CORS))

	// Служебные эндпоинты
	r.Get("/", healthHandler.Info)
	r.Get("/health", healthHandler.Health)

	// Эндпоинты рабочих пространств
	r.Mount("/workspaces", workspaceHandler.Routes())

	// Административная статистика
	r.Get("/stats", statsHandler.GetStats)

	// Создаем HTTP сервер с настройками таймаутов
	addr := a.config.Server.Addr()
	a.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}

	a.logger.Info("HTTP server configured", "addr", addr)
}

// Handler возвращает корневой HTTP обработчик (после Initialize)
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", "addr", a.server.Addr)
	return a.server.ListenAndServe()
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}
