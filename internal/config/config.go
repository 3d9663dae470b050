package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server ServerConfig // Настройки HTTP сервера
	CORS   CORSConfig   // Настройки CORS для фронтенда
	Log    LogConfig    // Настройки логирования
	Seed   SeedConfig   // Начальные данные
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string        `envconfig:"SERVER_PORT" default:"8080"`
	Host         string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout  time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`
}

// CORSConfig содержит настройки CORS
type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	MaxAge         int      `envconfig:"CORS_MAX_AGE" default:"300"` // секунды
}

// LogConfig содержит настройки логирования
type LogConfig struct {
	Level  slog.Level `envconfig:"LOG_LEVEL" default:"info"`
	Format string     `envconfig:"LOG_FORMAT" default:"json"` // json или text
}

// SeedConfig управляет заполнением хранилища примерами при старте
type SeedConfig struct {
	Enabled bool `envconfig:"SEED_DATA" default:"true"`
}

// Addr возвращает адрес для прослушивания
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// Validate проверяет значения, которые envconfig не может проверить сам
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unsupported log format %q", c.Log.Format)
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one CORS origin is required")
	}
	return nil
}

// Load читает конфигурацию из переменных окружения
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
