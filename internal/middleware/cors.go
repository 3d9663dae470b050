package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/aidar/workspace-service/internal/config"
)

// CORS создает middleware, разрешающий запросы фронтенда с настроенных источников
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Location"},
		MaxAge:         cfg.MaxAge,
	})
	return c.Handler
}
