package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mnigh/hols/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET /health
//	GET /api/v1/holidays                  ?year= &federal= &province=
//	GET /api/v1/holidays/next             ?federal= &province=
//	GET /api/v1/holidays/{holidayID}      ?year=
//	GET /api/v1/provinces                 ?year=
//	GET /api/v1/provinces/{provinceID}    ?year=
//	GET /api/v1/dates                     ?rule= &year=
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		RequestIDMiddleware(),
		RecoveryMiddleware(logger),
		LoggingMiddleware(logger),
		CORSMiddleware(),
		CacheControlMiddleware(cfg.CacheMaxAge),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/holidays", handlers.ListHolidays)
		r.Get("/holidays/next", handlers.NextHoliday)
		r.Get("/holidays/{holidayID}", handlers.GetHoliday)

		r.Get("/provinces", handlers.ListProvinces)
		r.Get("/provinces/{provinceID}", handlers.GetProvince)

		r.Get("/dates", handlers.GetDates)
	})

	return r
}
