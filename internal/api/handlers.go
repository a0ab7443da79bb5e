package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mnigh/hols/internal/calendar"
	"github.com/mnigh/hols/internal/config"
	"github.com/mnigh/hols/internal/database"
	"github.com/mnigh/hols/internal/dates"
	"github.com/mnigh/hols/internal/logger"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db       *database.DB
	holidays *calendar.HolidayResolver
	cfg      *config.Config
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance. resolver supplies the clock
// used for default years and relative phrasing.
func NewHandlers(db *database.DB, resolver *dates.Resolver, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		db:       db,
		holidays: calendar.NewHolidayResolver(db, resolver, logger),
		cfg:      cfg,
		logger:   logger,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status, err := h.db.Health(ctx)
	if err != nil {
		logger.Warn(ctx, "health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", CodeUnhealthy)
		return
	}

	WriteSuccess(w, map[string]any{
		"status":    "healthy",
		"provinces": status.Provinces,
		"holidays":  status.Holidays,
	})
}

// ListHolidays handles GET /api/v1/holidays?year=&federal=
func (h *Handlers) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, ok := h.year(w, r)
	if !ok {
		return
	}
	filter, ok := holidayFilter(w, r)
	if !ok {
		return
	}

	holidays, err := h.holidays.HolidaysForYear(r.Context(), filter, year)
	if err != nil {
		h.writeError(w, r, err, "Failed to retrieve holidays")
		return
	}

	WriteSuccess(w, holidays)
}

// NextHoliday handles GET /api/v1/holidays/next?province=&federal=
func (h *Handlers) NextHoliday(w http.ResponseWriter, r *http.Request) {
	filter, ok := holidayFilter(w, r)
	if !ok {
		return
	}

	next, err := h.holidays.NextHoliday(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err, "Failed to retrieve next holiday")
		return
	}

	WriteSuccess(w, next)
}

// GetHoliday handles GET /api/v1/holidays/{holidayID}?year=
func (h *Handlers) GetHoliday(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "holidayID")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id < 1 {
		WriteBadRequest(w, fmt.Sprintf("Invalid holiday ID: %s", idStr))
		return
	}

	year, ok := h.year(w, r)
	if !ok {
		return
	}

	holiday, err := h.holidays.Holiday(r.Context(), id, year)
	if err != nil {
		h.writeError(w, r, err, "Failed to retrieve holiday")
		return
	}

	WriteSuccess(w, holiday)
}

// ListProvinces handles GET /api/v1/provinces?year=
func (h *Handlers) ListProvinces(w http.ResponseWriter, r *http.Request) {
	year, ok := h.year(w, r)
	if !ok {
		return
	}

	provinces, err := h.holidays.Provinces(r.Context(), year)
	if err != nil {
		h.writeError(w, r, err, "Failed to retrieve provinces")
		return
	}

	WriteSuccess(w, provinces)
}

// GetProvince handles GET /api/v1/provinces/{provinceID}?year=
func (h *Handlers) GetProvince(w http.ResponseWriter, r *http.Request) {
	year, ok := h.year(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "provinceID")
	province, err := h.holidays.Province(r.Context(), id, year)
	if err != nil {
		h.writeError(w, r, err, "Failed to retrieve province")
		return
	}

	WriteSuccess(w, province)
}

// GetDates handles GET /api/v1/dates?rule=&year=
func (h *Handlers) GetDates(w http.ResponseWriter, r *http.Request) {
	rule := strings.TrimSpace(r.URL.Query().Get("rule"))
	if rule == "" {
		WriteBadRequest(w, "rule parameter is required")
		return
	}

	year, ok := h.year(w, r)
	if !ok {
		return
	}

	result, err := h.holidays.ResolveRule(rule, year)
	if err != nil {
		if dates.IsRuleError(err) {
			WriteError(w, http.StatusBadRequest, err.Error(), CodeBadRule)
			return
		}
		h.writeError(w, r, err, "Failed to resolve rule")
		return
	}

	WriteSuccess(w, result)
}

// year reads the year query parameter, defaulting to the current year.
// On failure it writes a 400 and returns false.
func (h *Handlers) year(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return h.holidays.Dates().CurrentYear(), true
	}

	year, err := strconv.Atoi(raw)
	if err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid year: %s", raw), CodeBadYear)
		return 0, false
	}
	if !h.cfg.YearInRange(year) {
		WriteError(w, http.StatusBadRequest,
			fmt.Sprintf("Year must be between %d and %d", h.cfg.MinYear, h.cfg.MaxYear), CodeBadYear)
		return 0, false
	}
	return year, true
}

// holidayFilter reads the province and federal query parameters.
func holidayFilter(w http.ResponseWriter, r *http.Request) (database.HolidayFilter, bool) {
	q := r.URL.Query()
	filter := database.HolidayFilter{ProvinceID: q.Get("province")}

	if raw := q.Get("federal"); raw != "" {
		federal, err := strconv.ParseBool(raw)
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("Invalid federal flag: %s", raw))
			return filter, false
		}
		filter.Federal = federal
	}
	return filter, true
}

// writeError maps store and resolver errors to responses.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if errors.Is(err, database.ErrNotFound) {
		WriteNotFound(w, "Not found")
		return
	}

	logger.Error(r.Context(), msg, err, slog.String("path", r.URL.Path))
	WriteInternalError(w, msg)
}
