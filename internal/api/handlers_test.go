package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/mnigh/hols/internal/calendar"
	"github.com/mnigh/hols/internal/config"
	"github.com/mnigh/hols/internal/database"
	"github.com/mnigh/hols/internal/dates"
)

// =============================================================================
// TEST SETUP HELPERS
// =============================================================================

// testNow is the fixed clock for every handler test: a Tuesday morning.
var testNow = time.Date(2022, time.June, 28, 10, 0, 0, 0, time.UTC)

// setupTest returns the full router over a seeded in-memory database.
func setupTest(t *testing.T) http.Handler {
	t.Helper()

	dbCfg := database.Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError, // Quiet during tests
	}))

	db, err := database.Open(dbCfg, logger)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	if _, err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	if _, err := db.Seed(ctx); err != nil {
		t.Fatalf("seed test database: %v", err)
	}

	cfg := &config.Config{
		Port:         8080,
		Env:          config.EnvDevelopment,
		DatabasePath: ":memory:",
		LogLevel:     "error",
		LogFormat:    "text",
		MinYear:      2016,
		MaxYear:      2030,
		CacheMaxAge:  time.Hour,
	}

	resolver := dates.NewResolver(func() time.Time { return testNow })
	handlers := NewHandlers(db, resolver, cfg, logger)
	return SetupRoutes(handlers, cfg, logger)
}

// get performs a GET request and returns the recorder.
func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals the envelope, and its data into out when non-nil.
func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) Response {
	t.Helper()

	var envelope struct {
		Response
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return envelope.Response
}

// assertError checks status and error code.
func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	resp := decode(t, rec, nil)
	if resp.Success {
		t.Error("success = true on error response")
	}
	if resp.Error == nil || resp.Error.Code != code {
		t.Errorf("error = %+v, want code %s", resp.Error, code)
	}
}

// =============================================================================
// HEALTH
// =============================================================================

func TestHealthCheck(t *testing.T) {
	router := setupTest(t)

	rec := get(t, router, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var data struct {
		Status    string `json:"status"`
		Provinces int    `json:"provinces"`
		Holidays  int    `json:"holidays"`
	}
	resp := decode(t, rec, &data)
	if !resp.Success || data.Status != "healthy" || data.Provinces != 13 || data.Holidays != 28 {
		t.Errorf("health = %+v %+v", resp, data)
	}
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func TestListHolidays(t *testing.T) {
	router := setupTest(t)

	tests := []struct {
		name      string
		path      string
		wantCount int
		wantFirst string // observed date of the first holiday
	}{
		{"all for year", "/api/v1/holidays?year=2022", 28, "2022-01-03"},
		{"federal", "/api/v1/holidays?year=2022&federal=true", 12, "2022-01-03"},
		{"province", "/api/v1/holidays?year=2023&province=nl", 10, "2023-01-02"},
		{"default year", "/api/v1/holidays?federal=1", 12, "2022-01-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, router, tt.path)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
			}

			var holidays []calendar.ResolvedHoliday
			decode(t, rec, &holidays)
			if len(holidays) != tt.wantCount {
				t.Fatalf("got %d holidays, want %d", len(holidays), tt.wantCount)
			}
			if holidays[0].ObservedDate != tt.wantFirst {
				t.Errorf("first observed date = %s, want %s", holidays[0].ObservedDate, tt.wantFirst)
			}
			for i := 1; i < len(holidays); i++ {
				if holidays[i].ObservedDate < holidays[i-1].ObservedDate {
					t.Errorf("holidays not sorted: %s before %s", holidays[i-1].ObservedDate, holidays[i].ObservedDate)
				}
			}
		})
	}
}

func TestListHolidays_BadParams(t *testing.T) {
	router := setupTest(t)

	tests := []struct {
		name string
		path string
		code string
	}{
		{"year not a number", "/api/v1/holidays?year=next", CodeBadYear},
		{"year too early", "/api/v1/holidays?year=1999", CodeBadYear},
		{"year too late", "/api/v1/holidays?year=2031", CodeBadYear},
		{"bad federal flag", "/api/v1/holidays?federal=maybe", CodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, router, tt.path)
			assertError(t, rec, http.StatusBadRequest, tt.code)
			if got := rec.Header().Get("Cache-Control"); got != "no-store" {
				t.Errorf("Cache-Control = %q, want no-store", got)
			}
		})
	}
}

func TestGetHoliday(t *testing.T) {
	router := setupTest(t)

	// Boxing Day is the last seeded holiday
	rec := get(t, router, "/api/v1/holidays/28?year=2021")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var h calendar.ResolvedHoliday
	decode(t, rec, &h)
	if h.NameEn != "Boxing Day" {
		t.Errorf("name = %q, want Boxing Day", h.NameEn)
	}
	if h.Date != "2021-12-26" || h.ObservedDate != "2021-12-28" {
		t.Errorf("Boxing Day 2021 = %s observed %s, want 2021-12-26 observed 2021-12-28", h.Date, h.ObservedDate)
	}
	if h.Year != 2021 {
		t.Errorf("year = %d, want 2021", h.Year)
	}

	assertError(t, get(t, router, "/api/v1/holidays/999"), http.StatusNotFound, CodeNotFound)
	assertError(t, get(t, router, "/api/v1/holidays/abc"), http.StatusBadRequest, CodeBadRequest)
}

func TestNextHoliday(t *testing.T) {
	router := setupTest(t)

	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/holidays/next", "Canada Day"},
		{"/api/v1/holidays/next?province=QC", "Canada Day"},
		{"/api/v1/holidays/next?province=NL&federal=true", "Canada Day"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, router, tt.path)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
			}
			var h calendar.ResolvedHoliday
			decode(t, rec, &h)
			if h.NameEn != tt.want {
				t.Errorf("next holiday = %q, want %q", h.NameEn, tt.want)
			}
		})
	}

	assertError(t, get(t, router, "/api/v1/holidays/next?province=ZZ"), http.StatusNotFound, CodeNotFound)
}

// =============================================================================
// PROVINCES
// =============================================================================

func TestProvinces(t *testing.T) {
	router := setupTest(t)

	rec := get(t, router, "/api/v1/provinces?year=2022")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var provinces []calendar.ResolvedProvince
	decode(t, rec, &provinces)
	if len(provinces) != 13 {
		t.Errorf("got %d provinces, want 13", len(provinces))
	}

	rec = get(t, router, "/api/v1/provinces/on?year=2022")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var ontario calendar.ResolvedProvince
	decode(t, rec, &ontario)
	if ontario.ID != "ON" || ontario.NameEn != "Ontario" {
		t.Errorf("province = %s %s, want ON Ontario", ontario.ID, ontario.NameEn)
	}
	if ontario.NextHoliday == nil || ontario.NextHoliday.NameEn != "Canada Day" {
		t.Errorf("next holiday = %+v, want Canada Day", ontario.NextHoliday)
	}
	if len(ontario.Holidays) == 0 {
		t.Error("Ontario has no holidays")
	}

	assertError(t, get(t, router, "/api/v1/provinces/ZZ"), http.StatusNotFound, CodeNotFound)
}

// =============================================================================
// DATES
// =============================================================================

func TestGetDates(t *testing.T) {
	router := setupTest(t)

	rec := get(t, router, "/api/v1/dates?rule=Friday+before+Easter&year=2021")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var got calendar.RuleDates
	decode(t, rec, &got)
	want := calendar.RuleDates{
		Rule:         "Friday before Easter",
		Year:         2021,
		Date:         "2021-04-02",
		ObservedDate: "2021-04-02",
		Display:      "April\u00a02, Friday",
		Relative:     "That’s in about 1 year",
	}
	if got != want {
		t.Errorf("dates = %+v, want %+v", got, want)
	}
}

func TestGetDates_Observed(t *testing.T) {
	router := setupTest(t)

	rec := get(t, router, "/api/v1/dates?rule=July+1")
	var got calendar.RuleDates
	decode(t, rec, &got)
	if got.Year != 2022 || got.ObservedDate != "2022-07-01" || got.Relative != "That’s in 4 days" {
		t.Errorf("dates = %+v", got)
	}
}

func TestGetDates_Errors(t *testing.T) {
	router := setupTest(t)

	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"missing rule", "/api/v1/dates", http.StatusBadRequest, CodeBadRequest},
		{"unsupported weekday", "/api/v1/dates?rule=Sunday+before+Easter", http.StatusBadRequest, CodeBadRule},
		{"bad position", "/api/v1/dates?rule=Monday+around+near+July+12", http.StatusBadRequest, CodeBadRule},
		{"impossible date", "/api/v1/dates?rule=February+30", http.StatusBadRequest, CodeBadRule},
		{"bad year", "/api/v1/dates?rule=July+1&year=3000", http.StatusBadRequest, CodeBadYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertError(t, get(t, router, tt.path), tt.status, tt.code)
		})
	}
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

func TestMiddleware_Headers(t *testing.T) {
	router := setupTest(t)

	rec := get(t, router, "/api/v1/provinces")
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=3600" {
		t.Errorf("Cache-Control = %q, want public, max-age=3600", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
}

func TestMiddleware_Preflight(t *testing.T) {
	router := setupTest(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/holidays", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}

func TestMiddleware_Recovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
	handler := RecoveryMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assertError(t, rec, http.StatusInternalServerError, CodeInternal)
}

func TestUnknownRoute(t *testing.T) {
	router := setupTest(t)
	assertError(t, get(t, router, "/api/v1/calendars"), http.StatusNotFound, CodeNotFound)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/holidays", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, want 405", rec.Code)
	}
}
