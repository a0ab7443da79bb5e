// Command coverage checks a running holidays API across a range of years.
//
// For every year it fetches /api/v1/holidays and checks each resolved
// holiday: both dates parse, the observed date is not on a weekend (June 21
// excepted), and the observed date is within a few days of the literal one.
//
// Usage:
//
//	go run ./cmd/coverage -url http://localhost:8080 -start 2016 -years 15
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/rickar/cal/v2"
)

// maxShift is the furthest an observed date may sit from its literal date.
const maxShift = 3 * 24 * time.Hour

// APIResponse matches the API response structure
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Holiday is the subset of a resolved holiday the checks need.
type Holiday struct {
	ID           int64  `json:"id"`
	NameEn       string `json:"nameEn"`
	DateRule     string `json:"dateRule"`
	Date         string `json:"date"`
	ObservedDate string `json:"observedDate"`
}

// TestResult holds the result for a single holiday in a single year
type TestResult struct {
	Year         int    `json:"year"`
	Holiday      string `json:"holiday"`
	Rule         string `json:"rule"`
	Date         string `json:"date"`
	ObservedDate string `json:"observed_date"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

// HolidayStats tracks results for one holiday across years
type HolidayStats struct {
	Holiday     string `json:"holiday"`
	Rule        string `json:"rule"`
	TotalYears  int    `json:"total_years"`
	FailedYears []int  `json:"failed_years,omitempty"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	startYear := flag.Int("start", 2016, "Start year")
	years := flag.Int("years", 15, "Number of years to test")
	verbose := flag.Bool("v", false, "Verbose output (show each holiday)")
	outputFile := flag.String("o", "", "Output results to JSON file")
	flag.Parse()

	endYear := *startYear + *years - 1

	fmt.Println("================================================================")
	fmt.Println("Holidays API - Coverage Test")
	fmt.Println("================================================================")
	fmt.Printf("Base URL:    %s\n", *baseURL)
	fmt.Printf("Years:       %d to %d\n", *startYear, endYear)
	fmt.Println()

	client := &http.Client{Timeout: 5 * time.Second}
	if _, err := client.Get(*baseURL + "/health"); err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}

	var results []TestResult
	for year := *startYear; year <= endYear; year++ {
		holidays, err := fetchHolidays(client, *baseURL, year)
		if err != nil {
			results = append(results, TestResult{Year: year, Holiday: "(all)", Error: err.Error()})
			fmt.Printf("  ✗ %d: %v\n", year, err)
			continue
		}

		failed := 0
		for _, h := range holidays {
			r := checkHoliday(year, h)
			results = append(results, r)
			if !r.Success {
				failed++
			}
			if *verbose {
				status := "✓"
				if !r.Success {
					status = "✗"
				}
				fmt.Printf("    %s %s %s (%s)\n", status, r.ObservedDate, r.Holiday, r.Rule)
				if !r.Success {
					fmt.Printf("        Error: %s\n", r.Error)
				}
			}
		}
		fmt.Printf("  %d: %d holidays, %d failures\n", year, len(holidays), failed)
	}
	fmt.Println()

	stats, failures := analyzeResults(results)
	printSummary(results, failures)
	printFailuresByHoliday(stats)

	if *outputFile != "" {
		saveResults(*outputFile, stats, failures)
	}

	if len(failures) > 0 {
		os.Exit(1)
	}
}

func fetchHolidays(client *http.Client, baseURL string, year int) ([]Holiday, error) {
	resp, err := client.Get(fmt.Sprintf("%s/api/v1/holidays?year=%d", baseURL, year))
	if err != nil {
		return nil, fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	if !apiResp.Success {
		if apiResp.Error != nil {
			return nil, fmt.Errorf("%s (%s)", apiResp.Error.Message, apiResp.Error.Code)
		}
		return nil, fmt.Errorf("unknown error (HTTP %d)", resp.StatusCode)
	}

	var holidays []Holiday
	if err := json.Unmarshal(apiResp.Data, &holidays); err != nil {
		return nil, fmt.Errorf("data parse error: %w", err)
	}
	return holidays, nil
}

// checkHoliday validates one resolved holiday.
func checkHoliday(year int, h Holiday) TestResult {
	result := TestResult{
		Year:         year,
		Holiday:      h.NameEn,
		Rule:         h.DateRule,
		Date:         h.Date,
		ObservedDate: h.ObservedDate,
	}

	literal, err := time.Parse("2006-01-02", h.Date)
	if err != nil {
		result.Error = "bad literal date"
		return result
	}
	observed, err := time.Parse("2006-01-02", h.ObservedDate)
	if err != nil {
		result.Error = "bad observed date"
		return result
	}

	switch {
	case literal.Year() != year || observed.Year() != year:
		result.Error = "resolved into another year"
	case cal.IsWeekend(observed) && h.DateRule != "June 21":
		result.Error = fmt.Sprintf("observed on a %s", observed.Weekday())
	case observed.Sub(literal) > maxShift || literal.Sub(observed) > maxShift:
		result.Error = "observed too far from literal date"
	default:
		result.Success = true
	}
	return result
}

func analyzeResults(results []TestResult) (map[string]*HolidayStats, []TestResult) {
	stats := make(map[string]*HolidayStats)
	var failures []TestResult

	for _, r := range results {
		if _, ok := stats[r.Holiday]; !ok {
			stats[r.Holiday] = &HolidayStats{Holiday: r.Holiday, Rule: r.Rule}
		}
		stats[r.Holiday].TotalYears++

		if !r.Success {
			stats[r.Holiday].FailedYears = append(stats[r.Holiday].FailedYears, r.Year)
			failures = append(failures, r)
		}
	}

	return stats, failures
}

func printSummary(results, failures []TestResult) {
	fmt.Println("================================================================")
	fmt.Println("SUMMARY")
	fmt.Println("================================================================")
	if len(results) == 0 {
		fmt.Println("Nothing tested.")
		return
	}
	fmt.Printf("Holiday-years tested: %d\n", len(results))
	fmt.Printf("Failed:               %d (%.1f%%)\n", len(failures),
		float64(len(failures))/float64(len(results))*100)
	fmt.Println()
}

func printFailuresByHoliday(stats map[string]*HolidayStats) {
	var failing []*HolidayStats
	for _, s := range stats {
		if len(s.FailedYears) > 0 {
			failing = append(failing, s)
		}
	}
	if len(failing) == 0 {
		fmt.Println("No failures!")
		return
	}

	sort.Slice(failing, func(i, j int) bool {
		return len(failing[i].FailedYears) > len(failing[j].FailedYears)
	})

	fmt.Println("================================================================")
	fmt.Println("FAILURES BY HOLIDAY")
	fmt.Println("================================================================")
	for _, s := range failing {
		fmt.Printf("\n%s (%s): %d of %d years\n", s.Holiday, s.Rule, len(s.FailedYears), s.TotalYears)
		for i, year := range s.FailedYears {
			if i >= 5 {
				fmt.Printf("  ... and %d more\n", len(s.FailedYears)-5)
				break
			}
			fmt.Printf("  - %d\n", year)
		}
	}
	fmt.Println()
}

func saveResults(filename string, stats map[string]*HolidayStats, failures []TestResult) {
	output := struct {
		GeneratedAt string                   `json:"generated_at"`
		ByHoliday   map[string]*HolidayStats `json:"by_holiday"`
		Failures    []TestResult             `json:"failures"`
	}{
		GeneratedAt: time.Now().Format(time.RFC3339),
		ByHoliday:   stats,
		Failures:    failures,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling results: %v\n", err)
		return
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		fmt.Printf("Error writing file: %v\n", err)
		return
	}

	fmt.Printf("Results saved to: %s\n", filename)
}
