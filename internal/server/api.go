package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/username/vacation-calendar/internal/export"
	"github.com/username/vacation-calendar/internal/holidays"
	"github.com/username/vacation-calendar/internal/upstream"
	"go.uber.org/zap"
)

const (
	icsSuffix          = ".ics"
	maxCountryCodeSize = 8
)

// Error details
const (
	ErrInvalidYear    = "Invalid year"
	ErrInvalidCountry = "Invalid country code"
	ErrInternalServer = "Internal server error"
)

// handleHolidays answers GET /api/v1/holidays/{country}/{year} with the
// upstream payload, or with an iCalendar file when year ends in ".ics".
func (s *Server) handleHolidays(w http.ResponseWriter, r *http.Request) {
	country := r.PathValue("country")
	yearParam := r.PathValue("year")

	asICS := strings.HasSuffix(yearParam, icsSuffix)
	yearParam = strings.TrimSuffix(yearParam, icsSuffix)

	if country == "" || len(country) > maxCountryCodeSize {
		writeDetail(w, http.StatusBadRequest, ErrInvalidCountry, s.logger)
		return
	}

	year, err := strconv.Atoi(yearParam)
	if err != nil || year < 1 || year > 9999 {
		writeDetail(w, http.StatusBadRequest, ErrInvalidYear, s.logger)
		return
	}

	resp, err := s.provider.Holidays(r.Context(), country, year)
	if err != nil {
		status := http.StatusInternalServerError
		detail := ErrInternalServer
		var upErr *upstream.Error
		if errors.As(err, &upErr) {
			status = upErr.Status
			detail = upErr.Detail
		}

		s.logger.Warn("Holiday lookup failed",
			zap.String("country", country),
			zap.Int("year", year),
			zap.Int("status", status),
			zap.Error(err))
		writeDetail(w, status, detail, s.logger)
		return
	}

	if !asICS {
		writeJSON(w, http.StatusOK, resp, s.logger)
		return
	}

	var records []holidays.Record
	if resp.Response != nil {
		records = resp.Response.Holidays
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.Filename(country, year)))
	if err := export.WriteICS(w, country, year, s.folder.Fold(records)); err != nil {
		s.logger.Error("Failed to write calendar", zap.Error(err))
	}
}

type countryEntry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// handleCountries lists the selector countries as {code, name} in display order
func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	entries := make([]countryEntry, 0, len(holidays.Countries))
	for _, c := range holidays.Countries {
		entries = append(entries, countryEntry{Code: c.Code, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, entries, s.logger)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeDetail writes the {"detail": ...} error body the holiday client expects
func writeDetail(w http.ResponseWriter, status int, detail string, logger *zap.Logger) {
	writeJSON(w, status, holidays.ErrorBody{Detail: detail}, logger)
}
