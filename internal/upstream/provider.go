// Package upstream serves holiday data to the holiday API from an external
// service, built-in rule sets or a local file.
package upstream

import (
	"context"
	"net/http"
	"strings"

	"github.com/username/vacation-calendar/internal/holidays"
)

// Provider returns the holiday payload for a country and year
type Provider interface {
	Holidays(ctx context.Context, country string, year int) (*holidays.Response, error)
}

// Error is a provider failure carrying the HTTP status the API should answer with
type Error struct {
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	return e.Detail
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports an unknown country
func NotFound(country string) *Error {
	return &Error{Status: http.StatusNotFound, Detail: "Country not found"}
}

// newResponse wraps records in the service payload shape
func newResponse(country string, year int, records []holidays.Record) *holidays.Response {
	if records == nil {
		records = []holidays.Record{}
	}
	return &holidays.Response{
		Meta: map[string]interface{}{
			"code":    http.StatusOK,
			"country": strings.ToUpper(country),
			"year":    year,
		},
		Response: &holidays.HolidayList{Holidays: records},
	}
}
