package upstream

import (
	"context"
	"errors"
	"net/http"

	"github.com/username/vacation-calendar/internal/holidays"
)

// LocalFetcher serves holidays.Fetcher straight from a Provider, so the
// server-rendered UI does not loop back through its own HTTP API.
// Failures are reported exactly as the HTTP client would report them.
type LocalFetcher struct {
	provider Provider
	folder   holidays.Folder
}

// NewLocalFetcher creates a fetcher over provider
func NewLocalFetcher(provider Provider, folder holidays.Folder) *LocalFetcher {
	return &LocalFetcher{provider: provider, folder: folder}
}

// Fetch implements holidays.Fetcher
func (f *LocalFetcher) Fetch(ctx context.Context, country string, year int) (holidays.HolidayMap, error) {
	resp, err := f.provider.Holidays(ctx, country, year)
	if err != nil {
		status := http.StatusInternalServerError
		var upErr *Error
		if errors.As(err, &upErr) {
			status = upErr.Status
		}
		return nil, &holidays.RemoteFetchError{Message: err.Error(), StatusCode: status, Err: err}
	}

	if resp == nil || resp.Response == nil {
		return holidays.HolidayMap{}, nil
	}
	return f.folder.Fold(resp.Response.Holidays), nil
}
