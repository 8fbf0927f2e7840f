package viewstate

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/username/vacation-calendar/internal/grid"
	"github.com/username/vacation-calendar/internal/holidays"
	"go.uber.org/zap/zaptest"
)

type fetchCall struct {
	country string
	year    int
}

// fakeFetcher answers from a table; countries listed in block wait for release
type fakeFetcher struct {
	mu      sync.Mutex
	calls   []fetchCall
	results map[string]holidays.HolidayMap
	errs    map[string]error
	block   map[string]chan struct{}
	started chan string
}

func (f *fakeFetcher) Fetch(ctx context.Context, country string, year int) (holidays.HolidayMap, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{country, year})
	wait := f.block[country]
	f.mu.Unlock()

	if f.started != nil {
		f.started <- country
	}
	if wait != nil {
		<-wait
	}
	if err := f.errs[country]; err != nil {
		return nil, err
	}
	return f.results[country], nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestState_Navigation(t *testing.T) {
	s := New(&fakeFetcher{}, grid.CalendarMonth{Year: 2024, Month: 11}, "", grid.ViewMonthly, zaptest.NewLogger(t))

	if got := s.Snapshot().Country; got != holidays.DefaultCountry {
		t.Errorf("default country = %q, want %q", got, holidays.DefaultCountry)
	}

	s.Next()
	if got := s.Snapshot().Cursor; got != (grid.CalendarMonth{Year: 2025, Month: 0}) {
		t.Errorf("after Next() cursor = %v, want 2025-01", got)
	}

	s.SetView(grid.ViewQuarterly)
	s.Prev()
	if got := s.Snapshot().Cursor; got != (grid.CalendarMonth{Year: 2024, Month: 9}) {
		t.Errorf("after quarterly Prev() cursor = %v, want 2024-10", got)
	}

	months := s.Snapshot().Months()
	if len(months) != 3 || months[2] != (grid.CalendarMonth{Year: 2024, Month: 11}) {
		t.Errorf("Months() = %v", months)
	}
}

func TestState_SetCursorChangesFetchedYear(t *testing.T) {
	fetcher := &fakeFetcher{results: map[string]holidays.HolidayMap{"IN": {}}}
	s := New(fetcher, grid.CalendarMonth{Year: 2024, Month: 5}, "IN", grid.ViewMonthly, zaptest.NewLogger(t))

	if err := s.Sync(context.Background()); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	s.SetCursor(grid.CalendarMonth{Year: 2024, Month: 0})
	if s.NeedsRefresh() {
		t.Error("same year should not need a refresh")
	}

	s.SetCursor(grid.CalendarMonth{Year: 2019, Month: 3})
	if got := s.Snapshot().Cursor; got != (grid.CalendarMonth{Year: 2019, Month: 3}) {
		t.Errorf("cursor = %v, want 2019-04", got)
	}
	if err := s.Sync(context.Background()); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	fetcher.mu.Lock()
	defer fetcher.mu.Unlock()
	if len(fetcher.calls) != 2 || fetcher.calls[1] != (fetchCall{"IN", 2019}) {
		t.Errorf("calls = %v, want second fetch for IN/2019", fetcher.calls)
	}
}

func TestState_RefreshSuccess(t *testing.T) {
	fetcher := &fakeFetcher{
		results: map[string]holidays.HolidayMap{
			"US": {"2024-07-04": "Independence Day"},
		},
	}
	s := New(fetcher, grid.CalendarMonth{Year: 2024, Month: 6}, "US", grid.ViewMonthly, zaptest.NewLogger(t))

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	snap := s.Snapshot()
	if snap.Loading || snap.Err != "" {
		t.Errorf("snapshot loading=%v err=%q, want idle without error", snap.Loading, snap.Err)
	}
	if snap.Holidays["2024-07-04"] != "Independence Day" {
		t.Errorf("holidays = %v", snap.Holidays)
	}

	grids := snap.Grids()
	if len(grids) != 1 {
		t.Fatalf("Grids() = %d months, want 1", len(grids))
	}
	// July 2024: the 4th is a Thursday in the first row
	if grids[0].Rows[0].Density != grid.DensitySingle {
		t.Errorf("first row density = %v, want single", grids[0].Rows[0].Density)
	}
}

func TestState_RefreshFailureClearsHolidays(t *testing.T) {
	fetcher := &fakeFetcher{
		results: map[string]holidays.HolidayMap{"US": {"2024-07-04": "Independence Day"}},
		errs: map[string]error{
			"XX": &holidays.RemoteFetchError{Message: "Country not found", StatusCode: 404},
		},
	}
	s := New(fetcher, grid.CalendarMonth{Year: 2024, Month: 6}, "US", grid.ViewMonthly, zaptest.NewLogger(t))

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	s.SetCountry("XX")
	err := s.Refresh(context.Background())

	var fetchErr *holidays.RemoteFetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Refresh() error = %v, want *RemoteFetchError", err)
	}

	snap := s.Snapshot()
	if snap.Err != "Country not found" {
		t.Errorf("error slot = %q, want %q", snap.Err, "Country not found")
	}
	if len(snap.Holidays) != 0 {
		t.Errorf("holidays = %v, want cleared", snap.Holidays)
	}

	// A later success replaces the error
	s.SetCountry("US")
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if snap := s.Snapshot(); snap.Err != "" || len(snap.Holidays) != 1 {
		t.Errorf("after recovery err=%q holidays=%v", snap.Err, snap.Holidays)
	}
}

func TestState_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	fetcher := &fakeFetcher{
		results: map[string]holidays.HolidayMap{
			"IN": {"2024-01-26": "Republic Day"},
			"GB": {"2024-12-26": "Boxing Day"},
		},
		block:   map[string]chan struct{}{"IN": release},
		started: make(chan string, 2),
	}
	s := New(fetcher, grid.CalendarMonth{Year: 2024, Month: 0}, "IN", grid.ViewMonthly, zaptest.NewLogger(t))

	done := make(chan error, 1)
	go func() {
		done <- s.Refresh(context.Background())
	}()
	<-fetcher.started

	s.SetCountry("GB")
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("second Refresh() error = %v", err)
	}
	<-fetcher.started

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Refresh() error = %v", err)
	}

	snap := s.Snapshot()
	if _, ok := snap.Holidays["2024-01-26"]; ok {
		t.Error("stale IN response overwrote newer GB holidays")
	}
	if snap.Holidays["2024-12-26"] != "Boxing Day" {
		t.Errorf("holidays = %v, want GB holidays", snap.Holidays)
	}
	if snap.Loading {
		t.Error("state still loading after latest refresh completed")
	}
}

func TestState_Sync(t *testing.T) {
	fetcher := &fakeFetcher{results: map[string]holidays.HolidayMap{"DE": {}}}
	s := New(fetcher, grid.CalendarMonth{Year: 2024, Month: 10}, "DE", grid.ViewMonthly, zaptest.NewLogger(t))

	ctx := context.Background()
	if err := s.Sync(ctx); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	s.Next() // December, same year
	if err := s.Sync(ctx); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if got := fetcher.callCount(); got != 1 {
		t.Errorf("fetches within one year = %d, want 1", got)
	}

	s.Next() // January next year
	if err := s.Sync(ctx); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if got := fetcher.callCount(); got != 2 {
		t.Errorf("fetches after year change = %d, want 2", got)
	}
}
