// Package viewstate holds the calendar's view state: the navigation cursor,
// the selected country and view mode, and the holidays of the current
// (country, year) selection.
package viewstate

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/username/vacation-calendar/internal/grid"
	"github.com/username/vacation-calendar/internal/holidays"
	"go.uber.org/zap"
)

// Snapshot is a consistent copy of the state for rendering
type Snapshot struct {
	Cursor   grid.CalendarMonth
	Country  string
	View     grid.View
	Holidays holidays.HolidayMap
	Err      string
	Loading  bool
}

// MonthGrid is one displayed month with its rows
type MonthGrid struct {
	Month grid.CalendarMonth
	Rows  []grid.WeekRow
}

// Months returns the months shown for the snapshot's cursor and view
func (s Snapshot) Months() []grid.CalendarMonth {
	return grid.Months(s.Cursor, s.View)
}

// Grids builds one grid per displayed month from the current holidays
func (s Snapshot) Grids() []MonthGrid {
	return s.GridsAt(time.Now())
}

// GridsAt is Grids with today taken from now
func (s Snapshot) GridsAt(now time.Time) []MonthGrid {
	months := s.Months()
	grids := make([]MonthGrid, 0, len(months))
	for _, m := range months {
		grids = append(grids, MonthGrid{Month: m, Rows: grid.BuildAt(m.Year, m.Month, s.Holidays, now)})
	}
	return grids
}

// CountryName returns the display name of the selected country
func (s Snapshot) CountryName() string {
	return holidays.CountryName(s.Country)
}

// State owns the mutable view state. All methods are safe for concurrent use.
type State struct {
	fetcher holidays.Fetcher
	logger  *zap.Logger

	mu       sync.Mutex
	cursor   grid.CalendarMonth
	country  string
	view     grid.View
	holidays holidays.HolidayMap
	err      string
	loading  bool

	// issued is the sequence number of the latest refresh started;
	// loadedKey is the (country, year) whose holidays are held.
	issued    uint64
	loadedKey string
}

// New creates a State positioned at cursor
func New(fetcher holidays.Fetcher, cursor grid.CalendarMonth, country string, view grid.View, logger *zap.Logger) *State {
	if country == "" {
		country = holidays.DefaultCountry
	}

	return &State{
		fetcher:  fetcher,
		logger:   logger,
		cursor:   cursor,
		country:  country,
		view:     view,
		holidays: holidays.HolidayMap{},
	}
}

// Snapshot returns a copy of the current state
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Cursor:   s.cursor,
		Country:  s.country,
		View:     s.view,
		Holidays: s.holidays,
		Err:      s.err,
		Loading:  s.loading,
	}
}

// Next moves the cursor forward by the view's step
func (s *State) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = s.cursor.Add(s.view.Step())
}

// Prev moves the cursor back by the view's step
func (s *State) Prev() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = s.cursor.Add(-s.view.Step())
}

// SetCursor moves the cursor to month
func (s *State) SetCursor(month grid.CalendarMonth) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = month
}

// SetCountry selects a country
func (s *State) SetCountry(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.country = code
}

// SetView switches between monthly and quarterly display
func (s *State) SetView(view grid.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
}

// NeedsRefresh reports whether the held holidays belong to another (country, year)
func (s *State) NeedsRefresh() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadedKey != selectionKey(s.country, s.cursor.Year)
}

// Refresh fetches the holidays of the current (country, cursor year).
//
// Each call is tagged with a sequence number; a completion that is not the
// latest issued is discarded so an older response never overwrites a newer
// one. On failure the held holidays are cleared and the error slot records
// the message. The returned error is the fetch error of this call, if it was
// applied.
func (s *State) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	country := s.country
	year := s.cursor.Year
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	result, err := s.fetcher.Fetch(ctx, country, year)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.issued {
		s.logger.Debug("Discarding stale holiday response",
			zap.String("country", country),
			zap.Int("year", year),
			zap.Uint64("seq", seq),
			zap.Uint64("latest", s.issued))
		return nil
	}

	s.loading = false
	if err != nil {
		s.holidays = holidays.HolidayMap{}
		s.loadedKey = ""
		s.err = errorMessage(err)
		s.logger.Warn("Failed to load holidays",
			zap.String("country", country),
			zap.Int("year", year),
			zap.Error(err))
		return err
	}

	if result == nil {
		result = holidays.HolidayMap{}
	}
	s.holidays = result
	s.loadedKey = selectionKey(country, year)
	return nil
}

func errorMessage(err error) string {
	var fetchErr *holidays.RemoteFetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Message
	}
	return err.Error()
}

func selectionKey(country string, year int) string {
	return country + "/" + strconv.Itoa(year)
}

// Sync refreshes only when the (country, year) selection changed since the last load
func (s *State) Sync(ctx context.Context) error {
	if !s.NeedsRefresh() {
		return nil
	}
	return s.Refresh(ctx)
}
