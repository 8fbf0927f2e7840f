package server

import (
	_ "embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/username/vacation-calendar/internal/grid"
	"github.com/username/vacation-calendar/internal/holidays"
	"github.com/username/vacation-calendar/internal/upstream"
	"github.com/username/vacation-calendar/internal/viewstate"
	"github.com/username/vacation-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type pageData struct {
	Snapshot    viewstate.Snapshot
	CountryName string
	Title       string
	Countries   []holidays.Country
	Weekdays    []string
	Months      []monthView

	PrevURL      string
	NextURL      string
	MonthlyURL   string
	QuarterlyURL string
	ICSURL       string
}

type monthView struct {
	Title    string
	Rows     []rowView
	Holidays []holidayEntry
}

type rowView struct {
	Class string
	Cells []grid.DayCell
}

type holidayEntry struct {
	Date string
	Name string
}

// handleIndex renders the calendar page. Navigation state lives entirely
// in the query string: country, view and month=YYYY-MM.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	country := strings.ToUpper(q.Get("country"))
	if country == "" {
		country = s.cfg.UI.DefaultCountry
	}

	view := s.defaultView()
	if v := q.Get("view"); v != "" {
		view = grid.ParseView(v)
	}

	state := viewstate.New(upstream.NewLocalFetcher(s.provider, s.folder), grid.MonthOf(s.now()), country, view, s.logger)
	if m := q.Get("month"); m != "" {
		t, err := dateutil.ParseMonth(m)
		if err != nil {
			s.logger.Debug("Ignoring invalid month parameter", zap.String("month", m))
		} else {
			state.SetCursor(grid.MonthOf(t))
		}
	}

	// A failed load is shown through the snapshot's error slot
	_ = state.Sync(r.Context())

	data := s.newPage(state.Snapshot())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Error("Failed to render page", zap.Error(err))
	}
}

func (s *Server) newPage(snap viewstate.Snapshot) pageData {
	data := pageData{
		Snapshot:    snap,
		CountryName: snap.CountryName(),
		Title:       snap.Cursor.Title(),
		Countries:   holidays.Countries,
		Weekdays:    grid.WeekdayNames[:],

		PrevURL:      pageURL(snap.Country, snap.View, snap.Cursor.Add(-snap.View.Step())),
		NextURL:      pageURL(snap.Country, snap.View, snap.Cursor.Add(snap.View.Step())),
		MonthlyURL:   pageURL(snap.Country, grid.ViewMonthly, snap.Cursor),
		QuarterlyURL: pageURL(snap.Country, grid.ViewQuarterly, snap.Cursor),
		ICSURL:       "/api/v1/holidays/" + url.PathEscape(snap.Country) + "/" + strconv.Itoa(snap.Cursor.Year) + icsSuffix,
	}

	if snap.Err != "" {
		return data
	}

	for _, mg := range snap.GridsAt(s.now()) {
		mv := monthView{Title: mg.Month.Title()}
		for _, row := range mg.Rows {
			mv.Rows = append(mv.Rows, rowView{
				Class: "week density-" + row.Density.String(),
				Cells: row.Padded(),
			})
		}
		for _, date := range snap.Holidays.InMonth(mg.Month.String()) {
			mv.Holidays = append(mv.Holidays, holidayEntry{Date: date, Name: snap.Holidays[date]})
		}
		data.Months = append(data.Months, mv)
	}

	return data
}

func pageURL(country string, view grid.View, month grid.CalendarMonth) string {
	v := url.Values{}
	v.Set("country", country)
	v.Set("view", string(view))
	v.Set("month", month.String())
	return "/?" + v.Encode()
}
