// Package render prints month grids as text.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/username/vacation-calendar/internal/grid"
	"github.com/username/vacation-calendar/internal/holidays"
	"github.com/username/vacation-calendar/internal/viewstate"
	"golang.org/x/term"
)

const cellWidth = 5

// Options controls text output
type Options struct {
	Color bool
}

// DetectOptions enables color when w is a terminal and NO_COLOR is unset
func DetectOptions(w io.Writer) Options {
	if f, ok := w.(*os.File); ok {
		return Options{Color: !color.NoColor && term.IsTerminal(int(f.Fd()))}
	}
	return Options{}
}

// Renderer writes calendar views as text
type Renderer struct {
	w    io.Writer
	opts Options

	title    *color.Color
	heading  *color.Color
	today    *color.Color
	holiday  *color.Color
	single   *color.Color
	multiple *color.Color
}

// New creates a Renderer writing to w
func New(w io.Writer, opts Options) *Renderer {
	r := &Renderer{
		w:        w,
		opts:     opts,
		title:    color.New(color.Bold),
		heading:  color.New(color.FgGreen),
		today:    color.New(color.ReverseVideo),
		holiday:  color.New(color.Bold),
		single:   color.New(color.BgBlue),
		multiple: color.New(color.BgGreen),
	}

	for _, c := range []*color.Color{r.title, r.heading, r.today, r.holiday, r.single, r.multiple} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return r
}

// View writes the header, any error, and every displayed month of the snapshot
func (r *Renderer) View(snap viewstate.Snapshot) {
	fmt.Fprintln(r.w, r.title.Sprint("Global Vacation Calendar"))
	fmt.Fprintf(r.w, "Displaying holidays and festivals for %s\n\n", snap.CountryName())

	if snap.Err != "" {
		fmt.Fprintf(r.w, "Error: %s\n", snap.Err)
		fmt.Fprintln(r.w, "Please check the backend server and try again.")
		return
	}

	for i, mg := range snap.Grids() {
		if i > 0 {
			fmt.Fprintln(r.w)
		}
		r.Month(mg.Month, mg.Rows, snap.Holidays)
	}
}

// Month writes one month grid followed by its holiday list
func (r *Renderer) Month(month grid.CalendarMonth, rows []grid.WeekRow, hm holidays.HolidayMap) {
	width := cellWidth * grid.DaysPerWeek
	title := month.Title()
	pad := (width - len(title)) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(r.w, "%s%s\n", strings.Repeat(" ", pad), r.heading.Sprint(title))

	for _, name := range grid.WeekdayNames {
		fmt.Fprintf(r.w, "%*s", cellWidth, name)
	}
	fmt.Fprintln(r.w)

	for _, row := range rows {
		var b strings.Builder
		for _, cell := range row.Padded() {
			b.WriteString(r.cell(cell))
		}
		line := b.String()
		switch row.Density {
		case grid.DensitySingle:
			line = r.single.Sprint(line) + "  ·"
		case grid.DensityMultiple:
			line = r.multiple.Sprint(line) + "  ··"
		}
		fmt.Fprintln(r.w, line)
	}

	dates := hm.InMonth(month.String())
	if len(dates) == 0 {
		return
	}
	fmt.Fprintln(r.w)
	for _, date := range dates {
		fmt.Fprintf(r.w, "  %s  %s\n", date, hm[date])
	}
}

// cell renders a day as "  12 ", "  12*" for holidays and " [12]" for today
func (r *Renderer) cell(c grid.DayCell) string {
	if c.IsEmpty() {
		return strings.Repeat(" ", cellWidth)
	}

	switch {
	case c.IsToday:
		return r.today.Sprintf(" [%2d]", c.Day)
	case c.IsHoliday():
		return r.holiday.Sprintf("  %2d*", c.Day)
	default:
		return fmt.Sprintf("  %2d ", c.Day)
	}
}
