// Package grid builds week-structured month grids annotated with holidays.
//
// Months are zero-based (0 = January .. 11 = December) to match the
// navigation cursor used by the view layer. Weeks start on Sunday.
package grid

import (
	"time"

	"github.com/username/vacation-calendar/pkg/dateutil"
)

// DaysPerWeek is the number of columns in a grid row
const DaysPerWeek = 7

// Density classifies how many holidays fall within a week row
type Density int

const (
	DensityNone Density = iota
	DensitySingle
	DensityMultiple
)

// String returns the lowercase name used by renderers and CSS classes
func (d Density) String() string {
	switch d {
	case DensitySingle:
		return "single"
	case DensityMultiple:
		return "multiple"
	default:
		return "none"
	}
}

// Classify maps a holiday count to its density bucket
func Classify(holidays int) Density {
	switch {
	case holidays <= 0:
		return DensityNone
	case holidays == 1:
		return DensitySingle
	default:
		return DensityMultiple
	}
}

// DayCell is a single slot of a week row. A zero Day marks padding.
type DayCell struct {
	Day     int
	Date    string // YYYY-MM-DD, empty for padding
	IsToday bool
	Holiday string
}

// IsEmpty reports whether the cell is padding
func (c DayCell) IsEmpty() bool {
	return c.Day == 0
}

// IsHoliday reports whether the cell carries a holiday name
func (c DayCell) IsHoliday() bool {
	return !c.IsEmpty() && c.Holiday != ""
}

// WeekRow is one week of a month grid, Sunday first.
// The final row of a month is not right-padded and may hold fewer than 7 cells.
type WeekRow struct {
	Cells        []DayCell
	HolidayCount int
	Density      Density
}

// Padded returns the row's cells right-padded with empty cells to 7 slots
func (w WeekRow) Padded() []DayCell {
	cells := make([]DayCell, DaysPerWeek)
	copy(cells, w.Cells)
	return cells
}

// Build constructs the grid for (year, month) using the local clock for "today"
func Build(year, month int, holidays map[string]string) []WeekRow {
	return BuildAt(year, month, holidays, time.Now())
}

// BuildAt constructs the grid for (year, month) relative to now.
// now is compared by its own local calendar date, not converted to UTC.
func BuildAt(year, month int, holidays map[string]string, now time.Time) []WeekRow {
	m := time.Month(month + 1)
	offset := int(dateutil.FirstWeekday(year, m))
	days := dateutil.DaysInMonth(year, m)

	flat := make([]DayCell, 0, offset+days)
	for i := 0; i < offset; i++ {
		flat = append(flat, DayCell{})
	}

	for day := 1; day <= days; day++ {
		date := dateutil.FormatDate(year, m, day)
		flat = append(flat, DayCell{
			Day:     day,
			Date:    date,
			IsToday: now.Year() == year && now.Month() == m && now.Day() == day,
			Holiday: holidays[date],
		})
	}

	rows := make([]WeekRow, 0, (len(flat)+DaysPerWeek-1)/DaysPerWeek)
	for start := 0; start < len(flat); start += DaysPerWeek {
		end := start + DaysPerWeek
		if end > len(flat) {
			end = len(flat)
		}

		row := WeekRow{Cells: flat[start:end:end]}
		for _, cell := range row.Cells {
			if cell.IsHoliday() {
				row.HolidayCount++
			}
		}
		row.Density = Classify(row.HolidayCount)
		rows = append(rows, row)
	}

	return rows
}
