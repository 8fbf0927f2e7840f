package grid

import (
	"fmt"
	"time"
)

// View selects how many months are displayed at once
type View string

const (
	ViewMonthly   View = "monthly"
	ViewQuarterly View = "quarterly"
)

// ParseView parses a view name, defaulting to monthly for unknown input
func ParseView(s string) View {
	if View(s) == ViewQuarterly {
		return ViewQuarterly
	}
	return ViewMonthly
}

// Step returns how many months prev/next navigation moves
func (v View) Step() int {
	if v == ViewQuarterly {
		return 3
	}
	return 1
}

// Span returns how many months the view displays
func (v View) Span() int {
	return v.Step()
}

// CalendarMonth identifies a month by year and zero-based month index
type CalendarMonth struct {
	Year  int
	Month int // 0..11
}

// MonthOf returns the CalendarMonth containing t
func MonthOf(t time.Time) CalendarMonth {
	return CalendarMonth{Year: t.Year(), Month: int(t.Month()) - 1}
}

// Add returns the month n months away, carrying into the year
func (c CalendarMonth) Add(n int) CalendarMonth {
	total := c.Year*12 + c.Month + n
	year := total / 12
	month := total % 12
	if month < 0 {
		month += 12
		year--
	}
	return CalendarMonth{Year: year, Month: month}
}

// Title returns e.g. "February 2024"
func (c CalendarMonth) Title() string {
	return fmt.Sprintf("%s %d", time.Month(c.Month+1), c.Year)
}

// String returns the YYYY-MM form used in query parameters
func (c CalendarMonth) String() string {
	return fmt.Sprintf("%04d-%02d", c.Year, c.Month+1)
}

// Months returns the months displayed for the cursor in the given view
func Months(cursor CalendarMonth, view View) []CalendarMonth {
	months := make([]CalendarMonth, 0, view.Span())
	for offset := 0; offset < view.Span(); offset++ {
		months = append(months, cursor.Add(offset))
	}
	return months
}

// WeekdayNames are the column headers, Sunday first
var WeekdayNames = [DaysPerWeek]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
