// Package export writes holiday maps as iCalendar files.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/username/vacation-calendar/internal/holidays"
	"github.com/username/vacation-calendar/pkg/dateutil"
)

// ProductID identifies the generator in PRODID
const ProductID = "-//vacation-calendar//Holidays//EN"

// Filename returns the download name for a country/year calendar
func Filename(country string, year int) string {
	return fmt.Sprintf("holidays_%s_%d.ics", strings.ToUpper(country), year)
}

// Calendar builds one all-day event per holiday date
func Calendar(country string, year int, hm holidays.HolidayMap, stamp time.Time) *ics.Calendar {
	country = strings.ToUpper(country)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetXWRCalName(fmt.Sprintf("Holidays %s %d", holidays.CountryName(country), year))

	for _, date := range hm.Dates() {
		day, err := dateutil.ParseDate(date)
		if err != nil {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("%s-%s@vacation-calendar", date, country))
		event.SetDtStampTime(stamp.UTC())
		event.SetAllDayStartAt(day)
		event.SetAllDayEndAt(day.AddDate(0, 0, 1))
		event.SetSummary(hm[date])
		event.SetLocation(holidays.CountryName(country))
	}

	return cal
}

// WriteICS serializes the holidays of country/year to w
func WriteICS(w io.Writer, country string, year int, hm holidays.HolidayMap) error {
	cal := Calendar(country, year, hm, time.Now())
	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	return nil
}
