package holidays

import (
	"sort"
	"strings"
)

// HolidayMap maps YYYY-MM-DD dates to holiday display names
type HolidayMap map[string]string

// Record is a single holiday as delivered by the holiday service
type Record struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Date        Date     `json:"date"`
	Type        []string `json:"type,omitempty"`
}

// Date wraps the ISO-8601 date (optionally with a time component)
type Date struct {
	ISO string `json:"iso"`
}

// Key returns the bare YYYY-MM-DD part of the ISO string
func (d Date) Key() (string, bool) {
	if len(d.ISO) < 10 {
		return "", false
	}
	return d.ISO[:10], true
}

// MergePolicy decides what happens when two holidays share a date
type MergePolicy string

const (
	// MergeLastWins keeps the holiday encountered last in response order
	MergeLastWins MergePolicy = "last"
	// MergeJoin joins all names for the date with a separator
	MergeJoin MergePolicy = "join"
)

// DefaultSeparator joins names under MergeJoin
const DefaultSeparator = ", "

// Folder folds holiday records into a HolidayMap
type Folder struct {
	Policy    MergePolicy
	Separator string
}

// Fold builds a fresh HolidayMap from records in response order.
// Records whose date is shorter than YYYY-MM-DD are skipped.
func (f Folder) Fold(records []Record) HolidayMap {
	sep := f.Separator
	if sep == "" {
		sep = DefaultSeparator
	}

	m := make(HolidayMap, len(records))
	for _, rec := range records {
		key, ok := rec.Date.Key()
		if !ok {
			continue
		}

		if prev, exists := m[key]; exists && f.Policy == MergeJoin && prev != rec.Name {
			m[key] = prev + sep + rec.Name
			continue
		}
		m[key] = rec.Name
	}

	return m
}

// Dates returns the map's dates in ascending order
func (m HolidayMap) Dates() []string {
	dates := make([]string, 0, len(m))
	for date := range m {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// InMonth returns the dates of the given YYYY-MM prefix in ascending order
func (m HolidayMap) InMonth(prefix string) []string {
	var dates []string
	for _, date := range m.Dates() {
		if strings.HasPrefix(date, prefix) {
			dates = append(dates, date)
		}
	}
	return dates
}
