package upstream

import (
	"context"
	"sort"
	"strings"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/ca"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/us"
	"github.com/username/vacation-calendar/internal/holidays"
	"github.com/username/vacation-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

const nationalHoliday = "National holiday"

// BuiltinProvider computes holidays from rule sets compiled into the binary.
// Only countries with a rule set are served; others are reported as not found.
type BuiltinProvider struct {
	rules  map[string][]*cal.Holiday
	logger *zap.Logger
}

// NewBuiltinProvider creates a provider for the US, GB, DE, FR and CA rule sets
func NewBuiltinProvider(logger *zap.Logger) *BuiltinProvider {
	return &BuiltinProvider{
		rules: map[string][]*cal.Holiday{
			"US": us.Holidays,
			"GB": gb.Holidays,
			"DE": de.Holidays,
			"FR": fr.Holidays,
			"CA": ca.Holidays,
		},
		logger: logger,
	}
}

// Countries returns the codes the provider has rules for, sorted
func (p *BuiltinProvider) Countries() []string {
	codes := make([]string, 0, len(p.rules))
	for code := range p.rules {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Holidays computes the holidays of country in year
func (p *BuiltinProvider) Holidays(ctx context.Context, country string, year int) (*holidays.Response, error) {
	rules, ok := p.rules[strings.ToUpper(country)]
	if !ok {
		return nil, NotFound(country)
	}

	records := make([]holidays.Record, 0, len(rules))
	for _, h := range rules {
		actual, observed := h.Calc(year)
		if actual.IsZero() {
			continue
		}

		records = append(records, holidays.Record{
			Name:        h.Name,
			Description: h.Name + " is a national holiday",
			Date:        holidays.Date{ISO: actual.Format(dateutil.ISODate)},
			Type:        []string{nationalHoliday},
		})

		if !observed.IsZero() && !dateutil.IsSameDay(actual, observed) {
			records = append(records, holidays.Record{
				Name:        h.Name + " (observed)",
				Description: h.Name + " is observed on a weekday",
				Date:        holidays.Date{ISO: observed.Format(dateutil.ISODate)},
				Type:        []string{nationalHoliday},
			})
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.ISO < records[j].Date.ISO
	})

	p.logger.Debug("Holidays computed from built-in rules",
		zap.String("country", country),
		zap.Int("year", year),
		zap.Int("count", len(records)))

	return newResponse(country, year, records), nil
}
