package grid

import (
	"testing"
	"time"
)

func TestCalendarMonth_Add(t *testing.T) {
	tests := []struct {
		name string
		from CalendarMonth
		n    int
		want CalendarMonth
	}{
		{"next month", CalendarMonth{2024, 0}, 1, CalendarMonth{2024, 1}},
		{"wrap into next year", CalendarMonth{2024, 11}, 1, CalendarMonth{2025, 0}},
		{"quarter across year", CalendarMonth{2024, 10}, 3, CalendarMonth{2025, 1}},
		{"previous month", CalendarMonth{2024, 5}, -1, CalendarMonth{2024, 4}},
		{"wrap into previous year", CalendarMonth{2024, 0}, -1, CalendarMonth{2023, 11}},
		{"quarter back across year", CalendarMonth{2024, 1}, -3, CalendarMonth{2023, 10}},
		{"zero", CalendarMonth{2024, 6}, 0, CalendarMonth{2024, 6}},
		{"multiple years", CalendarMonth{2024, 6}, -30, CalendarMonth{2022, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.Add(tt.n); got != tt.want {
				t.Errorf("%v.Add(%d) = %v, want %v", tt.from, tt.n, got, tt.want)
			}
		})
	}
}

func TestMonths(t *testing.T) {
	cursor := CalendarMonth{2024, 10}

	monthly := Months(cursor, ViewMonthly)
	if len(monthly) != 1 || monthly[0] != cursor {
		t.Errorf("Months(monthly) = %v", monthly)
	}

	quarterly := Months(cursor, ViewQuarterly)
	want := []CalendarMonth{{2024, 10}, {2024, 11}, {2025, 0}}
	if len(quarterly) != len(want) {
		t.Fatalf("Months(quarterly) = %v, want %v", quarterly, want)
	}
	for i := range want {
		if quarterly[i] != want[i] {
			t.Errorf("Months(quarterly)[%d] = %v, want %v", i, quarterly[i], want[i])
		}
	}
}

func TestView(t *testing.T) {
	if ParseView("quarterly") != ViewQuarterly {
		t.Error("ParseView(quarterly) != ViewQuarterly")
	}
	if ParseView("weekly") != ViewMonthly {
		t.Error("ParseView(weekly) should default to monthly")
	}
	if ViewMonthly.Step() != 1 || ViewQuarterly.Step() != 3 {
		t.Errorf("Step() = %d/%d, want 1/3", ViewMonthly.Step(), ViewQuarterly.Step())
	}
}

func TestCalendarMonth_Format(t *testing.T) {
	m := MonthOf(time.Date(2024, 2, 19, 12, 0, 0, 0, time.UTC))
	if m != (CalendarMonth{2024, 1}) {
		t.Fatalf("MonthOf() = %v", m)
	}
	if m.String() != "2024-02" {
		t.Errorf("String() = %q, want 2024-02", m.String())
	}
	if m.Title() != "February 2024" {
		t.Errorf("Title() = %q, want February 2024", m.Title())
	}
}
