package models

import (
	"fmt"
	"time"
)

// Month identifies a calendar month. Earnings are bucketed by structured
// (year, month) pairs so that listings sort chronologically; the human
// label ("March 2025") is rendered only at the API boundary.
type Month struct {
	Year  int        `bson:"year" json:"year"`
	Month time.Month `bson:"month" json:"month"`
}

// MonthOf returns the calendar month of a "YYYY-MM-DD" date string.
func MonthOf(date string) (Month, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return Month{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// ParseMonthLabel parses a human-readable label such as "March 2025".
func ParseMonthLabel(label string) (Month, error) {
	t, err := time.Parse("January 2006", label)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month label %q: %w", label, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// Label renders the month in its human-readable form, e.g. "March 2025".
func (m Month) Label() string {
	return fmt.Sprintf("%s %d", m.Month.String(), m.Year)
}

// Before reports whether m is chronologically before other.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}
