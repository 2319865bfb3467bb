package domain

import (
	"strings"
	"time"
)

// MonthName is a lower-case English month name, e.g. "july".
type MonthName string

// Months lists the twelve canonical month names in calendar order.
var Months = []MonthName{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// ParseMonth accepts a full month name or a three-letter abbreviation in any
// case ("July", "jul", " JULY ") and returns the canonical name.
func ParseMonth(raw string) (MonthName, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if len(s) < 3 {
		return "", false
	}
	for _, m := range Months {
		if s == string(m) || s == string(m)[:3] {
			return m, true
		}
	}
	if s == "sept" {
		return "september", true
	}
	return "", false
}

// MonthOf converts a time.Month to its canonical name.
func MonthOf(m time.Month) MonthName {
	if m < time.January || m > time.December {
		return ""
	}
	return Months[m-1]
}

// Valid reports whether m is one of the canonical names.
func (m MonthName) Valid() bool {
	_, ok := m.Number()
	return ok
}

// Number returns the calendar number (1..12) of m.
func (m MonthName) Number() (int, bool) {
	for i, v := range Months {
		if v == m {
			return i + 1, true
		}
	}
	return 0, false
}

// CurrentMonth returns the month of the package clock's current time.
func CurrentMonth() MonthName {
	return MonthOf(clock.Now().Month())
}
