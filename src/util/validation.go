package util

import (
	"fmt"
	"strings"
	"time"
)

func ValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

func ValidYear(year int) bool {
	return year >= 1970 && year <= 9999
}

func ValidSegmentName(name string) bool {
	name = strings.TrimSpace(name)
	return len(name) >= 1 && len(name) <= 100
}

func ValidAmount(amount float64) bool {
	return amount >= 0
}

// PeriodFromDate derives the (year, month) pair from a YYYY-MM-DD date.
// Expense rows store the period redundantly for query convenience, so it
// must always be recomputed from the date, never taken from the client.
func PeriodFromDate(date string) (int, int, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return t.Year(), int(t.Month()), nil
}

// PreviousPeriod returns the calendar month before (year, month).
func PreviousPeriod(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}
