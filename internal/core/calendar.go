package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// minClampDay is the lowest day ClampToValidDay will try; every month has it.
const minClampDay = 28

var monthNames = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,

	"sept": time.September,

	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// MonthTokens returns every month name ResolveMonth accepts, grouped by month.
func MonthTokens() map[time.Month][]string {
	out := make(map[time.Month][]string, 12)
	for name, m := range monthNames {
		out[m] = append(out[m], name)
	}
	return out
}

// ResolveMonth turns a month token into a month number.
//
// Full and abbreviated English names are matched case-insensitively
// ("Jan", "sept", "DECEMBER"). Numeric tokens are accepted when in 1..12.
func ResolveMonth(token string) (time.Month, error) {
	k := strings.ToLower(strings.TrimSpace(token))
	if m, ok := monthNames[k]; ok {
		return m, nil
	}
	n, err := strconv.Atoi(k)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMonth, token)
	}
	return CheckMonth(n)
}

// CheckMonth validates a numeric month.
func CheckMonth(n int) (time.Month, error) {
	if n < 1 || n > 12 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMonth, n)
	}
	return time.Month(n), nil
}

// DaysInMonth returns the length of the month in the Gregorian calendar.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// LastDayOfMonth returns the last calendar day of the month.
func LastDayOfMonth(year int, month time.Month) Date {
	return NewDate(year, month, DaysInMonth(year, month))
}

// ClampToValidDay resolves a possibly non-existent day (e.g. 31 June) by
// stepping back one day at a time, never below the 28th. A valid day below
// 28 is returned unchanged; a day below 1 fails with ErrInvalidDate.
func ClampToValidDay(year int, month time.Month, day int) (Date, error) {
	if _, err := CheckMonth(int(month)); err != nil {
		return Date{}, err
	}
	for d := day; d >= minClampDay; d-- {
		if date, err := MakeDate(year, month, d); err == nil {
			return date, nil
		}
	}
	// Days below the floor are taken literally.
	if day >= 1 && day < minClampDay {
		return MakeDate(year, month, day)
	}
	return Date{}, fmt.Errorf("%w: no valid day for %04d-%02d-%02d", ErrInvalidDate, year, int(month), day)
}
