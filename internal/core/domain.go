package core

import (
	"errors"
	"fmt"
	"time"
)

type (
	// Date is a calendar day at UTC midnight.
	Date struct {
		time.Time
	}

	// Amount is a signed sum in whole currency units.
	// Positive values are income, negative values are expenses.
	Amount int64

	// MonthKey identifies a calendar month independently of the day.
	MonthKey struct {
		Year  int
		Month time.Month
	}
)

var (
	ErrInvalidMonth  = errors.New("invalid month")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidRange  = errors.New("invalid projection range")
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNoStartDate is returned when projecting before any cursor date was set.
	ErrNoStartDate = fmt.Errorf("%w: no start date established", ErrInvalidRange)
)

// NewDate creates a new Date from year, month, day.
// Out-of-range values are normalised the way time.Date does it.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MakeDate is the strict variant of NewDate: it fails with ErrInvalidDate
// when the day does not exist in that month.
func MakeDate(year int, month time.Month, day int) (Date, error) {
	if _, err := CheckMonth(int(month)); err != nil {
		return Date{}, err
	}
	d := NewDate(year, month, day)
	if d.Year() != year || d.Month() != month || d.Day() != day {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, int(month), day)
	}
	return d, nil
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }
func (d Date) After(o Date) bool  { return d.Time.After(o.Time) }
func (d Date) Equal(o Date) bool  { return d.Time.Equal(o.Time) }

// MonthKey returns the month the date falls in.
func (d Date) MonthKey() MonthKey {
	return MonthKey{Year: d.Year(), Month: d.Month()}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(time.DateOnly)
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// Abs returns the magnitude of the amount.
func (a Amount) Abs() Amount {
	if a < 0 {
		return -a
	}
	return a
}

// Sign returns -1, 0 or +1.
func (a Amount) Sign() int {
	switch {
	case a < 0:
		return -1
	case a > 0:
		return 1
	}
	return 0
}

// WithSign returns the magnitude of a carrying the sign of like.
func (a Amount) WithSign(like Amount) Amount {
	if like < 0 {
		return -a.Abs()
	}
	return a.Abs()
}
