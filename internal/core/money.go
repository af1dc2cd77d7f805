// Package core provides the calendar and money value types shared by the
// projection engine, the scenario loader and the reporters.
//
// This file contains functions for parsing amounts from strings and for
// formatting them for display.
package core

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
)

// ParseAmount converts a signed whole-unit string to an Amount.
//
// It accepts an optional leading sign and digit grouping with underscores,
// spaces or commas. Fractions are rejected: amounts are whole currency units.
//
// Examples:
//
//	ParseAmount("40000")     -> 40000, nil
//	ParseAmount("+100_000")  -> 100000, nil
//	ParseAmount("-12 000")   -> -12000, nil
//	ParseAmount("1,250,000") -> 1250000, nil
//	ParseAmount("12.5")      -> 0, ErrInvalidAmount
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	neg := false
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		neg = true
		s = s[1:]
	}
	// Strip grouping separators
	s = strings.Map(func(r rune) rune {
		switch r {
		case '_', ' ', ',':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if neg {
		v = -v
	}
	return Amount(v), nil
}

// String formats the amount with grouped digits, e.g. "-12,000".
func (a Amount) String() string {
	return humanize.Comma(int64(a))
}

// Signed is like String but prefixes positive amounts with "+".
func (a Amount) Signed() string {
	if a > 0 {
		return "+" + a.String()
	}
	return a.String()
}

// Format renders the amount with a currency label for display purposes,
// e.g. "CZK 40,000".
func (a Amount) Format(currency string) string {
	if currency == "" {
		return a.String()
	}
	return currency + " " + a.String()
}
