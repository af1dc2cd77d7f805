package core

import (
	"errors"
	"testing"
	"time"
)

func TestResolveMonth(t *testing.T) {
	cases := []struct {
		in   string
		want time.Month
		ok   bool
	}{
		{"Jan", time.January, true},
		{"jan", time.January, true},
		{"MARCH", time.March, true},
		{"Sept", time.September, true},
		{"sep", time.September, true},
		{"december", time.December, true},
		{" May ", time.May, true},
		{"1", time.January, true},
		{"12", time.December, true},
		{"0", 0, false},
		{"13", 0, false},
		{"Smarch", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ResolveMonth(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.want, got, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidMonth) {
			t.Fatalf("%q expected ErrInvalidMonth, got %v", tc.in, err)
		}
	}
}

func TestMonthTokensCoverEveryMonth(t *testing.T) {
	tokens := MonthTokens()
	if len(tokens) != 12 {
		t.Fatalf("expected 12 months, got %d", len(tokens))
	}
	if len(tokens[time.September]) != 3 {
		t.Errorf("September tokens = %v, want sep, sept and september", tokens[time.September])
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2018, time.January, 31},
		{2018, time.April, 30},
		{2018, time.February, 28},
		{2020, time.February, 29},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2019, time.December, 31},
	}
	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestClampToValidDay(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   time.Month
		day     int
		want    Date
		wantErr error
	}{
		{name: "existing day", year: 2019, month: time.December, day: 31, want: NewDate(2019, time.December, 31)},
		{name: "31 june", year: 2018, month: time.June, day: 31, want: NewDate(2018, time.June, 30)},
		{name: "31 february", year: 2019, month: time.February, day: 31, want: NewDate(2019, time.February, 28)},
		{name: "30 february leap", year: 2020, month: time.February, day: 30, want: NewDate(2020, time.February, 29)},
		// A valid day below the 28 floor is used as given rather than
		// rejected, so "--to 2019-05-15" projects to the 15th.
		{name: "mid month", year: 2019, month: time.May, day: 15, want: NewDate(2019, time.May, 15)},
		{name: "first of month", year: 2019, month: time.February, day: 1, want: NewDate(2019, time.February, 1)},
		{name: "past any month", year: 2019, month: time.April, day: 40, want: NewDate(2019, time.April, 30)},
		{name: "day zero", year: 2019, month: time.May, day: 0, wantErr: ErrInvalidDate},
		{name: "negative day", year: 2019, month: time.May, day: -3, wantErr: ErrInvalidDate},
		{name: "bad month", year: 2019, month: 13, day: 31, wantErr: ErrInvalidMonth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClampToValidDay(tt.year, tt.month, tt.day)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ClampToValidDay() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMakeDate(t *testing.T) {
	if _, err := MakeDate(2018, time.April, 31); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for 31 April, got %v", err)
	}
	d, err := MakeDate(2018, time.March, 24)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.String() != "2018-03-24" {
		t.Errorf("String() = %q", d.String())
	}
	if got := d.AddDays(8).String(); got != "2018-04-01" {
		t.Errorf("AddDays(8) = %q, want 2018-04-01", got)
	}
}

func TestLastDayOfMonth(t *testing.T) {
	if got := LastDayOfMonth(2018, time.June); !got.Equal(NewDate(2018, time.June, 30)) {
		t.Errorf("LastDayOfMonth(2018, June) = %s", got)
	}
}
