// Package scenario reads TOML scenario files describing a timeline of
// financial events and turns them into a projection.Projector.
//
// A scenario is a list of steps. Each step may move the declaration cursor,
// anchor the balance, and declare payments, one-time transactions and loans
// relative to that cursor, mirroring the Projector construction API.
package scenario

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"profin/internal/core"
)

var (
	ErrUnknownEvent   = errors.New("unknown event")
	ErrDuplicateEvent = errors.New("duplicate event name")
	ErrMissingName    = errors.New("event name is required")
	ErrUnknownKeys    = errors.New("unknown keys in scenario")
	ErrInvalidKind    = errors.New("invalid transaction kind")
)

// Transaction kinds for [[step.single]].
const (
	KindSingle  = "single"
	KindReceive = "receive"
	KindExpend  = "expend"
)

type (
	Scenario struct {
		Name       string     `toml:"name"`
		Currency   string     `toml:"currency"`
		Projection Projection `toml:"projection"`
		Steps      []Step     `toml:"step"`
	}

	Projection struct {
		To      *DateRef `toml:"to"`
		Verbose bool     `toml:"verbose"`
	}

	Step struct {
		Cursor  *DateRef  `toml:"cursor"`
		Balance *Amount   `toml:"balance"`
		Monthly []Monthly `toml:"monthly"`
		Single  []Single  `toml:"single"`
		Loan    []Loan    `toml:"loan"`
		End     []EndRef  `toml:"end"`
	}

	Monthly struct {
		Name        string     `toml:"name"`
		Amount      Amount     `toml:"amount"`
		Day         int        `toml:"day"`
		Spread      bool       `toml:"spread"`
		Total       *Amount    `toml:"total"`
		Start       *DateRef   `toml:"start"`
		End         *DateRef   `toml:"end"`
		EndAtCursor bool       `toml:"end_at_cursor"`
		Skip        []MonthRef `toml:"skip"`
	}

	Single struct {
		Name   string   `toml:"name"`
		Amount Amount   `toml:"amount"`
		Kind   string   `toml:"kind"`
		On     *DateRef `toml:"on"`
	}

	Loan struct {
		Name   string    `toml:"name"`
		Amount Amount    `toml:"amount"`
		On     *DateRef  `toml:"on"`
		Repay  *Repay    `toml:"repay"`
		Begin  *MonthRef `toml:"begin"`
	}

	Repay struct {
		Amount Amount `toml:"amount"`
		Day    int    `toml:"day"`
	}

	// EndRef ends a payment declared in this or an earlier step, at the
	// given date or, without one, on the last day of the cursor's month.
	EndRef struct {
		Name string   `toml:"name"`
		At   *DateRef `toml:"at"`
	}

	MonthRef struct {
		Year  int   `toml:"year"`
		Month Month `toml:"month"`
	}

	// DateRef is a { year, month, day } table. Month and Day are zero
	// when omitted.
	DateRef struct {
		Year  int   `toml:"year"`
		Month Month `toml:"month"`
		Day   int   `toml:"day"`
	}

	// Month accepts a month name ("Sep", "september") or number.
	Month time.Month

	// Amount accepts an integer or a string such as "+100 000".
	Amount core.Amount
)

// Load reads and decodes a scenario file.
func Load(path string) (*Scenario, error) {
	var s Scenario
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return nil, fmt.Errorf("decode scenario %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

// Parse decodes a scenario from TOML text.
func Parse(data string) (*Scenario, error) {
	var s Scenario
	md, err := toml.Decode(data, &s)
	if err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	return &s, nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return fmt.Errorf("%w: %s", ErrUnknownKeys, strings.Join(names, ", "))
}

// UnmarshalTOML implements toml.Unmarshaler.
func (m *Month) UnmarshalTOML(v any) error {
	switch t := v.(type) {
	case string:
		month, err := core.ResolveMonth(t)
		if err != nil {
			return err
		}
		*m = Month(month)
	case int64:
		month, err := core.CheckMonth(int(t))
		if err != nil {
			return err
		}
		*m = Month(month)
	default:
		return fmt.Errorf("%w: unsupported value %v", core.ErrInvalidMonth, v)
	}
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (a *Amount) UnmarshalTOML(v any) error {
	switch t := v.(type) {
	case int64:
		*a = Amount(t)
	case string:
		amount, err := core.ParseAmount(t)
		if err != nil {
			return fmt.Errorf("%w: %q", err, t)
		}
		*a = Amount(amount)
	default:
		return fmt.Errorf("%w: unsupported value %v", core.ErrInvalidAmount, v)
	}
	return nil
}

// Resolve fills omitted fields: month defaults to defMonth, day to defDay.
func (d DateRef) Resolve(defMonth time.Month, defDay int) (year int, month time.Month, day int, err error) {
	if d.Year == 0 {
		return 0, 0, 0, fmt.Errorf("%w: year is required", core.ErrInvalidDate)
	}
	month, day = time.Month(d.Month), d.Day
	if month == 0 {
		month = defMonth
	}
	if day == 0 {
		day = defDay
	}
	return d.Year, month, day, nil
}
