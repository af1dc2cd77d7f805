// This file implements the strategy used by a PeriodicPayment to decide how
// much it pays on a given day. Each payout mode (lump, spread) has its own
// schedule.

package projection

import (
	"fmt"
	"math"

	"profin/internal/core"
)

const (
	Lump   PayoutMode = "lump"
	Spread PayoutMode = "spread"
)

// PayoutMode selects how a monthly amount is distributed over the month.
type PayoutMode string

// Schedule is the strategy interface for a monthly payout mode.
type Schedule interface {
	// Payout returns the uncapped amount paid on d.
	Payout(perMonth core.Amount, payDay int, d core.Date) core.Amount
}

// LumpSchedule pays the whole monthly amount on the pay day.
type LumpSchedule struct{}

// Payout returns perMonth on the pay day and zero on every other day.
// A pay day that does not exist in the month (31 in June) never fires.
func (LumpSchedule) Payout(perMonth core.Amount, payDay int, d core.Date) core.Amount {
	if d.Day() == payDay {
		return perMonth
	}
	return 0
}

// SpreadSchedule distributes the monthly amount evenly over every day.
type SpreadSchedule struct{}

// Payout returns perMonth divided by the month length, rounded half to even.
// The rounding drift over a month is not compensated.
func (SpreadSchedule) Payout(perMonth core.Amount, _ int, d core.Date) core.Amount {
	return dailyShare(perMonth, core.DaysInMonth(d.Year(), d.Month()))
}

func dailyShare(perMonth core.Amount, days int) core.Amount {
	return core.Amount(math.RoundToEven(float64(perMonth) / float64(days)))
}

var schedules = map[PayoutMode]Schedule{
	Lump:   LumpSchedule{},
	Spread: SpreadSchedule{},
}

// GetSchedule returns the schedule for a payout mode.
func GetSchedule(mode PayoutMode) (Schedule, error) {
	s, ok := schedules[mode]
	if !ok {
		return nil, fmt.Errorf("unknown payout mode: %s", mode)
	}
	return s, nil
}
