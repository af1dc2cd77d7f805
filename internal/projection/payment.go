package projection

import (
	"slices"

	"profin/internal/core"
)

// PeriodicPayment is a recurring monthly income (positive) or expense
// (negative). It is an immutable value: every With method returns a copy.
type PeriodicPayment struct {
	name     string
	span     Span
	perMonth core.Amount
	payDay   int
	mode     PayoutMode
	skipped  []core.MonthKey
	cap      core.Amount
	capped   bool
}

// NewPeriodicPayment returns a lump-mode payment starting on start.
func NewPeriodicPayment(name string, perMonth core.Amount, payDay int, start core.Date) PeriodicPayment {
	return PeriodicPayment{
		name:     name,
		span:     SpanFrom(start),
		perMonth: perMonth,
		payDay:   payDay,
		mode:     Lump,
	}
}

func (p PeriodicPayment) Name() string             { return p.name }
func (p PeriodicPayment) Kind() Kind               { return KindPayment }
func (p PeriodicPayment) Span() Span               { return p.span }
func (p PeriodicPayment) PerMonth() core.Amount    { return p.perMonth }
func (p PeriodicPayment) PayDay() int              { return p.payDay }
func (p PeriodicPayment) Mode() PayoutMode         { return p.mode }
func (p PeriodicPayment) Cap() (core.Amount, bool) { return p.cap, p.capped }

// Skipped reports whether the month of d is excluded from payment.
func (p PeriodicPayment) Skipped(d core.Date) bool {
	return slices.Contains(p.skipped, d.MonthKey())
}

// Contribution implements Event.
//
// With a cap, paid is subtracted from it to get the remaining total. Once
// nothing remains the payment yields zero. On a paying day (the pay day in
// lump mode, every day in spread mode) a monthly amount larger than the
// remainder settles the whole remainder at once.
func (p PeriodicPayment) Contribution(d core.Date, paid core.Amount) (core.Amount, bool) {
	active, ok := gate(p.span, d)
	if !active {
		return 0, ok
	}
	if p.Skipped(d) {
		return 0, true
	}
	schedule, err := GetSchedule(p.mode)
	if err != nil {
		return 0, true
	}
	amount := schedule.Payout(p.perMonth, p.payDay, d)
	if !p.capped || (amount == 0 && p.mode != Spread) {
		return amount, true
	}
	remaining := p.cap - paid
	if remaining <= 0 {
		return 0, true
	}
	if p.perMonth.Abs() > remaining {
		return remaining.WithSign(p.perMonth), true
	}
	return amount, true
}

// AbsoluteBalance implements Event; payments never reset the balance.
func (p PeriodicPayment) AbsoluteBalance(core.Date) (core.Amount, bool) {
	return 0, false
}

// WithPayDay sets the day of the month a lump payment is made.
func (p PeriodicPayment) WithPayDay(day int) PeriodicPayment {
	p.payDay = day
	return p
}

// WithStart moves the first active day.
func (p PeriodicPayment) WithStart(d core.Date) PeriodicPayment {
	p.span.Start = d
	return p
}

// WithEnd sets the last active day.
func (p PeriodicPayment) WithEnd(d core.Date) PeriodicPayment {
	p.span.End = d
	p.span.HasEnd = true
	return p
}

// WithCap limits the total magnitude paid over the payment's lifetime.
func (p PeriodicPayment) WithCap(total core.Amount) PeriodicPayment {
	p.cap = total
	p.capped = true
	return p
}

// WithMode switches between lump and spread payout.
func (p PeriodicPayment) WithMode(mode PayoutMode) PeriodicPayment {
	p.mode = mode
	return p
}

// WithSkippedMonth excludes a month from payment.
func (p PeriodicPayment) WithSkippedMonth(k core.MonthKey) PeriodicPayment {
	if slices.Contains(p.skipped, k) {
		return p
	}
	p.skipped = append(slices.Clip(p.skipped), k)
	return p
}
