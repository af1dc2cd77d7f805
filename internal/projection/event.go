// Package projection implements the financial event model and the
// day-by-day engine that walks a date range accumulating a balance.
package projection

import "profin/internal/core"

const (
	KindPayment Kind = "payment"
	KindSingle  Kind = "single"
	KindLoan    Kind = "loan"
	KindAnchor  Kind = "anchor"
)

// Kind names the variant of an Event.
type Kind string

// Event is the capability every financial event variant provides.
//
// The variant set is closed: PeriodicPayment, OneTimeTransaction, Loan and
// BalanceAnchor. Events are immutable values; all per-run state is kept by
// the Projector and passed in, so an event can be queried in any date order.
type Event interface {
	Name() string
	Kind() Kind
	Span() Span

	// Contribution returns the amount the event adds to the balance on d.
	// paid is the magnitude this event has already paid in the current run.
	// ok is false when the event has no effect on d at all (not yet started,
	// or a variant that never contributes directly).
	Contribution(d core.Date, paid core.Amount) (amount core.Amount, ok bool)

	// AbsoluteBalance returns the value the running balance is reset to on d.
	AbsoluteBalance(d core.Date) (balance core.Amount, ok bool)
}

// Span is the inclusive range of days an event is active on.
type Span struct {
	Start  core.Date
	End    core.Date
	HasEnd bool
}

// SpanFrom returns an open-ended span.
func SpanFrom(start core.Date) Span {
	return Span{Start: start}
}

// SpanOn returns a single-day span.
func SpanOn(d core.Date) Span {
	return Span{Start: d, End: d, HasEnd: true}
}

// Started reports whether d is on or after the start.
func (s Span) Started(d core.Date) bool {
	return !d.Before(s.Start)
}

// Ended reports whether d is past the end. The end day itself is active.
func (s Span) Ended(d core.Date) bool {
	return s.HasEnd && d.After(s.End)
}

// Active reports whether the event applies on d.
func (s Span) Active(d core.Date) bool {
	return s.Started(d) && !s.Ended(d)
}

// gate applies the activation rules shared by all variants: absent before
// the start, zero after the end.
func gate(s Span, d core.Date) (active, ok bool) {
	return s.Active(d), s.Started(d)
}
