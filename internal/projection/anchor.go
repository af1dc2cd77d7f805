package projection

import "profin/internal/core"

// BalanceAnchor sets the running balance to a known value on one day.
// It replaces the balance instead of adding to it.
type BalanceAnchor struct {
	on      core.Date
	balance core.Amount
}

// AnchorName is the display name of every balance anchor.
const AnchorName = "Balance"

// NewBalanceAnchor returns an anchor of balance on the given day.
func NewBalanceAnchor(balance core.Amount, on core.Date) BalanceAnchor {
	return BalanceAnchor{on: on, balance: balance}
}

func (a BalanceAnchor) Name() string         { return AnchorName }
func (a BalanceAnchor) Kind() Kind           { return KindAnchor }
func (a BalanceAnchor) Span() Span           { return SpanOn(a.on) }
func (a BalanceAnchor) Balance() core.Amount { return a.balance }

// Contribution implements Event. An anchor never adds to the balance.
func (a BalanceAnchor) Contribution(d core.Date, _ core.Amount) (core.Amount, bool) {
	if d.Before(a.on) {
		return 0, false
	}
	return 0, true
}

// AbsoluteBalance implements Event.
func (a BalanceAnchor) AbsoluteBalance(d core.Date) (core.Amount, bool) {
	if d.Equal(a.on) {
		return a.balance, true
	}
	return 0, false
}
