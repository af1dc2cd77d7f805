package projection

import "profin/internal/core"

// OneTimeTransaction is a single signed amount on exactly one day.
type OneTimeTransaction struct {
	name   string
	on     core.Date
	amount core.Amount
}

// NewOneTimeTransaction returns a transaction of amount on the given day.
func NewOneTimeTransaction(name string, amount core.Amount, on core.Date) OneTimeTransaction {
	return OneTimeTransaction{name: name, on: on, amount: amount}
}

func (t OneTimeTransaction) Name() string        { return t.name }
func (t OneTimeTransaction) Kind() Kind          { return KindSingle }
func (t OneTimeTransaction) Span() Span          { return SpanOn(t.on) }
func (t OneTimeTransaction) Amount() core.Amount { return t.amount }
func (t OneTimeTransaction) Date() core.Date     { return t.on }

// Contribution implements Event.
func (t OneTimeTransaction) Contribution(d core.Date, _ core.Amount) (core.Amount, bool) {
	active, ok := gate(t.Span(), d)
	if !active {
		return 0, ok
	}
	return t.amount, true
}

// AbsoluteBalance implements Event.
func (t OneTimeTransaction) AbsoluteBalance(core.Date) (core.Amount, bool) {
	return 0, false
}

// WithDate moves the transaction to another day.
func (t OneTimeTransaction) WithDate(d core.Date) OneTimeTransaction {
	t.on = d
	return t
}
