package projection

import "profin/internal/core"

// Loan is an interest-free loan. It does not contribute to the balance
// itself: it describes the two events it produces, the receipt of the
// principal and, once repayment is configured, a capped monthly repayment.
type Loan struct {
	name      string
	principal core.Amount
	on        core.Date
	repay     repayTerms
	repays    bool
}

// repayTerms holds the monthly repayment terms of a loan.
type repayTerms struct {
	PerMonth core.Amount // magnitude paid each month
	Day      int
	Begin    core.MonthKey

	// explicit is set once Begin was chosen by the caller; WithRepayment
	// then keeps it instead of using the borrow month.
	explicit bool
}

// NewLoan returns a loan of principal borrowed on the given day.
func NewLoan(name string, principal core.Amount, on core.Date) Loan {
	return Loan{name: name, principal: principal, on: on}
}

func (l Loan) Name() string           { return l.name }
func (l Loan) Kind() Kind             { return KindLoan }
func (l Loan) Span() Span             { return SpanOn(l.on) }
func (l Loan) Principal() core.Amount { return l.principal }
func (l Loan) Date() core.Date        { return l.on }

// Contribution implements Event. The loan's money moves through Receipt
// and Repayment, never through the loan itself.
func (l Loan) Contribution(core.Date, core.Amount) (core.Amount, bool) {
	return 0, false
}

// AbsoluteBalance implements Event.
func (l Loan) AbsoluteBalance(core.Date) (core.Amount, bool) {
	return 0, false
}

// Receipt is the positive one-time transaction of the borrowed principal.
func (l Loan) Receipt() OneTimeTransaction {
	return NewOneTimeTransaction(l.name, l.principal.Abs(), l.on)
}

// Repayment is the negative monthly payment capped at the principal.
// ok is false until repayment terms are configured.
func (l Loan) Repayment() (PeriodicPayment, bool) {
	if !l.repays {
		return PeriodicPayment{}, false
	}
	start := core.NewDate(l.repay.Begin.Year, l.repay.Begin.Month, 1)
	p := NewPeriodicPayment(l.name, -l.repay.PerMonth.Abs(), l.repay.Day, start).
		WithCap(l.principal.Abs())
	return p, true
}

// WithDate moves the borrow date. Repayment terms configured earlier keep
// their first month.
func (l Loan) WithDate(d core.Date) Loan {
	l.on = d
	return l
}

// WithRepayment configures a monthly repayment of perMonth on day,
// beginning in the borrow month.
func (l Loan) WithRepayment(perMonth core.Amount, day int) Loan {
	begin := l.on.MonthKey()
	explicit := false
	if l.repay.explicit {
		begin, explicit = l.repay.Begin, true
	}
	l.repay = repayTerms{PerMonth: perMonth.Abs(), Day: day, Begin: begin, explicit: explicit}
	l.repays = true
	return l
}

// WithBegin sets the month of the first repayment.
func (l Loan) WithBegin(k core.MonthKey) Loan {
	l.repay.Begin = k
	l.repay.explicit = true
	return l
}
