package projection

import (
	"fmt"
	"time"

	"profin/internal/core"
)

// Handles configure an event after it has been registered. Every call
// writes a new event value into the projector's slot, so a handle never
// shares mutable state with the timeline. Invalid arguments leave the event
// unchanged and record an error on the projector (see Projector.Err).

// PaymentHandle configures a registered PeriodicPayment.
type PaymentHandle struct {
	p    *Projector
	slot int
}

// Payment returns the current value of the payment.
func (h *PaymentHandle) Payment() PeriodicPayment {
	return h.p.events[h.slot].(PeriodicPayment)
}

func (h *PaymentHandle) set(pp PeriodicPayment) *PaymentHandle {
	h.p.events[h.slot] = pp
	return h
}

func (h *PaymentHandle) fail(op string, err error) *PaymentHandle {
	h.p.fail(fmt.Errorf("payment %q %s: %w", h.Payment().Name(), op, err))
	return h
}

// On sets the pay day.
func (h *PaymentHandle) On(day int) *PaymentHandle {
	if err := checkPayDay(day); err != nil {
		return h.fail("on", err)
	}
	return h.set(h.Payment().WithPayDay(day))
}

// Start sets the first active day. A zero day means the 1st.
func (h *PaymentHandle) Start(year int, month time.Month, day int) *PaymentHandle {
	d, err := dateOrFirst(year, month, day)
	if err != nil {
		return h.fail("start", err)
	}
	return h.set(h.Payment().WithStart(d))
}

// StartAtCursor makes the payment start at the projector's cursor.
func (h *PaymentHandle) StartAtCursor() *PaymentHandle {
	return h.set(h.Payment().WithStart(h.p.cursor))
}

// End sets the last active day. A zero day means the 1st.
func (h *PaymentHandle) End(year int, month time.Month, day int) *PaymentHandle {
	d, err := dateOrFirst(year, month, day)
	if err != nil {
		return h.fail("end", err)
	}
	return h.set(h.Payment().WithEnd(d))
}

// EndAtCursor ends the payment on the last day of the cursor's month.
func (h *PaymentHandle) EndAtCursor() *PaymentHandle {
	c := h.p.cursor
	return h.set(h.Payment().WithEnd(core.LastDayOfMonth(c.Year(), c.Month())))
}

// Total stops the payment once total has been paid.
func (h *PaymentHandle) Total(total core.Amount) *PaymentHandle {
	return h.set(h.Payment().WithCap(total.Abs()))
}

// Spread toggles spreading the monthly amount over every day of the month.
func (h *PaymentHandle) Spread(spread bool) *PaymentHandle {
	mode := Lump
	if spread {
		mode = Spread
	}
	return h.set(h.Payment().WithMode(mode))
}

// SkipMonth excludes a month from payment.
func (h *PaymentHandle) SkipMonth(year int, month time.Month) *PaymentHandle {
	if _, err := core.CheckMonth(int(month)); err != nil {
		return h.fail("skip month", err)
	}
	return h.set(h.Payment().WithSkippedMonth(core.MonthKey{Year: year, Month: month}))
}

// SingleHandle configures a registered OneTimeTransaction.
type SingleHandle struct {
	p    *Projector
	slot int
}

// Transaction returns the current value of the transaction.
func (h *SingleHandle) Transaction() OneTimeTransaction {
	return h.p.events[h.slot].(OneTimeTransaction)
}

// On moves the transaction to an exact day. A zero day means the 1st.
func (h *SingleHandle) On(year int, month time.Month, day int) *SingleHandle {
	d, err := dateOrFirst(year, month, day)
	if err != nil {
		h.p.fail(fmt.Errorf("transaction %q on: %w", h.Transaction().Name(), err))
		return h
	}
	h.p.events[h.slot] = h.Transaction().WithDate(d)
	return h
}

// LoanHandle configures a registered Loan and the events it produced.
type LoanHandle struct {
	p           *Projector
	slot        int
	receiptSlot int
	repaySlot   int
}

// Loan returns the current value of the loan.
func (h *LoanHandle) Loan() Loan {
	return h.p.events[h.slot].(Loan)
}

// Receipt returns the one-time transaction of the borrowed principal.
func (h *LoanHandle) Receipt() OneTimeTransaction {
	return h.p.events[h.receiptSlot].(OneTimeTransaction)
}

// Repayment returns the monthly repayment, if configured.
func (h *LoanHandle) Repayment() (PeriodicPayment, bool) {
	if h.repaySlot < 0 {
		return PeriodicPayment{}, false
	}
	return h.p.events[h.repaySlot].(PeriodicPayment), true
}

func (h *LoanHandle) fail(op string, err error) *LoanHandle {
	h.p.fail(fmt.Errorf("loan %q %s: %w", h.Loan().Name(), op, err))
	return h
}

// set stores the loan and rewrites the events derived from it.
func (h *LoanHandle) set(l Loan) *LoanHandle {
	h.p.events[h.slot] = l
	h.p.events[h.receiptSlot] = l.Receipt()
	if repay, ok := l.Repayment(); ok {
		if h.repaySlot < 0 {
			h.repaySlot = h.p.register(repay)
		} else {
			h.p.events[h.repaySlot] = repay
		}
	}
	return h
}

// On sets the borrow date. A zero day means the 1st.
func (h *LoanHandle) On(year int, month time.Month, day int) *LoanHandle {
	d, err := dateOrFirst(year, month, day)
	if err != nil {
		return h.fail("on", err)
	}
	return h.set(h.Loan().WithDate(d))
}

// RepayMonthly configures a monthly repayment of amount on day, capped at
// the borrowed principal. Repayment begins in the borrow month unless
// Begin says otherwise. A zero day means the 1st.
func (h *LoanHandle) RepayMonthly(amount core.Amount, day int) *LoanHandle {
	if day == 0 {
		day = 1
	}
	if err := checkPayDay(day); err != nil {
		return h.fail("repay", err)
	}
	return h.set(h.Loan().WithRepayment(amount, day))
}

// Begin sets the month of the first repayment.
func (h *LoanHandle) Begin(year int, month time.Month) *LoanHandle {
	if _, err := core.CheckMonth(int(month)); err != nil {
		return h.fail("begin", err)
	}
	return h.set(h.Loan().WithBegin(core.MonthKey{Year: year, Month: month}))
}

func dateOrFirst(year int, month time.Month, day int) (core.Date, error) {
	if day == 0 {
		day = 1
	}
	return core.MakeDate(year, month, day)
}
