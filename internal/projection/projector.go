package projection

import (
	"fmt"
	"time"

	"profin/internal/core"
)

// Projector owns a timeline of events and walks it day by day.
//
// Events are declared relative to a cursor date, which defaults the start of
// every new event. The first cursor ever set is where the simulation starts.
// A Projector is not safe for concurrent use; independent projections use
// independent Projectors.
type Projector struct {
	events   []Event
	cursor   core.Date
	start    core.Date
	hasStart bool
	err      error
}

// Line is one event's contribution on a day.
type Line struct {
	Name   string
	Kind   Kind
	Amount core.Amount
}

// Day is a day on which at least one event fired.
type Day struct {
	Date     core.Date
	Anchored bool        // the balance was reset by an anchor
	Anchor   core.Amount // value of the reset when Anchored
	Lines    []Line      // nonzero contributions in registration order
	Balance  core.Amount // balance at the end of the day
}

// Moved reports whether any contribution changed the balance that day.
func (d Day) Moved() bool {
	return len(d.Lines) > 0
}

// New returns an empty projector with the cursor on today's date.
func New() *Projector {
	return &Projector{cursor: core.DateOf(time.Now())}
}

// Err returns the first construction error, if any.
func (p *Projector) Err() error {
	return p.err
}

func (p *Projector) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// Cursor returns the current declaration date.
func (p *Projector) Cursor() core.Date {
	return p.cursor
}

// Start returns the simulation start, the first cursor ever set.
func (p *Projector) Start() (core.Date, bool) {
	return p.start, p.hasStart
}

// Events returns a snapshot of the registered events in registration order.
func (p *Projector) Events() []Event {
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

// SetCursorDate moves the declaration cursor. A zero day means the 1st.
func (p *Projector) SetCursorDate(year int, month time.Month, day int) error {
	if day == 0 {
		day = 1
	}
	d, err := core.MakeDate(year, month, day)
	if err != nil {
		err = fmt.Errorf("set cursor: %w", err)
		p.fail(err)
		return err
	}
	p.SetCursor(d)
	return nil
}

// SetCursor moves the declaration cursor to d.
func (p *Projector) SetCursor(d core.Date) {
	p.cursor = d
	if !p.hasStart {
		p.start = d
		p.hasStart = true
	}
}

func (p *Projector) register(e Event) int {
	p.events = append(p.events, e)
	return len(p.events) - 1
}

// SetInitialBalance registers a balance anchor at the cursor.
func (p *Projector) SetInitialBalance(balance core.Amount) *Projector {
	p.register(NewBalanceAnchor(balance, p.cursor))
	return p
}

// AddRecurringPayment registers a monthly payment starting at the cursor.
// A zero day means the 1st.
func (p *Projector) AddRecurringPayment(name string, perMonth core.Amount, day int) *PaymentHandle {
	if day == 0 {
		day = 1
	}
	h := &PaymentHandle{p: p}
	if err := checkPayDay(day); err != nil {
		p.fail(fmt.Errorf("payment %q: %w", name, err))
		day = 1
	}
	h.slot = p.register(NewPeriodicPayment(name, perMonth, day, p.cursor))
	return h
}

// AddOneTimeTransaction registers a transaction of amount at the cursor.
func (p *Projector) AddOneTimeTransaction(name string, amount core.Amount) *SingleHandle {
	h := &SingleHandle{p: p}
	h.slot = p.register(NewOneTimeTransaction(name, amount, p.cursor))
	return h
}

// Receive registers a one-time income; the sign of amount is ignored.
func (p *Projector) Receive(name string, amount core.Amount) *SingleHandle {
	return p.AddOneTimeTransaction(name, amount.Abs())
}

// Expend registers a one-time expense; the sign of amount is ignored.
func (p *Projector) Expend(name string, amount core.Amount) *SingleHandle {
	return p.AddOneTimeTransaction(name, -amount.Abs())
}

// AddLoan registers an interest-free loan borrowed at the cursor. The
// principal is received immediately; repayment is configured on the handle.
func (p *Projector) AddLoan(name string, amount core.Amount) *LoanHandle {
	loan := NewLoan(name, amount, p.cursor)
	h := &LoanHandle{p: p, repaySlot: -1}
	h.receiptSlot = p.register(loan.Receipt())
	h.slot = p.register(loan)
	return h
}

// Project walks the timeline up to the end date and returns the sparse
// balance series. See ProjectDays.
func (p *Projector) Project(endYear int, endMonth time.Month, endDay int) ([]core.Sample, error) {
	days, err := p.ProjectDays(endYear, endMonth, endDay)
	if err != nil {
		return nil, err
	}
	return Samples(days), nil
}

// ProjectDays walks every day from the start to the end date inclusive and
// returns the days on which an event fired.
//
// An end day that does not exist in its month is clamped to the last valid
// day. On each day the balance is first reset by an anchor, if any (the
// last registered wins), then every nonzero contribution is added in
// registration order. Days without an anchor or a nonzero contribution are
// omitted. The projector is left untouched, so projecting again gives the
// same result.
func (p *Projector) ProjectDays(endYear int, endMonth time.Month, endDay int) ([]Day, error) {
	if p.err != nil {
		return nil, fmt.Errorf("invalid timeline: %w", p.err)
	}
	end, err := core.ClampToValidDay(endYear, endMonth, endDay)
	if err != nil {
		return nil, fmt.Errorf("projection end date: %w", err)
	}
	if !p.hasStart {
		return nil, core.ErrNoStartDate
	}
	if end.Before(p.start) {
		return nil, fmt.Errorf("%w: end %s precedes start %s", core.ErrInvalidRange, end, p.start)
	}
	return p.walk(p.start, end), nil
}

func (p *Projector) walk(start, end core.Date) []Day {
	var (
		days    []Day
		balance core.Amount
		paid    = make([]core.Amount, len(p.events))
	)
	for d := start; !d.After(end); d = d.AddDays(1) {
		day := Day{Date: d}

		for _, e := range p.events {
			if v, ok := e.AbsoluteBalance(d); ok {
				day.Anchored = true
				day.Anchor = v
			}
		}
		if day.Anchored {
			balance = day.Anchor
		}

		for i, e := range p.events {
			v, ok := e.Contribution(d, paid[i])
			if !ok || v == 0 {
				continue
			}
			paid[i] += v.Abs()
			balance += v
			day.Lines = append(day.Lines, Line{Name: e.Name(), Kind: e.Kind(), Amount: v})
		}

		if day.Anchored || day.Moved() {
			day.Balance = balance
			days = append(days, day)
		}
	}
	return days
}

// Samples reduces projected days to the (date, balance) series.
func Samples(days []Day) []core.Sample {
	out := make([]core.Sample, len(days))
	for i, d := range days {
		out[i] = core.Sample{Date: d.Date, Balance: d.Balance}
	}
	return out
}

func checkPayDay(day int) error {
	if day < 1 || day > 31 {
		return fmt.Errorf("%w: pay day %d", core.ErrInvalidDate, day)
	}
	return nil
}
