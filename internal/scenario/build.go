package scenario

import (
	"context"
	"fmt"
	"strings"
	"time"

	"profin/internal/core"
	applog "profin/internal/log"
	"profin/internal/projection"
)

// Until is the inclusive end of a projection.
type Until struct {
	Year  int
	Month time.Month
	Day   int
}

func (u Until) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", u.Year, int(u.Month), u.Day)
}

// Until returns the projection end declared in the scenario. Month defaults
// to December and day to the month's last day. ok is false when no end is
// declared.
func (s *Scenario) Until() (u Until, ok bool, err error) {
	if s.Projection.To == nil {
		return Until{}, false, nil
	}
	y, m, d, err := s.Projection.To.Resolve(time.December, 31)
	if err != nil {
		return Until{}, false, fmt.Errorf("projection end: %w", err)
	}
	end, err := core.ClampToValidDay(y, m, d)
	if err != nil {
		return Until{}, false, fmt.Errorf("projection end: %w", err)
	}
	return Until{Year: end.Year(), Month: end.Month(), Day: end.Day()}, true, nil
}

// Build replays the scenario steps on a new Projector.
func (s *Scenario) Build() (*projection.Projector, error) {
	return s.BuildContext(context.Background())
}

// BuildContext is Build with the logger carried by ctx.
func (s *Scenario) BuildContext(ctx context.Context) (*projection.Projector, error) {
	logger := applog.FromContext(ctx).WithComponent(applog.ComponentScenario)
	b := builder{
		p:        projection.New(),
		payments: make(map[string]*projection.PaymentHandle),
	}
	for i, step := range s.Steps {
		err := b.step(step)
		if err == nil {
			err = b.p.Err()
		}
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	start, _ := b.p.Start()
	logger.DebugContext(ctx, "Scenario built",
		applog.FieldOperation, applog.OpBuild,
		"steps", len(s.Steps),
		applog.FieldEvents, len(b.p.Events()),
		applog.FieldStart, start.String())
	return b.p, nil
}

type builder struct {
	p        *projection.Projector
	payments map[string]*projection.PaymentHandle
}

func (b *builder) step(st Step) error {
	if st.Cursor != nil {
		y, m, d, err := st.Cursor.Resolve(time.January, 1)
		if err != nil {
			return fmt.Errorf("cursor: %w", err)
		}
		if err := b.p.SetCursorDate(y, m, d); err != nil {
			return err
		}
	}
	if st.Balance != nil {
		b.p.SetInitialBalance(core.Amount(*st.Balance))
	}
	for _, m := range st.Monthly {
		if err := b.monthly(m); err != nil {
			return err
		}
	}
	for _, sg := range st.Single {
		if err := b.single(sg); err != nil {
			return err
		}
	}
	for _, l := range st.Loan {
		if err := b.loan(l); err != nil {
			return err
		}
	}
	for _, e := range st.End {
		if err := b.end(e); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) monthly(m Monthly) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("monthly: %w", ErrMissingName)
	}
	if _, dup := b.payments[m.Name]; dup {
		return fmt.Errorf("monthly %q: %w", m.Name, ErrDuplicateEvent)
	}
	h := b.p.AddRecurringPayment(m.Name, core.Amount(m.Amount), m.Day)
	b.payments[m.Name] = h

	if m.Spread {
		h.Spread(true)
	}
	if m.Total != nil {
		h.Total(core.Amount(*m.Total))
	}
	for _, sk := range m.Skip {
		if sk.Year == 0 || sk.Month == 0 {
			return fmt.Errorf("monthly %q skip: %w", m.Name, core.ErrInvalidMonth)
		}
		h.SkipMonth(sk.Year, time.Month(sk.Month))
	}
	if m.Start != nil {
		y, mo, d, err := m.Start.Resolve(time.January, 1)
		if err != nil {
			return fmt.Errorf("monthly %q start: %w", m.Name, err)
		}
		h.Start(y, mo, d)
	}
	switch {
	case m.End != nil && m.EndAtCursor:
		return fmt.Errorf("monthly %q: end and end_at_cursor are exclusive", m.Name)
	case m.End != nil:
		y, mo, d, err := m.End.Resolve(time.January, 1)
		if err != nil {
			return fmt.Errorf("monthly %q end: %w", m.Name, err)
		}
		h.End(y, mo, d)
	case m.EndAtCursor:
		h.EndAtCursor()
	}
	return nil
}

func (b *builder) single(sg Single) error {
	if strings.TrimSpace(sg.Name) == "" {
		return fmt.Errorf("single: %w", ErrMissingName)
	}
	amount := core.Amount(sg.Amount)

	var h *projection.SingleHandle
	switch strings.ToLower(sg.Kind) {
	case "", KindSingle:
		h = b.p.AddOneTimeTransaction(sg.Name, amount)
	case KindReceive:
		h = b.p.Receive(sg.Name, amount)
	case KindExpend:
		h = b.p.Expend(sg.Name, amount)
	default:
		return fmt.Errorf("single %q: %w: %q", sg.Name, ErrInvalidKind, sg.Kind)
	}
	if sg.On != nil {
		y, m, d, err := sg.On.Resolve(time.January, 1)
		if err != nil {
			return fmt.Errorf("single %q on: %w", sg.Name, err)
		}
		h.On(y, m, d)
	}
	return nil
}

func (b *builder) loan(l Loan) error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("loan: %w", ErrMissingName)
	}
	h := b.p.AddLoan(l.Name, core.Amount(l.Amount))
	if l.On != nil {
		y, m, d, err := l.On.Resolve(time.January, 1)
		if err != nil {
			return fmt.Errorf("loan %q on: %w", l.Name, err)
		}
		h.On(y, m, d)
	}
	if l.Begin != nil {
		if l.Begin.Year == 0 || l.Begin.Month == 0 {
			return fmt.Errorf("loan %q begin: %w", l.Name, core.ErrInvalidMonth)
		}
		h.Begin(l.Begin.Year, time.Month(l.Begin.Month))
	}
	if l.Repay != nil {
		h.RepayMonthly(core.Amount(l.Repay.Amount), l.Repay.Day)
	}
	return nil
}

func (b *builder) end(e EndRef) error {
	h, ok := b.payments[e.Name]
	if !ok {
		return fmt.Errorf("end %q: %w", e.Name, ErrUnknownEvent)
	}
	if e.At == nil {
		h.EndAtCursor()
		return nil
	}
	y, m, d, err := e.At.Resolve(time.January, 1)
	if err != nil {
		return fmt.Errorf("end %q: %w", e.Name, err)
	}
	h.End(y, m, d)
	return nil
}
