package projection

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"profin/internal/core"
)

func mustCursor(t *testing.T, p *Projector, y int, m time.Month, d int) {
	t.Helper()
	if err := p.SetCursorDate(y, m, d); err != nil {
		t.Fatalf("SetCursorDate: %v", err)
	}
}

func sampleMap(samples []core.Sample) map[string]core.Amount {
	out := make(map[string]core.Amount, len(samples))
	for _, s := range samples {
		out[s.Date.String()] = s.Balance
	}
	return out
}

func TestProject_InitialBalanceAndRent(t *testing.T) {
	p := New()
	mustCursor(t, p, 2018, time.March, 24)
	p.SetInitialBalance(40000)
	p.AddRecurringPayment("Rent", -8000, 1)

	samples, err := p.Project(2018, time.April, 1)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	want := []core.Sample{
		{Date: date(2018, time.March, 24), Balance: 40000},
		{Date: date(2018, time.April, 1), Balance: 32000},
	}
	if !reflect.DeepEqual(samples, want) {
		t.Fatalf("samples = %v, want %v", samples, want)
	}
}

func TestProject_EndAtCursor(t *testing.T) {
	p := New()
	mustCursor(t, p, 2018, time.March, 1)
	gym := p.AddRecurringPayment("Gym", -500, 1)
	mustCursor(t, p, 2018, time.June, 12)
	gym.EndAtCursor()

	end := gym.Payment().Span()
	if !end.HasEnd || !end.End.Equal(date(2018, time.June, 30)) {
		t.Fatalf("end = %+v, want 2018-06-30", end)
	}
	if v, ok := gym.Payment().Contribution(date(2018, time.July, 1), 0); !ok || v != 0 {
		t.Fatalf("July contribution = %d (ok=%v), want present zero", v, ok)
	}

	samples, err := p.Project(2018, time.August, 31)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(samples) != 4 {
		t.Fatalf("expected 4 payments (March to June), got %v", samples)
	}
	if last := samples[len(samples)-1]; last.Balance != -2000 || !last.Date.Equal(date(2018, time.June, 1)) {
		t.Fatalf("last sample = %+v", last)
	}
}

func TestProject_AnchorKeepsSameDayContributions(t *testing.T) {
	p := New()
	mustCursor(t, p, 2018, time.January, 1)
	p.AddRecurringPayment("Salary", 500, 1)
	mustCursor(t, p, 2018, time.February, 1)
	p.SetInitialBalance(10000)

	samples, err := p.Project(2018, time.February, 28)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	got := sampleMap(samples)
	if got["2018-01-01"] != 500 {
		t.Errorf("2018-01-01 = %d, want 500", got["2018-01-01"])
	}
	// The anchor resets the baseline; the salary registered before it still counts.
	if got["2018-02-01"] != 10500 {
		t.Errorf("2018-02-01 = %d, want 10500", got["2018-02-01"])
	}
}

func TestProject_AnchorsAreIndependent(t *testing.T) {
	p := New()
	mustCursor(t, p, 2018, time.January, 1)
	p.SetInitialBalance(1000)
	p.AddRecurringPayment("Phone", -100, 15)
	mustCursor(t, p, 2018, time.March, 1)
	p.SetInitialBalance(200)

	samples, err := p.Project(2018, time.March, 31)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	want := map[string]core.Amount{
		"2018-01-01": 1000,
		"2018-01-15": 900,
		"2018-02-15": 800,
		"2018-03-01": 200,
		"2018-03-15": 100,
	}
	if got := sampleMap(samples); !reflect.DeepEqual(got, want) {
		t.Fatalf("samples = %v, want %v", got, want)
	}
}

func TestProject_SparseSeries(t *testing.T) {
	p := New()
	mustCursor(t, p, 2018, time.January, 1)
	p.AddRecurringPayment("Rent", -100, 5)

	days, err := p.ProjectDays(2018, time.January, 31)
	if err != nil {
		t.Fatalf("ProjectDays: %v", err)
	}
	if len(days) != 1 || days[0].Date.Day() != 5 {
		t.Fatalf("expected a single day on the 5th, got %+v", days)
	}
	if !days[0].Moved() || days[0].Anchored {
		t.Errorf("day flags = moved %v anchored %v", days[0].Moved(), days[0].Anchored)
	}
}

func TestProject_DayLinesInRegistrationOrder(t *testing.T) {
	p := New()
	mustCursor(t, p, 2018, time.April, 24)
	p.SetInitialBalance(100000)
	p.AddRecurringPayment("Rent", -12000, 1)
	p.AddRecurringPayment("Spotify", -160, 1)
	p.Receive("Gift", -300)

	days, err := p.ProjectDays(2018, time.May, 1)
	if err != nil {
		t.Fatalf("ProjectDays: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	first := days[0]
	if !first.Anchored || first.Anchor != 100000 {
		t.Errorf("first day anchor = %d (anchored=%v)", first.Anchor, first.Anchored)
	}
	if len(first.Lines) != 1 || first.Lines[0].Name != "Gift" || first.Lines[0].Amount != 300 {
		t.Errorf("first day lines = %+v", first.Lines)
	}
	second := days[1]
	names := []string{second.Lines[0].Name, second.Lines[1].Name}
	if !reflect.DeepEqual(names, []string{"Rent", "Spotify"}) {
		t.Errorf("order = %v", names)
	}
	if second.Balance != 100300-12160 {
		t.Errorf("balance = %d", second.Balance)
	}
}

func TestProject_Loan(t *testing.T) {
	p := New()
	mustCursor(t, p, 2018, time.March, 24)
	loan := p.AddLoan("Frank's Loan", 35000).
		On(2018, time.September, 0).
		RepayMonthly(-8000, 7).
		Begin(2018, time.December)

	if r := loan.Receipt(); r.Amount() != 35000 || !r.Date().Equal(date(2018, time.September, 1)) {
		t.Fatalf("receipt = %d on %s", r.Amount(), r.Date())
	}
	repay, ok := loan.Repayment()
	if !ok {
		t.Fatal("expected a repayment")
	}
	if c, _ := repay.Cap(); c != 35000 || repay.PerMonth() != -8000 {
		t.Fatalf("repayment = %d capped at %d", repay.PerMonth(), c)
	}
	if kinds := kindsOf(p.Events()); !reflect.DeepEqual(kinds, []Kind{KindSingle, KindLoan, KindPayment}) {
		t.Fatalf("registered kinds = %v", kinds)
	}

	samples, err := p.Project(2019, time.December, 31)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	want := []core.Sample{
		{Date: date(2018, time.September, 1), Balance: 35000},
		{Date: date(2018, time.December, 7), Balance: 27000},
		{Date: date(2019, time.January, 7), Balance: 19000},
		{Date: date(2019, time.February, 7), Balance: 11000},
		{Date: date(2019, time.March, 7), Balance: 3000},
		{Date: date(2019, time.April, 7), Balance: 0},
	}
	if !reflect.DeepEqual(samples, want) {
		t.Fatalf("samples = %v, want %v", samples, want)
	}
}

func TestProject_LoanRepaysFromBorrowMonth(t *testing.T) {
	p := New()
	mustCursor(t, p, 2018, time.June, 1)
	p.AddLoan("Luke", 10000).On(2018, time.October, 1).RepayMonthly(5000, 18)

	samples, err := p.Project(2018, time.December, 31)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	want := map[string]core.Amount{
		"2018-10-01": 10000,
		"2018-10-18": 5000,
		"2018-11-18": 0,
	}
	if got := sampleMap(samples); !reflect.DeepEqual(got, want) {
		t.Fatalf("samples = %v, want %v", got, want)
	}
}

func TestProject_LoanRedatedAfterTermsKeepsRepayment(t *testing.T) {
	p := New()
	mustCursor(t, p, 2018, time.June, 1)
	p.AddLoan("Luke", 10000).RepayMonthly(5000, 18).On(2018, time.October, 1)

	samples, err := p.Project(2018, time.December, 31)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	want := map[string]core.Amount{
		"2018-06-18": -5000,
		"2018-07-18": -10000,
		"2018-10-01": 0,
	}
	if got := sampleMap(samples); !reflect.DeepEqual(got, want) {
		t.Fatalf("samples = %v, want %v", got, want)
	}
}

func TestProject_IsRepeatable(t *testing.T) {
	p := New()
	mustCursor(t, p, 2018, time.January, 1)
	p.SetInitialBalance(1000)
	p.AddRecurringPayment("Capped", -400, 10).Total(1000)
	p.AddRecurringPayment("Food", -3000, 1).Spread(true)

	first, err := p.Project(2018, time.June, 30)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	second, err := p.Project(2018, time.June, 30)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("projecting twice must give the same series")
	}
}

func TestProject_ClampsEndDate(t *testing.T) {
	p := New()
	mustCursor(t, p, 2018, time.June, 1)
	p.AddRecurringPayment("Rent", -100, 30)

	samples, err := p.Project(2018, time.June, 31)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(samples) != 1 || !samples[0].Date.Equal(date(2018, time.June, 30)) {
		t.Fatalf("samples = %v", samples)
	}
}

func TestProject_Errors(t *testing.T) {
	t.Run("no start date", func(t *testing.T) {
		_, err := New().Project(2019, time.December, 31)
		if !errors.Is(err, core.ErrNoStartDate) || !errors.Is(err, core.ErrInvalidRange) {
			t.Fatalf("expected ErrNoStartDate, got %v", err)
		}
	})
	t.Run("end before start", func(t *testing.T) {
		p := New()
		mustCursor(t, p, 2019, time.January, 1)
		if _, err := p.Project(2018, time.December, 31); !errors.Is(err, core.ErrInvalidRange) {
			t.Fatalf("expected ErrInvalidRange, got %v", err)
		}
	})
	t.Run("bad end month", func(t *testing.T) {
		p := New()
		mustCursor(t, p, 2018, time.January, 1)
		if _, err := p.Project(2018, 13, 31); !errors.Is(err, core.ErrInvalidMonth) {
			t.Fatalf("expected ErrInvalidMonth, got %v", err)
		}
	})
	t.Run("bad cursor", func(t *testing.T) {
		p := New()
		if err := p.SetCursorDate(2018, time.February, 30); !errors.Is(err, core.ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate, got %v", err)
		}
		if _, ok := p.Start(); ok {
			t.Fatal("an invalid cursor must not establish a start date")
		}
	})
	t.Run("construction error surfaces on project", func(t *testing.T) {
		p := New()
		mustCursor(t, p, 2018, time.January, 1)
		p.AddRecurringPayment("Rent", -100, 1).SkipMonth(2018, 13)
		if !errors.Is(p.Err(), core.ErrInvalidMonth) {
			t.Fatalf("Err() = %v", p.Err())
		}
		if _, err := p.Project(2018, time.December, 31); !errors.Is(err, core.ErrInvalidMonth) {
			t.Fatalf("expected ErrInvalidMonth, got %v", err)
		}
	})
	t.Run("bad pay day", func(t *testing.T) {
		p := New()
		mustCursor(t, p, 2018, time.January, 1)
		p.AddRecurringPayment("Rent", -100, 32)
		if !errors.Is(p.Err(), core.ErrInvalidDate) {
			t.Fatalf("Err() = %v", p.Err())
		}
	})
}

func TestHandles_DoNotAlias(t *testing.T) {
	p := New()
	mustCursor(t, p, 2018, time.January, 1)
	h := p.AddRecurringPayment("Food", -3000, 1)
	before := h.Payment()
	h.Spread(true).SkipMonth(2018, time.February).On(5)

	if before.Mode() != Lump || before.PayDay() != 1 || before.Skipped(date(2018, time.February, 1)) {
		t.Fatal("a snapshot taken before configuration must not change")
	}
	after := h.Payment()
	if after.Mode() != Spread || after.PayDay() != 5 || !after.Skipped(date(2018, time.February, 1)) {
		t.Fatalf("handle did not update the registered payment: %+v", after)
	}
}

func TestHandles_StartAndEnd(t *testing.T) {
	p := New()
	mustCursor(t, p, 2018, time.January, 1)
	h := p.AddRecurringPayment("Job", 1000, 10).Start(2018, time.March, 0).End(2018, time.May, 10)

	samples, err := p.Project(2018, time.December, 31)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(samples) != 3 || samples[2].Balance != 3000 {
		t.Fatalf("samples = %v", samples)
	}

	mustCursor(t, p, 2018, time.February, 15)
	h.StartAtCursor()
	if got := h.Payment().Span().Start; !got.Equal(date(2018, time.February, 15)) {
		t.Fatalf("start = %s", got)
	}
}

func TestSingleHandle_On(t *testing.T) {
	p := New()
	mustCursor(t, p, 2018, time.March, 24)
	h := p.Expend("Car Purchase", 120000).On(2018, time.September, 28)

	if tx := h.Transaction(); tx.Amount() != -120000 || !tx.Date().Equal(date(2018, time.September, 28)) {
		t.Fatalf("transaction = %d on %s", tx.Amount(), tx.Date())
	}
	h.On(2018, time.September, 31)
	if !errors.Is(p.Err(), core.ErrInvalidDate) {
		t.Fatalf("Err() = %v", p.Err())
	}
}

func kindsOf(events []Event) []Kind {
	out := make([]Kind, len(events))
	for i, e := range events {
		out[i] = e.Kind()
	}
	return out
}
