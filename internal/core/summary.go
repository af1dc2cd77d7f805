package core

// Sample is one point of the projected balance series.
type Sample struct {
	Date    Date
	Balance Amount
}

// Summary is a compact overview of a projected series.
type Summary struct {
	First        Sample
	Last         Sample
	Lowest       Sample
	Highest      Sample
	Samples      int
	DaysNegative int // days between samples spent with a negative balance
}

// Summarize computes the overview of a sparse, date-ordered series.
// The balance is carried forward between samples, so DaysNegative counts
// calendar days, not samples.
func Summarize(samples []Sample) Summary {
	var s Summary
	if len(samples) == 0 {
		return s
	}
	s.First = samples[0]
	s.Last = samples[len(samples)-1]
	s.Lowest = samples[0]
	s.Highest = samples[0]
	s.Samples = len(samples)

	for i, smp := range samples {
		if smp.Balance < s.Lowest.Balance {
			s.Lowest = smp
		}
		if smp.Balance > s.Highest.Balance {
			s.Highest = smp
		}
		if smp.Balance < 0 {
			days := 1
			if i+1 < len(samples) {
				days = int(samples[i+1].Date.Sub(smp.Date.Time).Hours() / 24)
			}
			s.DaysNegative += days
		}
	}
	return s
}
