// Package report renders projected days and balance series for people and
// for charting tools.
package report

import (
	"bufio"
	"fmt"
	"io"

	"profin/internal/projection"
)

// Verbose writes the daily activity log: for each day the date, any balance
// reset, one line per contribution, and the end-of-day balance when a
// contribution moved it.
//
//	2018-04-01
//	| Rent                 ... -8,000
//	End Balance: 32,000
func Verbose(w io.Writer, days []projection.Day) error {
	bw := bufio.NewWriter(w)
	for _, d := range days {
		fmt.Fprintln(bw, d.Date)
		if d.Anchored {
			fmt.Fprintf(bw, "Set Balance: %s\n", d.Anchor)
		}
		for _, l := range d.Lines {
			fmt.Fprintf(bw, "| %20s ... %s\n", l.Name, l.Amount.Signed())
		}
		if d.Moved() {
			fmt.Fprintf(bw, "End Balance: %s\n", d.Balance)
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}
