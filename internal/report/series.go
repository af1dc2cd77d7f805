package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"profin/internal/core"
)

// Output formats for a balance series.
const (
	// FormatPretty is the human-readable table
	FormatPretty = "pretty"

	// FormatCSV is a date,balance CSV for charting tools
	FormatCSV = "csv"

	// FormatJSON is an array of {date, balance} objects
	FormatJSON = "json"
)

// Formats lists every supported series format.
var Formats = []string{FormatPretty, FormatCSV, FormatJSON}

type jsonSample struct {
	Date    string `json:"date"`
	Balance int64  `json:"balance"`
}

// WriteSeries writes the samples in the given format. currency labels the
// balance column of the pretty table.
func WriteSeries(w io.Writer, format string, samples []core.Sample, currency string) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, samples)
	case FormatJSON:
		return writeJSON(w, samples)
	case FormatPretty, "":
		return writePretty(w, samples, currency)
	default:
		return fmt.Errorf("unknown output format %q: must be one of %v", format, Formats)
	}
}

func writeCSV(w io.Writer, samples []core.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "balance"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range samples {
		if err := cw.Write([]string{s.Date.String(), strconv.FormatInt(int64(s.Balance), 10)}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, samples []core.Sample) error {
	out := make([]jsonSample, len(samples))
	for i, s := range samples {
		out[i] = jsonSample{Date: s.Date.String(), Balance: int64(s.Balance)}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writePretty(w io.Writer, samples []core.Sample, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := "BALANCE"
	if currency != "" {
		header += " (" + currency + ")"
	}
	fmt.Fprintf(tw, "DATE\t%s\t\n", header)
	for _, s := range samples {
		fmt.Fprintf(tw, "%s\t%s\t\n", s.Date, s.Balance)
	}
	return tw.Flush()
}

// WriteSummary writes a short overview of a projection.
func WriteSummary(w io.Writer, name string, s core.Summary, currency string) error {
	if s.Samples == 0 {
		_, err := fmt.Fprintf(w, "%s: no activity\n", name)
		return err
	}
	_, err := fmt.Fprintf(w,
		"%s: %s on %s, lowest %s on %s, highest %s on %s, %d days below zero\n",
		name,
		s.Last.Balance.Format(currency), s.Last.Date,
		s.Lowest.Balance.Format(currency), s.Lowest.Date,
		s.Highest.Balance.Format(currency), s.Highest.Date,
		s.DaysNegative,
	)
	return err
}
