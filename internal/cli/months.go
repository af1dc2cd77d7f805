package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"profin/internal/core"
)

func newMonthsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "List the month names accepted in scenarios and --to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens := core.MonthTokens()
			out := cmd.OutOrStdout()
			for m := time.January; m <= time.December; m++ {
				names := tokens[m]
				// Shortest first, so "sep" precedes "sept" and "september".
				slices.SortFunc(names, func(a, b string) int {
					if len(a) != len(b) {
						return len(a) - len(b)
					}
					return strings.Compare(a, b)
				})
				if _, err := fmt.Fprintf(out, "%2d  %s\n", int(m), strings.Join(names, ", ")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the profin version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "profin %s\n", Version)
			return err
		},
	}
}
