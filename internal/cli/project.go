package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"profin/internal/config"
	"profin/internal/core"
	applog "profin/internal/log"
	"profin/internal/report"
	"profin/internal/scenario"
	"profin/internal/services"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project FILE...",
		Short: "Project the balance of one or more scenario files",
		Long: `Project the balance of one or more scenario files.

Each file is projected independently. The end date comes from the file's
[projection] table unless --to is given. --to accepts YYYY, YYYY-MM or
YYYY-MM-DD; the month may be a name ("2019-sep"). A missing month means
December and a missing or non-existent day means the last day of the month.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runProject,
	}

	f := cmd.Flags()
	f.String("to", "", "Projection end date (YYYY[-MM[-DD]])")
	f.StringP("format", "f", "", "Series format: pretty, csv or json (env PROFIN_FORMAT)")
	f.BoolP("verbose", "v", false, "Print every day's transactions (env PROFIN_VERBOSE)")
	f.String("currency", "", "Currency label for pretty output (env PROFIN_CURRENCY)")
	f.IntP("workers", "w", 0, "Scenario files projected concurrently (env PROFIN_WORKERS)")
	f.String("log-level", "", "Log level: debug, info, warn or error (env PROFIN_LOG_LEVEL)")
	return cmd
}

func runProject(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	cfg, err := LoadConfig(func(c *config.Config) {
		if flags.Changed("format") {
			c.Format, _ = flags.GetString("format")
		}
		if flags.Changed("verbose") {
			c.Verbose, _ = flags.GetBool("verbose")
		}
		if flags.Changed("currency") {
			c.Currency, _ = flags.GetString("currency")
		}
		if flags.Changed("workers") {
			c.Workers, _ = flags.GetInt("workers")
		}
		if flags.Changed("log-level") {
			c.LogLevel, _ = flags.GetString("log-level")
		}
	})
	if err != nil {
		applog.New(applog.Config{Component: applog.ComponentCLI, Output: cmd.ErrOrStderr()}).
			WithFields(applog.NewFields().WithOperation(applog.OpValidate).WithError(err)).
			Error("Configuration validation failed")
		return err
	}

	logger := SetupLogger(cfg, cmd.ErrOrStderr())
	ctx := applog.WithContext(cmd.Context(), logger)

	var until *scenario.Until
	if to, _ := flags.GetString("to"); to != "" {
		u, err := ParseUntil(to)
		if err != nil {
			return fmt.Errorf("invalid --to: %w", err)
		}
		until = &u
	}

	runner := services.NewRunner(cfg.Workers, logger)
	results, err := runner.Run(ctx, args, until)
	if err != nil {
		logger.WithFields(applog.NewFields().WithError(err)).ErrorContext(ctx, "Projection failed")
		return err
	}

	currency := cfg.Currency
	for i, res := range results {
		label := currency
		if !flags.Changed("currency") && res.Currency != "" {
			label = res.Currency
		}
		if err := render(ctx, cmd.OutOrStdout(), cfg, res, label, i > 0); err != nil {
			return fmt.Errorf("%s: %w", res.Path, err)
		}
	}
	return nil
}

func render(ctx context.Context, w io.Writer, cfg *config.Config, res services.Result, currency string, separate bool) error {
	fields := applog.NewFields().
		WithRunID(res.RunID).
		WithScenario(res.Name, res.Path).
		WithOperation(applog.OpRender)
	logger := applog.FromContext(ctx).WithComponent(applog.ComponentReport).
		With(applog.FieldFormat, cfg.Format).
		WithFields(fields)

	if err := writeResult(w, cfg, res, currency, separate); err != nil {
		logger.WithFields(applog.NewFields().WithError(err)).ErrorContext(ctx, "Failed to render projection")
		return err
	}
	logger.DebugContext(ctx, "Rendered projection", applog.FieldSamples, len(res.Samples))
	return nil
}

func writeResult(w io.Writer, cfg *config.Config, res services.Result, currency string, separate bool) error {
	pretty := cfg.Format == report.FormatPretty
	if separate && pretty {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	if cfg.Verbose || res.Verbose {
		if err := report.Verbose(w, res.Days); err != nil {
			return err
		}
	}
	if pretty {
		if _, err := fmt.Fprintf(w, "== %s (until %s)\n", res.Name, res.Until); err != nil {
			return err
		}
	}
	if err := report.WriteSeries(w, cfg.Format, res.Samples, currency); err != nil {
		return err
	}
	if pretty {
		return report.WriteSummary(w, res.Name, res.Summary, currency)
	}
	return nil
}

// ParseUntil parses a YYYY[-MM[-DD]] end date. The month may be a number
// or a name. A missing month means December; a missing day, or one past the
// end of the month, means the month's last day.
func ParseUntil(s string) (scenario.Until, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) > 3 {
		return scenario.Until{}, fmt.Errorf("%w: %q", core.ErrInvalidDate, s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1 {
		return scenario.Until{}, fmt.Errorf("%w: year %q", core.ErrInvalidDate, parts[0])
	}

	month := time.December
	if len(parts) > 1 {
		if month, err = core.ResolveMonth(parts[1]); err != nil {
			return scenario.Until{}, err
		}
	}

	day := 31
	if len(parts) > 2 {
		if day, err = strconv.Atoi(parts[2]); err != nil || day < 1 || day > 31 {
			return scenario.Until{}, fmt.Errorf("%w: day %q", core.ErrInvalidDate, parts[2])
		}
	}

	d, err := core.ClampToValidDay(year, month, day)
	if err != nil {
		return scenario.Until{}, err
	}
	return scenario.Until{Year: d.Year(), Month: d.Month(), Day: d.Day()}, nil
}
