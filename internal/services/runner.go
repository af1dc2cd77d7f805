package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"profin/internal/core"
	applog "profin/internal/log"
	"profin/internal/projection"
	"profin/internal/scenario"
)

// ErrNoScenarios is returned when Run is called without any file.
var ErrNoScenarios = errors.New("no scenario files given")

// ErrNoEnd is returned when neither the scenario nor the caller names a
// projection end date.
var ErrNoEnd = errors.New("projection end date not set")

// Result is the outcome of projecting one scenario file.
type Result struct {
	RunID    string
	Path     string
	Name     string
	Currency string
	Until    scenario.Until
	Verbose  bool
	Days     []projection.Day
	Samples  []core.Sample
	Summary  core.Summary
}

// Runner projects scenario files, each on its own Projector.
type Runner struct {
	Workers int
	logger  *applog.Logger
}

// NewRunner creates a runner bounded to the given number of concurrent
// projections.
func NewRunner(workers int, logger *applog.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Runner{
		Workers: workers,
		logger:  logger.WithComponent(applog.ComponentRunner),
	}
}

// Run loads, builds and projects every path. until overrides the end date
// declared in the scenario files when non-nil. Results keep the order of
// paths. The first failure cancels the remaining runs.
func (r *Runner) Run(ctx context.Context, paths []string, until *scenario.Until) ([]Result, error) {
	if len(paths) == 0 {
		return nil, ErrNoScenarios
	}

	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers)

	r.logger.DebugContext(ctx, "Starting projection runs",
		applog.FieldWorkers, r.Workers,
		"files", len(paths))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.runOne(ctx, path, until)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, path string, until *scenario.Until) (Result, error) {
	started := time.Now()
	runID := uuid.NewString()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	s, err := scenario.Load(path)
	if err != nil {
		fields := applog.NewFields().
			WithRunID(runID).
			WithScenario(name, path).
			WithOperation(applog.OpLoad).
			WithError(err)
		r.logger.WithFields(fields).ErrorContext(ctx, "Failed to load scenario")
		return Result{}, err
	}
	if s.Name != "" {
		name = s.Name
	}
	logger := r.logger.WithFields(applog.NewFields().WithRunID(runID).WithScenario(name, path))
	ctx = applog.WithContext(ctx, logger)

	end, err := resolveUntil(s, until)
	if err != nil {
		logger.WithFields(applog.NewFields().WithOperation(applog.OpProject).WithError(err)).
			ErrorContext(ctx, "No projection end date")
		return Result{}, err
	}

	p, err := s.BuildContext(ctx)
	if err != nil {
		logger.WithFields(applog.NewFields().WithOperation(applog.OpBuild).WithError(err)).
			ErrorContext(ctx, "Failed to build scenario")
		return Result{}, err
	}

	plog := logger.WithComponent(applog.ComponentProjector)
	days, err := p.ProjectDays(end.Year, end.Month, end.Day)
	if err != nil {
		plog.WithFields(applog.NewFields().WithOperation(applog.OpProject).WithError(err)).
			ErrorContext(ctx, "Projection failed")
		return Result{}, err
	}
	samples := projection.Samples(days)
	summary := core.Summarize(samples)

	attrs := []any{
		applog.FieldOperation, applog.OpProject,
		applog.FieldEvents, len(p.Events()),
		applog.FieldDays, len(days),
		applog.FieldSamples, len(samples),
		applog.FieldUntil, end.String(),
		applog.FieldDuration, time.Since(started).Milliseconds(),
	}
	if len(samples) > 0 {
		attrs = append(attrs,
			applog.FieldStart, summary.First.Date.String(),
			applog.FieldFinalBalance, int64(summary.Last.Balance),
			applog.FieldLowest, int64(summary.Lowest.Balance),
			applog.FieldLowestDate, summary.Lowest.Date.String(),
			applog.FieldDaysNegative, summary.DaysNegative)
	}
	plog.InfoContext(ctx, "Projection complete", attrs...)

	return Result{
		RunID:    runID,
		Path:     path,
		Name:     name,
		Currency: s.Currency,
		Until:    end,
		Verbose:  s.Projection.Verbose,
		Days:     days,
		Samples:  samples,
		Summary:  summary,
	}, nil
}

func resolveUntil(s *scenario.Scenario, override *scenario.Until) (scenario.Until, error) {
	if override != nil {
		return *override, nil
	}
	u, ok, err := s.Until()
	if err != nil {
		return scenario.Until{}, err
	}
	if !ok {
		return scenario.Until{}, ErrNoEnd
	}
	return u, nil
}
