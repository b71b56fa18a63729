package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/2beens/cutwatch/internal/energy"
	"github.com/2beens/cutwatch/internal/report"
	"github.com/2beens/cutwatch/internal/telemetry/metrics"
	"github.com/2beens/cutwatch/internal/telemetry/tracing"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

const (
	MergedFileName      = "merged_summary.csv"
	WeeklyFileName      = "Weekly_Calorie_Deficit_Summary.csv"
	CleanWeeklyFileName = "Clean_Weekly_Summary.csv"
	ChartFileName       = "weekly_deficit_chart.png"
)

type Params struct {
	IntakePath   string
	ExercisePath string
	OutputDir    string
	Analysis     energy.Params
	// MetricsTextfile, when set, receives the run metrics after every run that got
	// past loading. Rejected input leaves no file behind.
	MetricsTextfile string
}

type Result struct {
	Merged      []energy.ReconciledDay
	DeficitDays int
	CutFound    bool
	Cut         energy.CutWindow
	Weekly      []energy.WeeklySummary
	Clean       []energy.WeeklySummary
	Stats       energy.CutStats
	// Outputs lists the written files, in write order.
	Outputs []string
}

func (r *Result) Summary() report.Summary {
	return report.Summary{
		MergedDays:  len(r.Merged),
		DeficitDays: r.DeficitDays,
		CutFound:    r.CutFound,
		CutStart:    r.Cut.Start,
		Weeks:       r.Clean,
		Stats:       r.Stats,
		Outputs:     r.Outputs,
	}
}

type Pipeline struct {
	sink     Sink
	metrics  *metrics.Manager
	gatherer prometheus.Gatherer
}

// New creates a pipeline writing to sink. gatherer is only used to dump the
// metrics textfile and may be nil when no textfile is configured.
func New(sink Sink, metricsManager *metrics.Manager, gatherer prometheus.Gatherer) *Pipeline {
	return &Pipeline{
		sink:     sink,
		metrics:  metricsManager,
		gatherer: gatherer,
	}
}

// Run loads both logs, writes the merged daily table, and if a cut is detected,
// the weekly summaries and the chart. A run without a detected cut is not an
// error: the result has CutFound false and only the merged table is written.
func (p *Pipeline) Run(ctx context.Context, params Params) (_ *Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "pipeline.run")
	loaded := false
	defer func() {
		err = multierr.Append(err, p.finishRun(params, err, loaded))
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		intake   []energy.DailyIntake
		sessions []energy.ExerciseSession
	)
	if err := p.stage(ctx, "load", func() (err error) {
		if intake, err = energy.LoadIntakeFile(params.IntakePath); err != nil {
			return err
		}
		sessions, err = energy.LoadExercisesFile(params.ExercisePath)
		return err
	}); err != nil {
		return nil, err
	}
	loaded = true
	p.metrics.CounterIntakeRows.Add(float64(len(intake)))
	p.metrics.CounterExerciseSessions.Add(float64(len(sessions)))
	log.WithFields(log.Fields{
		"intake_rows":       len(intake),
		"exercise_sessions": len(sessions),
	}).Debug("logs loaded")

	result := &Result{}
	if err := p.stage(ctx, "reconcile", func() error {
		result.Merged = energy.Reconcile(intake, sessions, params.Analysis)
		result.DeficitDays = energy.DeficitDays(result.Merged, params.Analysis)
		return nil
	}); err != nil {
		return nil, err
	}
	p.metrics.GaugeMergedDays.Set(float64(len(result.Merged)))
	p.metrics.GaugeDeficitDays.Set(float64(result.DeficitDays))

	mergedPath := filepath.Join(params.OutputDir, MergedFileName)
	if err := p.stage(ctx, "write_merged", func() error {
		return p.sink.WriteMerged(mergedPath, result.Merged)
	}); err != nil {
		return nil, fmt.Errorf("write merged table: %w", err)
	}
	p.wrote(result, mergedPath)
	log.Infof("merged summary saved to: %s", mergedPath)

	if err := p.stage(ctx, "detect", func() (err error) {
		result.Cut, err = energy.DetectCut(result.Merged, params.Analysis)
		return err
	}); err != nil {
		if errors.Is(err, energy.ErrNoQualifyingWindow) {
			p.metrics.GaugeCutDetected.Set(0)
			log.Warnln("could not detect a consistent cutting period")
			return result, nil
		}
		return nil, err
	}
	result.CutFound = true
	span.SetAttributes(attribute.String("cut_start", result.Cut.Start.Format(energy.DateLayout)))
	p.metrics.GaugeCutDetected.Set(1)
	p.metrics.GaugeCutStartUnix.Set(float64(result.Cut.Start.Unix()))
	log.Infof("cut likely began on: %s", result.Cut.Start.Format(energy.DateLayout))

	if err := p.stage(ctx, "aggregate", func() error {
		result.Weekly = energy.WeeklyDeficits(result.Merged, result.Cut, params.Analysis)
		result.Clean = energy.RoundSummaries(result.Weekly)
		result.Stats = energy.SummarizeCut(result.Weekly)
		return nil
	}); err != nil {
		return nil, err
	}
	p.metrics.GaugeWeeks.Set(float64(result.Stats.Weeks))
	p.metrics.GaugeTotalDeficitKcal.Set(result.Stats.TotalDeficitKcal)

	if err := p.writeWeekly(ctx, params.OutputDir, result); err != nil {
		return nil, err
	}

	return result, nil
}

func (p *Pipeline) writeWeekly(ctx context.Context, outputDir string, result *Result) error {
	weeklyPath := filepath.Join(outputDir, WeeklyFileName)
	if err := p.stage(ctx, "write_weekly", func() error {
		return p.sink.WriteWeekly(weeklyPath, result.Weekly)
	}); err != nil {
		return fmt.Errorf("write weekly summary: %w", err)
	}
	p.wrote(result, weeklyPath)
	log.Infof("weekly deficit summary saved to: %s", weeklyPath)

	cleanPath := filepath.Join(outputDir, CleanWeeklyFileName)
	if err := p.stage(ctx, "write_clean_weekly", func() error {
		return p.sink.WriteWeekly(cleanPath, result.Clean)
	}); err != nil {
		return fmt.Errorf("write clean weekly summary: %w", err)
	}
	p.wrote(result, cleanPath)
	log.Infof("clean summary saved to: %s", cleanPath)

	weekStarts := make([]time.Time, 0, len(result.Weekly))
	deficits := make([]float64, 0, len(result.Weekly))
	for _, w := range result.Weekly {
		weekStarts = append(weekStarts, w.WeekStart)
		deficits = append(deficits, w.WeeklyDeficitKcal)
	}

	chartPath := filepath.Join(outputDir, ChartFileName)
	if err := p.stage(ctx, "render_chart", func() error {
		return p.sink.RenderBarChart(chartPath, report.WeekLabels(weekStarts), deficits)
	}); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	p.wrote(result, chartPath)
	log.Infof("chart saved to: %s", chartPath)

	return nil
}

func (p *Pipeline) stage(ctx context.Context, name string, fn func() error) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "pipeline."+name)
	start := time.Now()
	defer func() {
		p.metrics.HistStageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		tracing.EndSpanWithErrCheck(span, err)
	}()
	return fn()
}

func (p *Pipeline) wrote(result *Result, path string) {
	result.Outputs = append(result.Outputs, path)
	p.metrics.CounterFilesWritten.Inc()
}

func (p *Pipeline) finishRun(params Params, runErr error, loaded bool) error {
	if runErr != nil {
		p.metrics.GaugeLastRunSuccess.Set(0)
	} else {
		p.metrics.GaugeLastRunSuccess.Set(1)
	}

	if !loaded || params.MetricsTextfile == "" || p.gatherer == nil {
		return nil
	}
	return metrics.WriteTextfile(params.MetricsTextfile, p.gatherer)
}
