package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/2beens/cutwatch/internal/config"
	"github.com/2beens/cutwatch/internal/energy"
	"github.com/2beens/cutwatch/internal/logging"
	"github.com/2beens/cutwatch/internal/pipeline"
	"github.com/2beens/cutwatch/internal/report"
	"github.com/2beens/cutwatch/internal/telemetry/metrics"
	"github.com/2beens/cutwatch/internal/telemetry/tracing"
	"github.com/2beens/cutwatch/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "", "path for the TOML (or YAML) config file, empty for defaults")
	inputDir := flag.String("input-dir", "", "folder with dailysummary.csv and exercises.csv (overrides config)")
	outputDir := flag.String("output-dir", "", "folder for the generated files (overrides config, defaults to input dir)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("load .env: %s", err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}
	cfg.ApplyOverrides(*inputDir, *outputDir)

	// os.Exit skips deferred calls, so run returns before exiting
	if err := run(cfg); err != nil {
		os.Exit(1)
	}
}

// run executes one analysis and logs its outcome. Sentry and otel are flushed
// before it returns, on success and on failure.
func run(cfg *config.Config) (err error) {
	runLog, err := logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogsPath,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
		Environment:   cfg.Environment,
		InputDir:      cfg.InputDir,
		OutputDir:     cfg.OutputDir,
		SentryEnabled: cfg.SentryEnabled,
		SentryDSN:     os.Getenv("SENTRY_DSN"),
	})
	if err != nil {
		runLog.Errorf("setup logging: %s", err)
		return err
	}
	defer sentry.Flush(2 * time.Second)

	runLog.Debugf("running in [%s] environment", cfg.Environment)

	if os.Getenv("HONEYCOMB_ENABLED") == "true" {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			runLog.Warnln("HONEYCOMB_API_KEY env var not set")
		}
		otelShutdown, err := tracing.SetupHoneycomb()
		if err != nil {
			runLog.Errorf("setup honeycomb: %s", err)
		} else {
			defer otelShutdown()
		}
	} else {
		runLog.Debugln("honeycomb tracing disabled")
	}

	// runs before the flushes above
	defer func() {
		if err == nil {
			return
		}
		var malformedErr *energy.MalformedInputError
		if errors.As(err, &malformedErr) {
			runLog.Errorf("input rejected, nothing written: %s", err)
		} else {
			runLog.Errorf("run failed: %s", err)
		}
	}()

	for _, path := range []string{cfg.IntakePath(), cfg.ExercisePath()} {
		exists, err := pkg.PathExists(path, false)
		if err != nil {
			return fmt.Errorf("check input %s: %w", path, err)
		}
		if !exists {
			return fmt.Errorf("input file not found: %s", path)
		}
	}

	analysis, err := cfg.AnalysisParams()
	if err != nil {
		return fmt.Errorf("analysis params: %w", err)
	}

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("cutwatch", "run", promRegistry)

	p := pipeline.New(report.NewFileSink(), metricsManager, promRegistry)
	result, err := p.Run(context.Background(), pipeline.Params{
		IntakePath:      cfg.IntakePath(),
		ExercisePath:    cfg.ExercisePath(),
		OutputDir:       cfg.OutputDir,
		Analysis:        analysis,
		MetricsTextfile: cfg.MetricsTextfile,
	})
	if err != nil {
		return err
	}

	if err := report.PrintSummary(os.Stdout, result.Summary()); err != nil {
		runLog.Errorf("print summary: %s", err)
	}
	return nil
}
