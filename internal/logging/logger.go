package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/2beens/cutwatch/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const sentryServerName = "cutwatch"

type LoggerSetupParams struct {
	// LogFileName is placed under OutputDir when relative. Empty logs to STDOUT only.
	LogFileName   string
	LogToStdout   bool
	LogLevel      string
	LogFormatJSON bool
	Environment   string
	InputDir      string
	OutputDir     string
	SentryEnabled bool
	SentryDSN     string
}

// Setup configures the global logger for a run and returns the entry every run
// log line should go through, carrying the environment and the run folders.
func Setup(params LoggerSetupParams) (*logrus.Entry, error) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))

	runLog := logrus.WithFields(logrus.Fields{
		"env":        params.Environment,
		"input_dir":  params.InputDir,
		"output_dir": params.OutputDir,
	})

	out, err := output(params)
	if err != nil {
		return runLog, err
	}
	logrus.SetOutput(out)

	if params.SentryEnabled {
		err := sentry.Init(sentry.ClientOptions{
			Environment: params.Environment,
			Dsn:         params.SentryDSN,
			ServerName:  sentryServerName,
		})
		if err != nil {
			return runLog, fmt.Errorf("sentry init: %w", err)
		}
		logrus.AddHook(NewSentryHook([]logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		}))
		runLog.Debugln("sentry hook added")
	}

	return runLog, nil
}

func output(params LoggerSetupParams) (io.Writer, error) {
	logFile := LogFilePath(params.LogFileName, params.OutputDir)
	if logFile == "" {
		return os.Stdout, nil
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		LocalTime:  false, // false -> use UTC
		Compress:   true,
	}

	if params.LogToStdout {
		return pkg.NewCombinedWriter(os.Stdout, lumberJackLogger), nil
	}
	return lumberJackLogger, nil
}

// LogFilePath resolves the log file of a run: a .log suffix is ensured and a
// relative name is placed under outputDir, next to the reports of the run.
func LogFilePath(name, outputDir string) string {
	if name == "" {
		return ""
	}
	if !strings.HasSuffix(name, ".log") {
		name += ".log"
	}
	if filepath.IsAbs(name) || outputDir == "" {
		return name
	}
	return filepath.Join(outputDir, name)
}

func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "info":
		return logrus.InfoLevel
	case "trace":
		return logrus.TraceLevel
	case "warn":
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}
