package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterIntakeRows       prometheus.Counter
	CounterExerciseSessions prometheus.Counter
	CounterFilesWritten     prometheus.Counter

	// gauges
	GaugeMergedDays       prometheus.Gauge
	GaugeDeficitDays      prometheus.Gauge
	GaugeCutDetected      prometheus.Gauge
	GaugeCutStartUnix     prometheus.Gauge
	GaugeWeeks            prometheus.Gauge
	GaugeTotalDeficitKcal prometheus.Gauge
	GaugeLastRunSuccess   prometheus.Gauge

	// histograms
	HistStageDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("cutwatch", "test_run", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("cutwatch", "test_run", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterIntakeRows := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "intake_rows",
		Help:      "The total number of food log rows loaded",
	})
	counterExerciseSessions := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "exercise_sessions",
		Help:      "The total number of exercise sessions loaded",
	})
	counterFilesWritten := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "files_written",
		Help:      "The total number of output files written",
	})

	gaugeMergedDays := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "merged_days",
		Help:      "Number of days in the merged daily table",
	})
	gaugeDeficitDays := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "deficit_days",
		Help:      "Number of merged days below TDEE",
	})
	gaugeCutDetected := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "cut_detected",
		Help:      "1 if a cutting period was detected, 0 otherwise",
	})
	gaugeCutStartUnix := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "cut_start_timestamp_seconds",
		Help:      "Start day of the detected cutting period, as unix time",
	})
	gaugeWeeks := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "cut_weeks",
		Help:      "Number of weekly summaries since the cut start",
	})
	gaugeTotalDeficitKcal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "cut_total_deficit_kcal",
		Help:      "Sum of the weekly deficits since the cut start",
	})
	gaugeLastRunSuccess := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "last_run_success",
		Help:      "1 if the last run finished without error",
	})

	histStageDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "stage_duration_seconds",
		Help:      "Duration of each pipeline stage in seconds",
		Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
	}, []string{"stage"})

	return &Manager{
		CounterIntakeRows:       counterIntakeRows,
		CounterExerciseSessions: counterExerciseSessions,
		CounterFilesWritten:     counterFilesWritten,
		GaugeMergedDays:         gaugeMergedDays,
		GaugeDeficitDays:        gaugeDeficitDays,
		GaugeCutDetected:        gaugeCutDetected,
		GaugeCutStartUnix:       gaugeCutStartUnix,
		GaugeWeeks:              gaugeWeeks,
		GaugeTotalDeficitKcal:   gaugeTotalDeficitKcal,
		GaugeLastRunSuccess:     gaugeLastRunSuccess,
		HistStageDuration:       histStageDuration,
	}
}
