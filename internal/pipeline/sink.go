package pipeline

import "github.com/2beens/cutwatch/internal/energy"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=pipeline_test

// Sink persists the results of a run.
type Sink interface {
	WriteMerged(path string, days []energy.ReconciledDay) error
	WriteWeekly(path string, weeks []energy.WeeklySummary) error
	RenderBarChart(path string, categories []string, values []float64) error
}
