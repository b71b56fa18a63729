package report

import "github.com/2beens/cutwatch/internal/energy"

// FileSink writes the run outputs to the local filesystem.
type FileSink struct{}

func NewFileSink() *FileSink {
	return &FileSink{}
}

func (s *FileSink) WriteMerged(path string, days []energy.ReconciledDay) error {
	return WriteTable(path, MergedRows(days))
}

func (s *FileSink) WriteWeekly(path string, weeks []energy.WeeklySummary) error {
	return WriteTable(path, WeeklyRows(weeks))
}

func (s *FileSink) RenderBarChart(path string, categories []string, values []float64) error {
	return RenderBarChart(path, categories, values)
}
