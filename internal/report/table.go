package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/2beens/cutwatch/internal/energy"

	"github.com/gocarina/gocsv"
	"go.uber.org/multierr"
)

// WriteError is returned when an output file cannot be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %s", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// MergedRow is one line of the merged daily table.
type MergedRow struct {
	Date                string `csv:"Date"`
	EnergyKcal          string `csv:"Energy (kcal)"`
	Day                 string `csv:"Day"`
	CaloriesBurned      string `csv:"Calories Burned"`
	TEF                 string `csv:"TEF"`
	TrueExpenditure     string `csv:"True Expenditure"`
	AdjustedNetCalories string `csv:"Adjusted Net Calories"`
}

// WeeklyRow is one line of a weekly deficit summary.
type WeeklyRow struct {
	WeekStart         string `csv:"Week Start"`
	WeeklyDeficitKcal string `csv:"Weekly Deficit (kcal)"`
	EstimatedLossLbs  string `csv:"Estimated Weight Loss (lbs)"`
}

func MergedRows(days []energy.ReconciledDay) []MergedRow {
	rows := make([]MergedRow, 0, len(days))
	for _, d := range days {
		row := MergedRow{
			Date:                d.Date.Format(energy.DateLayout),
			EnergyKcal:          formatFloat(d.EnergyKcal),
			CaloriesBurned:      formatFloat(d.CaloriesBurned),
			TEF:                 formatFloat(d.TEF),
			TrueExpenditure:     formatFloat(d.TrueExpenditure),
			AdjustedNetCalories: formatFloat(d.AdjustedNetCalories),
		}
		if d.HasExercise {
			row.Day = d.Date.Format(energy.DateLayout)
		}
		rows = append(rows, row)
	}
	return rows
}

func WeeklyRows(weeks []energy.WeeklySummary) []WeeklyRow {
	rows := make([]WeeklyRow, 0, len(weeks))
	for _, w := range weeks {
		rows = append(rows, WeeklyRow{
			WeekStart:         w.WeekStart.Format(energy.DateLayout),
			WeeklyDeficitKcal: formatFloat(w.WeeklyDeficitKcal),
			EstimatedLossLbs:  formatFloat(w.EstimatedLossLbs),
		})
	}
	return rows
}

// WriteTable writes rows as a CSV file with a header line taken from the csv
// struct tags, creating the parent directory if needed.
func WriteTable[T any](path string, rows []T) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			err = multierr.Append(err, &WriteError{Path: path, Err: closeErr})
		}
	}()

	if err := gocsv.Marshal(rows, f); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	return nil
}

// formatFloat writes the shortest exact representation, an empty cell for NaN
// and 0 for -0.
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
