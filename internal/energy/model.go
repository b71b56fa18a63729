package energy

import (
	"math"
	"time"
)

// DateLayout is the calendar date layout used in every output table.
const DateLayout = "2006-01-02"

// DailyIntake is a single row of the food log.
type DailyIntake struct {
	Date time.Time
	// EnergyKcal is NaN when the log row has no energy value.
	EnergyKcal float64
}

// ExerciseSession is a single row of the exercise log.
type ExerciseSession struct {
	Day            time.Time
	CaloriesBurned float64
}

// DailyBurn is the total of all exercise sessions of one day.
type DailyBurn struct {
	Day         time.Time
	TotalBurned float64
}

// ReconciledDay is one food log day merged with the exercise burned that day.
type ReconciledDay struct {
	Date       time.Time
	EnergyKcal float64
	// HasExercise tells if at least one exercise session was logged on Date.
	HasExercise         bool
	CaloriesBurned      float64
	TEF                 float64
	TrueExpenditure     float64
	AdjustedNetCalories float64
}

// IsDeficit reports whether the day's adjusted net calories fall below tdee.
func (d ReconciledDay) IsDeficit(tdee float64) bool {
	return d.AdjustedNetCalories < tdee
}

// Analyzable is false for days without an energy value.
func (d ReconciledDay) Analyzable() bool {
	return !math.IsNaN(d.AdjustedNetCalories)
}

// CutWindow holds the first day of the first qualifying deficit window.
type CutWindow struct {
	Start time.Time
}

type WeeklySummary struct {
	WeekStart         time.Time
	WeeklyDeficitKcal float64
	EstimatedLossLbs  float64
}

// Round returns the display version of the summary: the deficit rounded to a whole
// kcal and the estimated loss to 2 decimals. Halves round to even.
func (s WeeklySummary) Round() WeeklySummary {
	return WeeklySummary{
		WeekStart:         s.WeekStart,
		WeeklyDeficitKcal: roundHalfEven(s.WeeklyDeficitKcal, 0),
		EstimatedLossLbs:  roundHalfEven(s.EstimatedLossLbs, 2),
	}
}

// roundHalfEven rounds v to places decimals. Values rounding to zero give +0,
// never -0.
func roundHalfEven(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	r := math.RoundToEven(v*scale) / scale
	if r == 0 {
		return 0
	}
	return r
}

// Params are the analysis constants.
type Params struct {
	// FilterStart drops every food log day before it.
	FilterStart time.Time
	// TDEE is the daily expenditure baseline a deficit day is measured against.
	TDEE float64
	// WindowDays is the number of consecutive logged days in a detection window.
	WindowDays int
	// DeficitThreshold is the minimum number of deficit days a window needs to qualify.
	DeficitThreshold int
	// KcalPerLb converts a kcal deficit into pounds of body mass.
	KcalPerLb float64
	// TEFRate is the share of intake spent on digesting it.
	TEFRate float64
}

func DefaultParams() Params {
	return Params{
		FilterStart:      time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		TDEE:             2900,
		WindowDays:       7,
		DeficitThreshold: 5,
		KcalPerLb:        3500,
		TEFRate:          0.10,
	}
}

// Day truncates t to its calendar day, in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the number of whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(math.Floor(Day(b).Sub(Day(a)).Hours() / 24))
}
