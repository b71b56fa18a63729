package energy

import (
	"sort"

	"github.com/2beens/cutwatch/pkg"
)

// WeeklyDeficits sums the daily deficit (TDEE minus adjusted net calories) of every
// analyzable day from cut.Start on, in 7 day buckets anchored at cut.Start.
// Surplus days count as negative deficit. Buckets without any logged day are
// skipped, not reported as zero.
func WeeklyDeficits(days []ReconciledDay, cut CutWindow, p Params) []WeeklySummary {
	start := Day(cut.Start)
	bucketDeficits := pkg.GroupBy(analyzableDays(days, start),
		func(d ReconciledDay) int { return daysBetween(start, d.Date) / 7 },
		func(acc float64, d ReconciledDay) float64 { return acc + (p.TDEE - d.AdjustedNetCalories) },
	)

	buckets := make([]int, 0, len(bucketDeficits))
	for b := range bucketDeficits {
		buckets = append(buckets, b)
	}
	sort.Ints(buckets)

	weeks := make([]WeeklySummary, 0, len(buckets))
	for _, b := range buckets {
		deficit := bucketDeficits[b]
		weeks = append(weeks, WeeklySummary{
			WeekStart:         start.AddDate(0, 0, 7*b),
			WeeklyDeficitKcal: deficit,
			EstimatedLossLbs:  deficit / p.KcalPerLb,
		})
	}

	return weeks
}

// RoundSummaries returns the display version of every summary.
func RoundSummaries(weeks []WeeklySummary) []WeeklySummary {
	rounded := make([]WeeklySummary, 0, len(weeks))
	for _, w := range weeks {
		rounded = append(rounded, w.Round())
	}
	return rounded
}

// CutStats totals the weekly summaries of a cut.
type CutStats struct {
	Weeks            int
	TotalDeficitKcal float64
	TotalLossLbs     float64
	AvgWeeklyLossLbs float64
	LargestWeek      WeeklySummary
}

func SummarizeCut(weeks []WeeklySummary) CutStats {
	stats := CutStats{Weeks: len(weeks)}
	if len(weeks) == 0 {
		return stats
	}

	stats.LargestWeek = weeks[0]
	for _, w := range weeks {
		stats.TotalDeficitKcal += w.WeeklyDeficitKcal
		stats.TotalLossLbs += w.EstimatedLossLbs
		if w.WeeklyDeficitKcal > stats.LargestWeek.WeeklyDeficitKcal {
			stats.LargestWeek = w
		}
	}
	stats.AvgWeeklyLossLbs = stats.TotalLossLbs / float64(len(weeks))

	return stats
}
