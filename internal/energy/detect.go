package energy

import "time"

// analyzableDays keeps the days on or after from that have a known energy value.
func analyzableDays(days []ReconciledDay, from time.Time) []ReconciledDay {
	from = Day(from)
	kept := make([]ReconciledDay, 0, len(days))
	for _, d := range days {
		if d.Analyzable() && !d.Date.Before(from) {
			kept = append(kept, d)
		}
	}
	return kept
}

// DetectCut finds the first window of p.WindowDays consecutive rows that holds at
// least p.DeficitThreshold deficit days, and returns the date of its first row.
//
// The window spans logged rows, not calendar days: with gaps in the food log a
// window covers more than p.WindowDays calendar days.
// ErrNoQualifyingWindow is returned when no window qualifies.
func DetectCut(days []ReconciledDay, p Params) (CutWindow, error) {
	rows := analyzableDays(days, p.FilterStart)

	window := p.WindowDays
	if window <= 0 || len(rows) < window {
		return CutWindow{}, ErrNoQualifyingWindow
	}

	deficitDays := 0
	for i, d := range rows {
		if d.IsDeficit(p.TDEE) {
			deficitDays++
		}
		if i >= window && rows[i-window].IsDeficit(p.TDEE) {
			deficitDays--
		}
		if i < window-1 {
			continue
		}
		if deficitDays >= p.DeficitThreshold {
			return CutWindow{Start: rows[i-window+1].Date}, nil
		}
	}

	return CutWindow{}, ErrNoQualifyingWindow
}

// DeficitDays counts the analyzable days below p.TDEE.
func DeficitDays(days []ReconciledDay, p Params) int {
	count := 0
	for _, d := range analyzableDays(days, p.FilterStart) {
		if d.IsDeficit(p.TDEE) {
			count++
		}
	}
	return count
}
