package report

import (
	"fmt"
	"io"
	"time"

	"github.com/2beens/cutwatch/internal/energy"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Summary is what a run reports to the operator.
type Summary struct {
	MergedDays  int
	DeficitDays int
	CutFound    bool
	CutStart    time.Time
	Weeks       []energy.WeeklySummary
	Stats       energy.CutStats
	Outputs     []string
}

// PrintSummary writes a human readable report of a run to w.
// Colors are only used when w is a terminal.
func PrintSummary(w io.Writer, s Summary) error {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	warn := r.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	muted := r.NewStyle().Foreground(lipgloss.Color("245"))

	lines := []string{
		title.Render("Energy balance"),
		fmt.Sprintf("merged days: %d, deficit days: %d", s.MergedDays, s.DeficitDays),
	}

	if !s.CutFound {
		lines = append(lines, warn.Render("could not detect a consistent cutting period"))
	} else {
		lines = append(lines,
			title.Render(fmt.Sprintf("cut likely began on: %s", s.CutStart.Format(energy.DateLayout))),
			weeklyTable(r, s.Weeks).Render(),
			fmt.Sprintf(
				"weeks: %d, total deficit: %.0f kcal, estimated loss: %.2f lbs (%.2f lbs/week)",
				s.Stats.Weeks, s.Stats.TotalDeficitKcal, s.Stats.TotalLossLbs, s.Stats.AvgWeeklyLossLbs,
			),
			fmt.Sprintf(
				"largest week: %s (%.0f kcal, %.2f lbs)",
				s.Stats.LargestWeek.WeekStart.Format(energy.DateLayout),
				s.Stats.LargestWeek.WeeklyDeficitKcal, s.Stats.LargestWeek.EstimatedLossLbs,
			),
		)
	}

	for _, out := range s.Outputs {
		lines = append(lines, muted.Render("saved: "+out))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func weeklyTable(r *lipgloss.Renderer, weeks []energy.WeeklySummary) *table.Table {
	header := r.NewStyle().Bold(true).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Week Start", "Weekly Deficit (kcal)", "Estimated Weight Loss (lbs)").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	for _, row := range WeeklyRows(weeks) {
		t.Row(row.WeekStart, row.WeeklyDeficitKcal, row.EstimatedLossLbs)
	}

	return t
}
