package pipeline_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var firstLogDay = time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC)

// writeLogs writes a food log from 2025-03-30 to 2025-04-20. Days before 2025-04-04
// are surplus days (3500 kcal), the rest are deficit days (2000 kcal).
// 2025-04-10 has two exercise sessions burning 600 kcal in total.
func writeLogs(t *testing.T, dir string, allSurplus bool) (string, string) {
	t.Helper()

	intake := &strings.Builder{}
	intake.WriteString("Date,Energy (kcal),Protein (g)\n")
	for d := firstLogDay; !d.After(time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC)); d = d.AddDate(0, 0, 1) {
		kcal := 2000
		if allSurplus || d.Before(time.Date(2025, 4, 4, 0, 0, 0, 0, time.UTC)) {
			kcal = 3500
		}
		fmt.Fprintf(intake, "%s,%d,150\n", d.Format("2006-01-02"), kcal)
	}

	exercises := "Day,Exercise,Calories Burned\n" +
		"2025-03-30,Running,-1000\n" +
		"2025-04-10,Running,-500\n" +
		"2025-04-10,Rowing,-100\n"

	intakePath := filepath.Join(dir, "dailysummary.csv")
	exercisePath := filepath.Join(dir, "exercises.csv")
	require.NoError(t, os.WriteFile(intakePath, []byte(intake.String()), 0o644))
	require.NoError(t, os.WriteFile(exercisePath, []byte(exercises), 0o644))

	return intakePath, exercisePath
}
