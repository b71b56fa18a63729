package energy

import (
	"math"
	"sort"
	"time"

	"github.com/2beens/cutwatch/pkg"
)

// DailyBurns sums the exercise sessions of each day. Totals are absolute values,
// as some logs record burned calories as negative numbers.
func DailyBurns(sessions []ExerciseSession) map[time.Time]DailyBurn {
	sums := pkg.GroupBy(sessions,
		func(s ExerciseSession) time.Time { return Day(s.Day) },
		func(acc float64, s ExerciseSession) float64 { return acc + s.CaloriesBurned },
	)

	burns := make(map[time.Time]DailyBurn, len(sums))
	for day, total := range sums {
		burns[day] = DailyBurn{Day: day, TotalBurned: math.Abs(total)}
	}
	return burns
}

// Reconcile merges the food log days on or after p.FilterStart with the exercise
// burned on the same day. Every retained food log day yields exactly one row;
// days without exercise get 0 burned. Rows are ordered by date.
func Reconcile(intake []DailyIntake, sessions []ExerciseSession, p Params) []ReconciledDay {
	filterStart := Day(p.FilterStart)
	retained := make([]DailyIntake, 0, len(intake))
	for _, in := range intake {
		if !Day(in.Date).Before(filterStart) {
			retained = append(retained, in)
		}
	}

	days := pkg.LeftJoin(retained, DailyBurns(sessions),
		func(in DailyIntake) time.Time { return Day(in.Date) },
		func(in DailyIntake, burn DailyBurn, ok bool) ReconciledDay {
			return newReconciledDay(Day(in.Date), in.EnergyKcal, burn.TotalBurned, ok, p.TEFRate)
		},
	)

	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})

	return days
}

func newReconciledDay(date time.Time, energyKcal, burned float64, hasExercise bool, tefRate float64) ReconciledDay {
	tef := energyKcal * tefRate
	trueExpenditure := burned + tef
	return ReconciledDay{
		Date:                date,
		EnergyKcal:          energyKcal,
		HasExercise:         hasExercise,
		CaloriesBurned:      burned,
		TEF:                 tef,
		TrueExpenditure:     trueExpenditure,
		AdjustedNetCalories: energyKcal - trueExpenditure,
	}
}
