// Package stats derives aggregates from workout logs and meal completion
// maps. Every function is pure and total: malformed or empty input yields
// zeroed results, never an error.
package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/berkeoz/liftlog/internal/store"
)

// Monthly summarizes one calendar month of workout logs.
type Monthly struct {
	Sessions      int
	TotalDuration int64 // seconds
	TotalSets     int
	AvgSets       int // per session, rounded; 0 when no sessions
	VolumeKg      float64
	VolumeByDay   map[int]float64 // day of month -> kg, only days with volume
	MuscleGroups  []GroupCount    // top 5 by count
}

// GroupCount is one muscle group's occurrence tally.
type GroupCount struct {
	Group string
	Count int
}

// DietProgress reports how much of a day's meals were checked off.
type DietProgress struct {
	CompletedCalories int
	TotalCalories     int
	CompletedMeals    int
	TotalMeals        int
	Percent           int
}

// ForMonth filters logs to the given local calendar month and aggregates
// them.
func ForMonth(logs []store.WorkoutLog, year int, month time.Month) Monthly {
	m := Monthly{VolumeByDay: make(map[int]float64)}

	groupCounts := make(map[string]int)
	var groupOrder []string

	for _, l := range logs {
		d := l.Date.Local()
		if d.Year() != year || d.Month() != month {
			continue
		}
		m.Sessions++
		m.TotalDuration += l.DurationSeconds

		day := d.Day()
		for _, ex := range l.Exercises {
			m.TotalSets += ex.SetsDone
			for _, ps := range ex.Performed {
				vol := ps.WeightKg * float64(ps.Reps)
				m.VolumeKg += vol
				m.VolumeByDay[day] += vol
			}
			if ex.MuscleGroup != "" {
				if _, seen := groupCounts[ex.MuscleGroup]; !seen {
					groupOrder = append(groupOrder, ex.MuscleGroup)
				}
				groupCounts[ex.MuscleGroup]++
			}
		}
	}

	if m.Sessions > 0 {
		m.AvgSets = int(math.Round(float64(m.TotalSets) / float64(m.Sessions)))
	}
	m.MuscleGroups = topGroups(groupCounts, groupOrder, 5)
	return m
}

// topGroups sorts by count descending, breaking ties by first-encountered
// order, and keeps the first n.
func topGroups(counts map[string]int, order []string, n int) []GroupCount {
	ranked := make([]GroupCount, 0, len(order))
	for _, g := range order {
		ranked = append(ranked, GroupCount{Group: g, Count: counts[g]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Streak counts consecutive calendar days with at least one log, ending
// today or yesterday. A most recent log older than yesterday means the
// streak is broken: 0.
func Streak(logs []store.WorkoutLog, today time.Time) int {
	if len(logs) == 0 {
		return 0
	}

	seen := make(map[string]bool)
	var days []time.Time
	for _, l := range logs {
		d := dateOnly(l.Date)
		key := d.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	gap := daysApart(days[0], dateOnly(today))
	if gap > 1 || gap < 0 {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if daysApart(days[i], days[i-1]) != 1 {
			break
		}
		streak++
	}
	return streak
}

// MealProgress tallies the checked meals of one day slot against its
// completion map, keyed "dayIndex-mealIndex". An empty slot is 0%, never
// a division error. Keys outside the slot are stale and ignored.
func MealProgress(slot *store.DaySlot, dayIndex int, done map[string]bool) DietProgress {
	p := DietProgress{}
	if slot == nil {
		return p
	}
	p.TotalMeals = len(slot.Meals)
	for i, meal := range slot.Meals {
		p.TotalCalories += meal.Calories
		if done[fmt.Sprintf("%d-%d", dayIndex, i)] {
			p.CompletedMeals++
			p.CompletedCalories += meal.Calories
		}
	}
	switch {
	case p.TotalCalories > 0:
		p.Percent = int(math.Round(float64(p.CompletedCalories) / float64(p.TotalCalories) * 100))
	case p.TotalMeals > 0:
		// Calorie-free meals still count toward completion.
		p.Percent = int(math.Round(float64(p.CompletedMeals) / float64(p.TotalMeals) * 100))
	}
	return p
}

// dateOnly reduces a timestamp to its local calendar day, re-expressed at
// UTC midnight so day arithmetic stays an exact multiple of 24h even
// across DST-shortened days.
func dateOnly(t time.Time) time.Time {
	lt := t.Local()
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.UTC)
}

func daysApart(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
