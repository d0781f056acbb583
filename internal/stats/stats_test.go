package stats

import (
	"testing"
	"time"

	"github.com/berkeoz/liftlog/internal/store"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 18, 30, 0, 0, time.Local)
}

func logOn(date time.Time, duration int64, exercises ...store.ExerciseResult) store.WorkoutLog {
	return store.WorkoutLog{
		Date:            date,
		Title:           "Session",
		DurationSeconds: duration,
		TotalExercises:  len(exercises),
		Exercises:       exercises,
	}
}

func result(group string, setsDone int, performed ...store.PerformedSet) store.ExerciseResult {
	return store.ExerciseResult{
		Name:        group,
		MuscleGroup: group,
		SetsDone:    setsDone,
		Performed:   performed,
	}
}

// ============================================================
// Monthly aggregates
// ============================================================

func TestForMonthFiltersByCalendarMonth(t *testing.T) {
	logs := []store.WorkoutLog{
		logOn(day(2024, time.March, 5), 1800, result("chest", 3)),
		logOn(day(2024, time.March, 28), 2400, result("back", 4)),
		logOn(day(2024, time.February, 28), 999, result("legs", 5)),
		logOn(day(2023, time.March, 5), 999, result("legs", 5)), // same month, wrong year
	}

	m := ForMonth(logs, 2024, time.March)
	if m.Sessions != 2 {
		t.Fatalf("sessions = %d, want 2", m.Sessions)
	}
	if m.TotalDuration != 4200 {
		t.Fatalf("duration = %d, want 4200", m.TotalDuration)
	}
	if m.TotalSets != 7 {
		t.Fatalf("sets = %d, want 7", m.TotalSets)
	}
	if m.AvgSets != 4 { // 7/2 rounded
		t.Fatalf("avg sets = %d, want 4", m.AvgSets)
	}
}

func TestForMonthEmpty(t *testing.T) {
	m := ForMonth(nil, 2024, time.March)
	if m.Sessions != 0 || m.AvgSets != 0 || m.VolumeKg != 0 {
		t.Fatalf("empty month should be all zeros: %+v", m)
	}
	if len(m.MuscleGroups) != 0 {
		t.Fatal("empty month has no muscle groups")
	}
}

func TestForMonthVolume(t *testing.T) {
	logs := []store.WorkoutLog{
		logOn(day(2024, time.March, 5), 1800,
			result("chest", 2,
				store.PerformedSet{WeightKg: 100, Reps: 5},
				store.PerformedSet{WeightKg: 80, Reps: 10}),
		),
		logOn(day(2024, time.March, 7), 1800,
			result("back", 1, store.PerformedSet{WeightKg: 60, Reps: 12}),
		),
	}

	m := ForMonth(logs, 2024, time.March)
	if m.VolumeKg != 100*5+80*10+60*12 {
		t.Fatalf("volume = %v", m.VolumeKg)
	}
	if m.VolumeByDay[5] != 1300 || m.VolumeByDay[7] != 720 {
		t.Fatalf("per-day volume = %v", m.VolumeByDay)
	}
	if _, ok := m.VolumeByDay[6]; ok {
		t.Fatal("days without volume must not appear")
	}
}

func TestForMonthTopMuscleGroups(t *testing.T) {
	mk := func(groups ...string) store.WorkoutLog {
		var exs []store.ExerciseResult
		for _, g := range groups {
			exs = append(exs, result(g, 1))
		}
		return logOn(day(2024, time.March, 10), 60, exs...)
	}

	logs := []store.WorkoutLog{
		mk("chest", "chest", "chest"),
		mk("back", "back", "legs", "legs", "legs"),
		mk("shoulders", "biceps", "triceps", "calves"),
	}

	m := ForMonth(logs, 2024, time.March)
	if len(m.MuscleGroups) != 5 {
		t.Fatalf("kept %d groups, want top 5", len(m.MuscleGroups))
	}
	if m.MuscleGroups[0].Group != "chest" || m.MuscleGroups[0].Count != 3 {
		t.Fatalf("top group = %+v", m.MuscleGroups[0])
	}
	if m.MuscleGroups[1].Group != "legs" || m.MuscleGroups[1].Count != 3 {
		t.Fatal("chest must rank before legs: both 3, chest encountered first")
	}
	// Among the remaining ties, first-encounter order decides.
	if m.MuscleGroups[2].Group != "back" || m.MuscleGroups[3].Group != "shoulders" || m.MuscleGroups[4].Group != "biceps" {
		t.Fatalf("tie order wrong: %+v", m.MuscleGroups)
	}
}

func TestForMonthSkipsBlankGroups(t *testing.T) {
	logs := []store.WorkoutLog{
		logOn(day(2024, time.March, 1), 60, result("", 2)),
	}
	m := ForMonth(logs, 2024, time.March)
	if len(m.MuscleGroups) != 0 {
		t.Fatalf("blank groups should be ignored: %+v", m.MuscleGroups)
	}
	if m.TotalSets != 2 {
		t.Fatal("sets still count")
	}
}

// ============================================================
// Streak
// ============================================================

func TestStreak(t *testing.T) {
	today := day(2024, time.March, 10)

	cases := []struct {
		name string
		logs []store.WorkoutLog
		want int
	}{
		{"no logs", nil, 0},
		{"today only", []store.WorkoutLog{logOn(day(2024, time.March, 10), 60)}, 1},
		{"today and yesterday", []store.WorkoutLog{
			logOn(day(2024, time.March, 10), 60),
			logOn(day(2024, time.March, 9), 60),
		}, 2},
		{"ends yesterday", []store.WorkoutLog{
			logOn(day(2024, time.March, 9), 60),
			logOn(day(2024, time.March, 8), 60),
			logOn(day(2024, time.March, 7), 60),
		}, 3},
		{"newest three days ago", []store.WorkoutLog{
			logOn(day(2024, time.March, 7), 60),
			logOn(day(2024, time.March, 6), 60),
		}, 0},
		{"gap breaks the chain", []store.WorkoutLog{
			logOn(day(2024, time.March, 10), 60),
			logOn(day(2024, time.March, 9), 60),
			logOn(day(2024, time.March, 6), 60),
		}, 2},
		{"two sessions same day count once", []store.WorkoutLog{
			logOn(day(2024, time.March, 10), 60),
			logOn(time.Date(2024, time.March, 10, 7, 0, 0, 0, time.Local), 60),
			logOn(day(2024, time.March, 9), 60),
		}, 2},
		{"future log", []store.WorkoutLog{logOn(day(2024, time.March, 12), 60)}, 0},
	}
	for _, c := range cases {
		if got := Streak(c.logs, today); got != c.want {
			t.Errorf("%s: streak = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestStreakUnsortedInput(t *testing.T) {
	today := day(2024, time.March, 10)
	logs := []store.WorkoutLog{
		logOn(day(2024, time.March, 8), 60),
		logOn(day(2024, time.March, 10), 60),
		logOn(day(2024, time.March, 9), 60),
	}
	if got := Streak(logs, today); got != 3 {
		t.Fatalf("streak = %d, want 3 regardless of input order", got)
	}
}

// inZone pins the process-local zone for a test. Stored timestamps are
// UTC; aggregation must still bucket them by local wall-clock day.
func inZone(t *testing.T, offsetHours int) {
	t.Helper()
	old := time.Local
	time.Local = time.FixedZone("fixed", offsetHours*3600)
	t.Cleanup(func() { time.Local = old })
}

func TestStreakCountsLocalDays(t *testing.T) {
	inZone(t, 12)

	// 20:00 yesterday and 00:30 today in local time. Both instants fall
	// on the same UTC day, but they are two distinct local days.
	logs := []store.WorkoutLog{
		logOn(time.Date(2024, time.March, 9, 8, 0, 0, 0, time.UTC), 60),
		logOn(time.Date(2024, time.March, 9, 12, 30, 0, 0, time.UTC), 60),
	}
	today := time.Date(2024, time.March, 9, 22, 0, 0, 0, time.UTC) // March 10 locally

	if got := Streak(logs, today); got != 2 {
		t.Fatalf("streak = %d, want 2 distinct local days", got)
	}
}

func TestForMonthUsesLocalDays(t *testing.T) {
	inZone(t, 12)

	// Feb 29 13:00 UTC is already March 1 in local time.
	logs := []store.WorkoutLog{
		logOn(time.Date(2024, time.February, 29, 13, 0, 0, 0, time.UTC), 1800,
			result("chest", 1, store.PerformedSet{WeightKg: 50, Reps: 10})),
	}

	if m := ForMonth(logs, 2024, time.February); m.Sessions != 0 {
		t.Fatalf("February sessions = %d, want 0", m.Sessions)
	}
	m := ForMonth(logs, 2024, time.March)
	if m.Sessions != 1 {
		t.Fatalf("March sessions = %d, want 1", m.Sessions)
	}
	if m.VolumeByDay[1] != 500 {
		t.Fatalf("volume by day = %v, want 500 on day 1", m.VolumeByDay)
	}
}

// ============================================================
// Diet progress
// ============================================================

func TestMealProgress(t *testing.T) {
	slot := &store.DaySlot{
		Label: "Monday",
		Meals: []store.Meal{
			{Name: "Breakfast", Calories: 400},
			{Name: "Lunch", Calories: 700},
			{Name: "Dinner", Calories: 500},
		},
	}
	done := map[string]bool{
		"2-0": true,
		"2-2": true,
		"5-1": true, // different day, stale
	}

	p := MealProgress(slot, 2, done)
	if p.CompletedMeals != 2 || p.TotalMeals != 3 {
		t.Fatalf("meals %d/%d, want 2/3", p.CompletedMeals, p.TotalMeals)
	}
	if p.CompletedCalories != 900 || p.TotalCalories != 1600 {
		t.Fatalf("calories %d/%d", p.CompletedCalories, p.TotalCalories)
	}
	if p.Percent != 56 { // 900/1600 rounded
		t.Fatalf("percent = %d, want 56", p.Percent)
	}
}

func TestMealProgressEmptySlot(t *testing.T) {
	p := MealProgress(&store.DaySlot{Label: "Rest"}, 0, map[string]bool{"0-0": true})
	if p.Percent != 0 || p.TotalMeals != 0 {
		t.Fatalf("empty slot should be 0%%: %+v", p)
	}

	p = MealProgress(nil, 0, nil)
	if p.Percent != 0 {
		t.Fatal("nil slot should be 0%")
	}
}

func TestMealProgressCalorieFreeMeals(t *testing.T) {
	slot := &store.DaySlot{
		Meals: []store.Meal{{Name: "Water"}, {Name: "Coffee"}},
	}
	p := MealProgress(slot, 0, map[string]bool{"0-0": true})
	if p.Percent != 50 {
		t.Fatalf("percent = %d, want meal-count fallback of 50", p.Percent)
	}
}
