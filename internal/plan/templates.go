package plan

import (
	"time"

	"github.com/berkeoz/liftlog/internal/store"
)

// Template is a named starter plan the user can instantiate without an
// external generator.
type Template struct {
	Name string
	Kind string
	Make func(start time.Time, weeks int) *store.Plan
}

// Templates returns the built-in starter plans.
func Templates() []Template {
	return []Template{
		{Name: "Push / Pull / Legs", Kind: store.KindWorkout, Make: pushPullLegs},
		{Name: "Full Body 3x", Kind: store.KindWorkout, Make: fullBody},
		{Name: "Basic Cut Diet", Kind: store.KindDiet, Make: basicCutDiet},
	}
}

func pushPullLegs(start time.Time, weeks int) *store.Plan {
	return &store.Plan{
		Kind:          store.KindWorkout,
		Title:         "Push / Pull / Legs",
		StartDate:     start,
		DurationWeeks: weeks,
		Schedule: []store.DaySlot{
			{Label: "Push", Focus: "Chest, shoulders, triceps", Exercises: []store.Exercise{
				{Name: "Bench Press", MuscleGroup: "chest", Sets: 4, Reps: 8, RestSeconds: 120},
				{Name: "Overhead Press", MuscleGroup: "shoulders", Sets: 3, Reps: 10, RestSeconds: 90},
				{Name: "Incline Dumbbell Press", MuscleGroup: "chest", Sets: 3, Reps: 10, RestSeconds: 90},
				{Name: "Triceps Pushdown", MuscleGroup: "triceps", Sets: 3, Reps: 12, RestSeconds: 60},
			}},
			{Label: "Pull", Focus: "Back, biceps", Exercises: []store.Exercise{
				{Name: "Deadlift", MuscleGroup: "back", Sets: 3, Reps: 5, RestSeconds: 180},
				{Name: "Pull-Up", MuscleGroup: "back", Sets: 4, Reps: 8, RestSeconds: 120},
				{Name: "Barbell Row", MuscleGroup: "back", Sets: 3, Reps: 10, RestSeconds: 90},
				{Name: "Barbell Curl", MuscleGroup: "biceps", Sets: 3, Reps: 12, RestSeconds: 60},
			}},
			{Label: "Legs", Focus: "Quads, hamstrings, calves", Exercises: []store.Exercise{
				{Name: "Squat", MuscleGroup: "quads", Sets: 4, Reps: 8, RestSeconds: 180},
				{Name: "Romanian Deadlift", MuscleGroup: "hamstrings", Sets: 3, Reps: 10, RestSeconds: 120},
				{Name: "Leg Press", MuscleGroup: "quads", Sets: 3, Reps: 12, RestSeconds: 90},
				{Name: "Calf Raise", MuscleGroup: "calves", Sets: 4, Reps: 15, RestSeconds: 60},
			}},
			{Label: "Rest", Rest: true},
			{Label: "Push", Focus: "Chest, shoulders, triceps", Exercises: []store.Exercise{
				{Name: "Dumbbell Bench Press", MuscleGroup: "chest", Sets: 4, Reps: 10, RestSeconds: 90},
				{Name: "Lateral Raise", MuscleGroup: "shoulders", Sets: 4, Reps: 15, RestSeconds: 60},
				{Name: "Dips", MuscleGroup: "triceps", Sets: 3, Reps: 10, RestSeconds: 90},
			}},
			{Label: "Pull", Focus: "Back, biceps", Exercises: []store.Exercise{
				{Name: "Lat Pulldown", MuscleGroup: "back", Sets: 4, Reps: 10, RestSeconds: 90},
				{Name: "Seated Cable Row", MuscleGroup: "back", Sets: 3, Reps: 12, RestSeconds: 90},
				{Name: "Hammer Curl", MuscleGroup: "biceps", Sets: 3, Reps: 12, RestSeconds: 60},
			}},
			{Label: "Rest", Rest: true},
		},
	}
}

func fullBody(start time.Time, weeks int) *store.Plan {
	day := func() []store.Exercise {
		return []store.Exercise{
			{Name: "Squat", MuscleGroup: "quads", Sets: 3, Reps: 8, RestSeconds: 150},
			{Name: "Bench Press", MuscleGroup: "chest", Sets: 3, Reps: 8, RestSeconds: 120},
			{Name: "Barbell Row", MuscleGroup: "back", Sets: 3, Reps: 8, RestSeconds: 120},
			{Name: "Plank", MuscleGroup: "core", Sets: 3, Reps: 1, RestSeconds: 60},
		}
	}
	return &store.Plan{
		Kind:          store.KindWorkout,
		Title:         "Full Body 3x",
		StartDate:     start,
		DurationWeeks: weeks,
		Schedule: []store.DaySlot{
			{Label: "Full Body A", Exercises: day()},
			{Label: "Rest", Rest: true},
			{Label: "Full Body B", Exercises: day()},
			{Label: "Rest", Rest: true},
			{Label: "Full Body C", Exercises: day()},
			{Label: "Rest", Rest: true},
			{Label: "Rest", Rest: true},
		},
	}
}

func basicCutDiet(start time.Time, _ int) *store.Plan {
	day := func() []store.Meal {
		return []store.Meal{
			{Name: "Oatmeal with berries", Calories: 420, Time: "08:00"},
			{Name: "Chicken, rice and greens", Calories: 650, Time: "13:00"},
			{Name: "Greek yogurt and nuts", Calories: 280, Time: "17:00"},
			{Name: "Salmon with vegetables", Calories: 550, Time: "20:00"},
		}
	}
	schedule := make([]store.DaySlot, 7)
	labels := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for i := range schedule {
		schedule[i] = store.DaySlot{Label: labels[i], Meals: day()}
	}
	return &store.Plan{
		Kind:      store.KindDiet,
		Title:     "Basic Cut Diet",
		StartDate: start,
		Schedule:  schedule,
	}
}
