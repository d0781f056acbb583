package store

import "time"

// Plan kinds.
const (
	KindWorkout = "workout"
	KindDiet    = "diet"
)

// Plan is a weekly schedule anchored at a start date. The schedule always
// holds seven slots, Monday first. Workout plans run for DurationWeeks
// weeks; diet plans always cover a single week.
type Plan struct {
	ID            int64
	UserID        string
	Kind          string // workout, diet
	Title         string
	StartDate     time.Time
	DurationWeeks int
	Schedule      []DaySlot
	Active        bool
	CreatedAt     time.Time
}

// DaySlot is one weekday of a plan.
type DaySlot struct {
	Label     string     `json:"label"`
	Focus     string     `json:"focus,omitempty"`
	Rest      bool       `json:"rest,omitempty"`
	Exercises []Exercise `json:"exercises,omitempty"`
	Meals     []Meal     `json:"meals,omitempty"`
}

type Exercise struct {
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group,omitempty"`
	Sets        int    `json:"sets"`
	Reps        int    `json:"reps"`
	RestSeconds int    `json:"rest_seconds,omitempty"`
}

type Meal struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
	Time     string `json:"time,omitempty"`
}

// SessionSnapshot is the resumable state of an in-progress workout
// session. At most one exists per user; it is deleted when the session
// finishes.
type SessionSnapshot struct {
	DayIndex       int                     `json:"day_index"`
	ElapsedSeconds int                     `json:"elapsed_seconds"`
	CompletedSets  map[string]bool         `json:"completed_sets"`
	PerformedSets  map[string]PerformedSet `json:"performed_sets,omitempty"`
	StartedAt      time.Time               `json:"started_at"`
}

// PerformedSet records the actual weight and reps of one completed set.
type PerformedSet struct {
	WeightKg float64 `json:"weight_kg"`
	Reps     int     `json:"reps"`
}

// WorkoutLog is the immutable record of a finished session.
type WorkoutLog struct {
	ID                 int64
	UserID             string
	Date               time.Time
	Title              string
	ExercisesCompleted int
	TotalExercises     int
	DurationSeconds    int64
	Exercises          []ExerciseResult
	CreatedAt          time.Time
}

// ExerciseResult is the per-exercise slice of a WorkoutLog.
type ExerciseResult struct {
	Name        string         `json:"name"`
	MuscleGroup string         `json:"muscle_group,omitempty"`
	SetsPlanned int            `json:"sets_planned"`
	Reps        int            `json:"reps"`
	SetsDone    int            `json:"sets_done"`
	Performed   []PerformedSet `json:"performed,omitempty"`
}

type Setting struct {
	Key   string
	Value string
}

// LogFilter narrows ListLogs queries.
type LogFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}
