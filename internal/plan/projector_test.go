package plan

import (
	"os"
	"testing"
	"time"

	"github.com/berkeoz/liftlog/internal/store"
)

func writeFile(path, data string) error {
	return os.WriteFile(path, []byte(data), 0o644)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func workoutPlan(start time.Time, weeks int) *store.Plan {
	p := &store.Plan{
		Kind:          store.KindWorkout,
		StartDate:     start,
		DurationWeeks: weeks,
	}
	for i := 0; i < 7; i++ {
		slot := store.DaySlot{Label: "Day", Exercises: []store.Exercise{{Name: "Squat", Sets: 3, Reps: 8}}}
		if i == 6 {
			slot = store.DaySlot{Label: "Rest", Rest: true}
		}
		p.Schedule = append(p.Schedule, slot)
	}
	return p
}

// ============================================================
// Active window
// ============================================================

func TestActiveWindow(t *testing.T) {
	// 2024-01-01 is a Monday.
	p := workoutPlan(date(2024, time.January, 1), 4)

	cases := []struct {
		day  time.Time
		want bool
	}{
		{date(2023, time.December, 31), false}, // day before start
		{date(2024, time.January, 1), true},    // first day
		{date(2024, time.January, 15), true},   // mid-window
		{date(2024, time.January, 28), true},   // day 27 of a 28-day window
		{date(2024, time.January, 29), false},  // day 28, window exclusive
		{date(2024, time.February, 10), false},
	}
	for _, c := range cases {
		if got := Active(p, c.day); got != c.want {
			t.Errorf("Active(%s) = %v, want %v", c.day.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestActiveIgnoresTimeOfDay(t *testing.T) {
	p := workoutPlan(time.Date(2024, time.January, 1, 23, 59, 0, 0, time.UTC), 1)

	// Last day of the window, almost a full day "later" than 7*24h after
	// the start instant. Midnight normalization must keep it active.
	last := time.Date(2024, time.January, 7, 23, 0, 0, 0, time.UTC)
	if !Active(p, last) {
		t.Error("last window day should be active regardless of time of day")
	}
	if Active(p, date(2024, time.January, 8)) {
		t.Error("day after window should not be active")
	}
}

func TestActiveNoStartDate(t *testing.T) {
	p := workoutPlan(time.Time{}, 4)
	if Active(p, date(2024, time.January, 1)) {
		t.Error("plan without start date must never be active")
	}
	if SlotFor(p, date(2024, time.January, 1)) != nil {
		t.Error("plan without start date must not resolve a slot")
	}
}

func TestActiveNilPlan(t *testing.T) {
	if Active(nil, date(2024, time.January, 1)) {
		t.Error("nil plan must not be active")
	}
	if SlotFor(nil, date(2024, time.January, 1)) != nil {
		t.Error("nil plan must not resolve a slot")
	}
}

func TestDietWindowFixedAtSevenDays(t *testing.T) {
	p := workoutPlan(date(2024, time.March, 4), 4)
	p.Kind = store.KindDiet

	if WindowDays(p) != 7 {
		t.Fatalf("diet window = %d, want 7", WindowDays(p))
	}
	if !Active(p, date(2024, time.March, 10)) {
		t.Error("day 6 should be active")
	}
	if Active(p, date(2024, time.March, 11)) {
		t.Error("day 7 should be outside the fixed one-week window")
	}
}

// ============================================================
// Slot resolution
// ============================================================

func TestSlotForMondayFirstIndexing(t *testing.T) {
	p := workoutPlan(date(2024, time.January, 1), 2)
	for i := range p.Schedule {
		p.Schedule[i].Label = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}[i]
		p.Schedule[i].Rest = false
		p.Schedule[i].Exercises = []store.Exercise{{Name: "X", Sets: 1, Reps: 1}}
	}

	// 2024-01-07 is a Sunday: Go's Weekday()==0, ours must map to index 6.
	slot := SlotFor(p, date(2024, time.January, 7))
	if slot == nil || slot.Label != "Sun" {
		t.Fatalf("Sunday resolved to %+v, want Sun slot", slot)
	}

	slot = SlotFor(p, date(2024, time.January, 10)) // Wednesday
	if slot == nil || slot.Label != "Wed" {
		t.Fatalf("Wednesday resolved to %+v, want Wed slot", slot)
	}
}

func TestSlotForDeterministic(t *testing.T) {
	p := workoutPlan(date(2024, time.January, 1), 4)
	d := date(2024, time.January, 9)
	first := SlotFor(p, d)
	for i := 0; i < 5; i++ {
		if got := SlotFor(p, d); got != first {
			t.Fatal("SlotFor should be deterministic for the same inputs")
		}
	}
}

func TestSlotForOutsideWindow(t *testing.T) {
	p := workoutPlan(date(2024, time.January, 1), 1)
	if SlotFor(p, date(2024, time.January, 8)) != nil {
		t.Error("slot resolved outside the plan window")
	}
}

func TestSlotForShortSchedule(t *testing.T) {
	p := workoutPlan(date(2024, time.January, 1), 1)
	p.Schedule = p.Schedule[:3] // malformed: fewer than 7 days

	if SlotFor(p, date(2024, time.January, 5)) != nil { // Friday, index 4
		t.Error("short schedule should yield nil, not panic")
	}
	if SlotFor(p, date(2024, time.January, 2)) == nil { // Tuesday, index 1
		t.Error("short schedule should still resolve covered days")
	}
}

// ============================================================
// Rest days
// ============================================================

func TestIsRestDay(t *testing.T) {
	cases := []struct {
		name string
		slot *store.DaySlot
		want bool
	}{
		{"nil slot", nil, true},
		{"explicit flag", &store.DaySlot{Label: "Leg day", Rest: true}, true},
		{"label marker", &store.DaySlot{Label: "Rest day"}, true},
		{"spanish marker", &store.DaySlot{Label: "Descanso"}, true},
		{"focus marker", &store.DaySlot{Label: "Day 4", Focus: "Off"}, true},
		{"no items", &store.DaySlot{Label: "Day 2"}, true},
		{"training day", &store.DaySlot{Label: "Push", Exercises: []store.Exercise{{Name: "Bench", Sets: 3, Reps: 8}}}, false},
		{"meal day", &store.DaySlot{Label: "Monday", Meals: []store.Meal{{Name: "Lunch", Calories: 600}}}, false},
	}
	for _, c := range cases {
		if got := IsRestDay(c.slot); got != c.want {
			t.Errorf("%s: IsRestDay = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestWeekdayIndex(t *testing.T) {
	// 2024-01-01 Monday through 2024-01-07 Sunday.
	for i := 0; i < 7; i++ {
		d := date(2024, time.January, 1+i)
		if got := WeekdayIndex(d); got != i {
			t.Errorf("WeekdayIndex(%s) = %d, want %d", d.Weekday(), got, i)
		}
	}
}

// ============================================================
// Templates and files
// ============================================================

func TestTemplatesWellFormed(t *testing.T) {
	for _, tpl := range Templates() {
		p := tpl.Make(date(2024, time.June, 3), 4)
		if len(p.Schedule) != 7 {
			t.Errorf("%s: schedule has %d days, want 7", tpl.Name, len(p.Schedule))
		}
		if p.Kind != tpl.Kind {
			t.Errorf("%s: kind %q, want %q", tpl.Name, p.Kind, tpl.Kind)
		}
		trainable := 0
		for i := range p.Schedule {
			if !IsRestDay(&p.Schedule[i]) {
				trainable++
			}
		}
		if trainable == 0 {
			t.Errorf("%s: no trainable days", tpl.Name)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/plan.json"
	data := `{
		"kind": "workout",
		"title": "Imported",
		"start_date": "2024-05-06",
		"duration_weeks": 6,
		"schedule": [
			{"label": "A", "exercises": [{"name": "Squat", "sets": 3, "reps": 8}]},
			{"label": "Rest", "rest": true},
			{"label": "B", "exercises": [{"name": "Bench", "sets": 3, "reps": 8}]},
			{"label": "Rest", "rest": true},
			{"label": "C", "exercises": [{"name": "Row", "sets": 3, "reps": 8}]},
			{"label": "Rest", "rest": true},
			{"label": "Rest", "rest": true}
		]
	}`
	if err := writeFile(path, data); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Title != "Imported" || p.DurationWeeks != 6 {
		t.Fatalf("unexpected plan: %+v", p)
	}
	if !p.StartDate.Equal(date(2024, time.May, 6)) {
		t.Fatalf("start date = %v", p.StartDate)
	}
	if len(p.Schedule) != 7 {
		t.Fatalf("schedule days = %d", len(p.Schedule))
	}
}

func TestLoadFileRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name string
		data string
	}{
		{"bad json", `{not json`},
		{"bad kind", `{"kind": "cardio", "schedule": []}`},
		{"short schedule", `{"kind": "workout", "schedule": [{"label": "A"}]}`},
	}
	for _, c := range cases {
		path := dir + "/" + c.name + ".json"
		if err := writeFile(path, c.data); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFile(path); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}

	if _, err := LoadFile(dir + "/missing.json"); err == nil {
		t.Error("missing file: expected error")
	}
}
