// Package plan maps a weekly plan onto concrete calendar dates: whether a
// plan is active on a date, which of its seven slots applies, and whether
// that slot is a rest day.
package plan

import (
	"strings"
	"time"

	"github.com/berkeoz/liftlog/internal/store"
)

// dietWindowDays fixes every diet plan to a single week regardless of its
// stored duration.
const dietWindowDays = 7

// Free-text labels that mark a day as a rest day when no explicit flag is
// set. Matched case-insensitively as substrings; "descanso" survives from
// plans generated in Spanish.
var restMarkers = []string{"rest", "off", "descanso"}

// WindowDays returns the length of the plan's active window in days.
func WindowDays(p *store.Plan) int {
	if p == nil {
		return 0
	}
	if p.Kind == store.KindDiet {
		return dietWindowDays
	}
	return p.DurationWeeks * 7
}

// Active reports whether date falls inside the plan's window. Both sides
// are normalized to midnight first, so intra-day drift and DST offsets
// cannot shift the day difference. A plan without a start date is never
// active.
func Active(p *store.Plan, date time.Time) bool {
	if p == nil || p.StartDate.IsZero() {
		return false
	}
	diff := daysBetween(p.StartDate, date)
	return diff >= 0 && diff < WindowDays(p)
}

// SlotFor resolves the plan's day slot for a calendar date, or nil when
// the plan is not active on that date or the schedule is malformed.
func SlotFor(p *store.Plan, date time.Time) *store.DaySlot {
	if !Active(p, date) {
		return nil
	}
	idx := WeekdayIndex(date)
	if idx >= len(p.Schedule) {
		return nil
	}
	return &p.Schedule[idx]
}

// WeekdayIndex returns the Monday-first weekday index of date
// (Monday = 0 … Sunday = 6).
func WeekdayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// IsRestDay reports whether a slot has nothing to train: an explicit rest
// flag, a rest marker in its label or focus, or no items at all.
func IsRestDay(slot *store.DaySlot) bool {
	if slot == nil {
		return true
	}
	if slot.Rest {
		return true
	}
	label := strings.ToLower(slot.Label + " " + slot.Focus)
	for _, marker := range restMarkers {
		if strings.Contains(label, marker) {
			return true
		}
	}
	return len(slot.Exercises) == 0 && len(slot.Meals) == 0
}

func daysBetween(start, end time.Time) int {
	s := atMidnight(start)
	e := atMidnight(end)
	return int(e.Sub(s).Hours() / 24)
}

func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
