package tui

import (
	"fmt"
	"time"

	"github.com/berkeoz/liftlog/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewToday viewState = iota
	viewWorkout
	viewDiet
	viewHistory
	viewPlans
	viewSettings
)

var viewNames = []string{"Today", "Workout", "Diet", "History", "Plans", "Settings"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

type sessionStartedMsg struct{}

type sessionFinishedMsg struct {
	log *store.WorkoutLog
}

// sessionRecoveredMsg carries a loaded snapshot back to the update loop;
// the session machine is only mutated there, never from the command
// goroutine.
type sessionRecoveredMsg struct {
	snap *store.SessionSnapshot
	slot *store.DaySlot
}

type planSavedMsg struct {
	plan *store.Plan
}

type gotoWorkoutMsg struct{}

type exportDoneMsg struct {
	path string
}

type restExpiredMsg struct{}

// --- Helpers ---

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatSeconds(secs int64) string {
	return formatDuration(time.Duration(secs) * time.Second)
}

// formatClock renders a short countdown as mm:ss.
func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func errStatus(err error) statusMsg {
	return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
}
