// Package session holds the in-memory state of one workout session and
// the rest countdown between sets. Both machines are driven by an
// external one-second tick; nothing here blocks or runs on its own.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/berkeoz/liftlog/internal/plan"
	"github.com/berkeoz/liftlog/internal/store"
)

var (
	// ErrRestDay rejects starting a session on a day with nothing to log.
	ErrRestDay = errors.New("session: day has no exercises")
	// ErrNoActiveSession rejects operations that need a running session.
	ErrNoActiveSession = errors.New("session: no active session")
	// ErrCorruptSnapshot rejects restoring from a snapshot that fails
	// structural validation.
	ErrCorruptSnapshot = errors.New("session: corrupt snapshot")
	// ErrSessionInProgress rejects starting over an existing session.
	// The caller must resume or discard it first, never overwrite.
	ErrSessionInProgress = errors.New("session: a session is already in progress")
)

// State of the session machine.
type State int

const (
	Idle State = iota
	Active
	Paused
	Suspended
	Finished
)

var stateNames = map[State]string{
	Idle:      "idle",
	Active:    "active",
	Paused:    "paused",
	Suspended: "suspended",
	Finished:  "finished",
}

func (s State) String() string { return stateNames[s] }

// SnapshotStore persists the resumable session state. Satisfied by
// *store.Store.
type SnapshotStore interface {
	SaveSnapshot(userID string, snap *store.SessionSnapshot) error
	ClearSnapshot(userID string) error
}

// Finisher appends the finished log and clears the snapshot as one unit.
// Satisfied by *store.Store.
type Finisher interface {
	FinishSession(userID string, l *store.WorkoutLog) error
}

// Machine tracks one in-progress workout session. It is written through
// to the snapshot store on every mutation, so a crash loses at most one
// second of elapsed time.
type Machine struct {
	userID string
	snaps  SnapshotStore

	state     State
	day       *store.DaySlot
	dayIndex  int
	elapsed   int
	completed map[string]bool
	performed map[string]store.PerformedSet
	startedAt time.Time

	now func() time.Time
}

func NewMachine(userID string, snaps SnapshotStore) *Machine {
	return &Machine{
		userID: userID,
		snaps:  snaps,
		state:  Idle,
		now:    time.Now,
	}
}

func (m *Machine) State() State          { return m.state }
func (m *Machine) Elapsed() int          { return m.elapsed }
func (m *Machine) DayIndex() int         { return m.dayIndex }
func (m *Machine) Day() *store.DaySlot   { return m.day }
func (m *Machine) StartedAt() time.Time  { return m.startedAt }
func (m *Machine) Done(ex, set int) bool { return m.completed[SetKey(ex, set)] }
func (m *Machine) CompletedCount() int   { return len(m.completed) }

// Performed returns the recorded weight/reps for a set, if any.
func (m *Machine) Performed(ex, set int) (store.PerformedSet, bool) {
	ps, ok := m.performed[SetKey(ex, set)]
	return ps, ok
}

// SetKey builds the "exerciseIndex-setIndex" key used by completion maps.
func SetKey(ex, set int) string {
	return fmt.Sprintf("%d-%d", ex, set)
}

// Start begins a fresh session for the given day. Rest days and days
// without exercises are refused; there is nothing to log.
func (m *Machine) Start(dayIndex int, day *store.DaySlot) error {
	if m.state == Active || m.state == Paused || m.state == Suspended {
		return ErrSessionInProgress
	}
	if day == nil || len(day.Exercises) == 0 || plan.IsRestDay(day) {
		return ErrRestDay
	}
	m.state = Active
	m.day = day
	m.dayIndex = dayIndex
	m.elapsed = 0
	m.completed = make(map[string]bool)
	m.performed = make(map[string]store.PerformedSet)
	m.startedAt = m.now()
	m.persist()
	return nil
}

// Tick advances elapsed time by one second. Only an Active session ticks.
func (m *Machine) Tick() {
	if m.state != Active {
		return
	}
	m.elapsed++
	m.persist()
}

// ToggleSet flips one set's completion flag. It reports whether the set
// just transitioned to completed during an active session, which is the
// trigger for the rest timer. Toggling twice restores the prior state.
func (m *Machine) ToggleSet(ex, set int) bool {
	if m.state != Active && m.state != Paused {
		return false
	}
	key := SetKey(ex, set)
	if m.completed[key] {
		delete(m.completed, key)
		delete(m.performed, key)
		m.persist()
		return false
	}
	m.completed[key] = true
	m.persist()
	return m.state == Active
}

// RecordSet marks a set completed and stores its actual weight and reps.
// Unlike ToggleSet it never un-completes.
func (m *Machine) RecordSet(ex, set int, weightKg float64, reps int) bool {
	if m.state != Active && m.state != Paused {
		return false
	}
	key := SetKey(ex, set)
	first := !m.completed[key]
	m.completed[key] = true
	m.performed[key] = store.PerformedSet{WeightKg: weightKg, Reps: reps}
	m.persist()
	return first && m.state == Active
}

// Pause stops the tick from accumulating. Legal only while Active.
func (m *Machine) Pause() error {
	if m.state != Active {
		return ErrNoActiveSession
	}
	m.state = Paused
	m.persist()
	return nil
}

// Resume returns a Paused or Suspended session to Active.
func (m *Machine) Resume() error {
	if m.state != Paused && m.state != Suspended {
		return ErrNoActiveSession
	}
	m.state = Active
	m.persist()
	return nil
}

// Suspend persists the snapshot and parks the session so the user can
// navigate away. The session stops ticking until explicitly resumed.
func (m *Machine) Suspend() error {
	if m.state != Active && m.state != Paused {
		return ErrNoActiveSession
	}
	m.state = Suspended
	m.persist()
	return nil
}

// Restore rebuilds a machine from a persisted snapshot. The machine comes
// back Suspended, never Active: a reloaded timer must not silently start
// ticking again. Stale completion keys pointing outside the day's
// exercises are dropped rather than rejected; the plan may have been
// regenerated underneath the snapshot.
func (m *Machine) Restore(snap *store.SessionSnapshot, day *store.DaySlot) error {
	if snap == nil || snap.ElapsedSeconds < 0 || snap.DayIndex < 0 || snap.DayIndex > 6 {
		return ErrCorruptSnapshot
	}
	if day == nil || len(day.Exercises) == 0 {
		return ErrCorruptSnapshot
	}
	m.state = Suspended
	m.day = day
	m.dayIndex = snap.DayIndex
	m.elapsed = snap.ElapsedSeconds
	m.startedAt = snap.StartedAt
	m.completed = make(map[string]bool)
	m.performed = make(map[string]store.PerformedSet)
	for key, done := range snap.CompletedSets {
		if done && validKey(key, day) {
			m.completed[key] = true
		}
	}
	for key, ps := range snap.PerformedSets {
		if m.completed[key] {
			m.performed[key] = ps
		}
	}
	return nil
}

// Finish closes the session, producing its immutable log. The log append
// and snapshot removal happen atomically in the finisher; on error the
// machine stays in its prior state.
func (m *Machine) Finish(title string, fin Finisher) (*store.WorkoutLog, error) {
	if m.state != Active && m.state != Paused {
		return nil, ErrNoActiveSession
	}

	l := m.buildLog(title)
	if err := fin.FinishSession(m.userID, l); err != nil {
		return nil, fmt.Errorf("finish session: %w", err)
	}

	m.state = Finished
	m.day = nil
	m.completed = nil
	m.performed = nil
	return l, nil
}

// Discard drops the session and its snapshot without producing a log.
func (m *Machine) Discard() {
	m.state = Idle
	m.day = nil
	m.completed = nil
	m.performed = nil
	m.elapsed = 0
	m.persist()
}

func (m *Machine) buildLog(title string) *store.WorkoutLog {
	l := &store.WorkoutLog{
		Date:            m.startedAt,
		Title:           title,
		TotalExercises:  len(m.day.Exercises),
		DurationSeconds: int64(m.elapsed),
	}
	if title == "" {
		l.Title = m.day.Label
	}

	for i, ex := range m.day.Exercises {
		res := store.ExerciseResult{
			Name:        ex.Name,
			MuscleGroup: ex.MuscleGroup,
			SetsPlanned: ex.Sets,
			Reps:        ex.Reps,
		}
		for key := range m.completed {
			var ei, si int
			if _, err := fmt.Sscanf(key, "%d-%d", &ei, &si); err != nil || ei != i {
				continue
			}
			// Ignore toggles past the planned set count, except for
			// exercises that never declared one.
			if ex.Sets > 0 && si >= ex.Sets {
				continue
			}
			res.SetsDone++
			if ps, ok := m.performed[key]; ok {
				res.Performed = append(res.Performed, ps)
			}
		}
		if res.SetsDone > 0 {
			l.ExercisesCompleted++
		}
		l.Exercises = append(l.Exercises, res)
	}
	return l
}

// persist writes through to the snapshot store. Persistence failures are
// swallowed: the in-memory session stays authoritative and the next
// mutation retries.
func (m *Machine) persist() {
	if m.snaps == nil {
		return
	}
	if m.state == Idle || m.state == Finished {
		m.snaps.ClearSnapshot(m.userID)
		return
	}
	m.snaps.SaveSnapshot(m.userID, &store.SessionSnapshot{
		DayIndex:       m.dayIndex,
		ElapsedSeconds: m.elapsed,
		CompletedSets:  m.completed,
		PerformedSets:  m.performed,
		StartedAt:      m.startedAt,
	})
}

func validKey(key string, day *store.DaySlot) bool {
	var ex, set int
	if _, err := fmt.Sscanf(key, "%d-%d", &ex, &set); err != nil {
		return false
	}
	if ex < 0 || ex >= len(day.Exercises) {
		return false
	}
	return set >= 0
}
