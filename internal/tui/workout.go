package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/berkeoz/liftlog/internal/plan"
	"github.com/berkeoz/liftlog/internal/session"
	"github.com/berkeoz/liftlog/internal/store"
)

// workoutModel runs the live training session: the session machine, the
// rest countdown, and per-set navigation.
type workoutModel struct {
	store  *store.Store
	userID string
	width  int
	height int

	machine *session.Machine
	rest    *session.RestTimer

	cursorEx  int
	cursorSet int

	formActive bool
	form       *huh.Form
	weightVal  *string
	repsVal    *string
}

func newWorkoutModel(s *store.Store, userID string) workoutModel {
	wv, rv := "", ""
	m := workoutModel{
		store:     s,
		userID:    userID,
		machine:   session.NewMachine(userID, s),
		rest:      session.NewRestTimer(),
		weightVal: &wv,
		repsVal:   &rv,
	}
	m.rest.SetDuration(s.GetIntSetting("rest_duration", session.DefaultRestSeconds))
	return m
}

func (w *workoutModel) setSize(width, height int) {
	w.width = width
	w.height = height
}

func (w workoutModel) active() bool {
	st := w.machine.State()
	return st == session.Active || st == session.Paused || st == session.Suspended
}

// recover looks for a session snapshot left by a previous run. It only
// loads; the resulting sessionRecoveredMsg is applied to the machine in
// update, on the program loop.
func (w workoutModel) recover() tea.Cmd {
	return func() tea.Msg {
		snap, err := w.store.LoadSnapshot(w.userID)
		if err != nil || snap == nil {
			return nil
		}
		p, err := w.store.GetActivePlan(w.userID, store.KindWorkout)
		if err != nil || p == nil || snap.DayIndex >= len(p.Schedule) {
			w.store.ClearSnapshot(w.userID)
			return nil
		}
		return sessionRecoveredMsg{snap: snap, slot: &p.Schedule[snap.DayIndex]}
	}
}

func (w workoutModel) update(msg tea.Msg) (workoutModel, tea.Cmd) {
	if w.formActive && w.form != nil {
		return w.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tickMsg:
		w.machine.Tick()
		if w.rest.Tick() {
			return w, func() tea.Msg { return restExpiredMsg{} }
		}
		return w, nil

	case sessionRecoveredMsg:
		if err := w.machine.Restore(msg.snap, msg.slot); err != nil {
			// Corrupt snapshot: drop it and start clean.
			w.store.ClearSnapshot(w.userID)
			return w, nil
		}
		return w, func() tea.Msg {
			return statusMsg{text: "Suspended session found — p resumes, x discards"}
		}

	case tea.KeyMsg:
		return w.updateKeys(msg)
	}
	return w, nil
}

func (w workoutModel) updateKeys(msg tea.KeyMsg) (workoutModel, tea.Cmd) {
	st := w.machine.State()

	switch {
	case key.Matches(msg, keys.Start):
		if st == session.Idle || st == session.Finished {
			return w.startToday()
		}

	case key.Matches(msg, keys.Pause):
		switch st {
		case session.Active:
			w.machine.Pause()
		case session.Paused, session.Suspended:
			w.machine.Resume()
		}
		return w, nil

	case key.Matches(msg, keys.Suspend):
		switch st {
		case session.Active, session.Paused:
			w.machine.Suspend()
			return w, func() tea.Msg { return statusMsg{text: "Session suspended"} }
		case session.Suspended:
			w.machine.Discard()
			return w, func() tea.Msg { return statusMsg{text: "Session discarded"} }
		}

	case key.Matches(msg, keys.Finish):
		return w.finish()

	case key.Matches(msg, keys.Toggle):
		if st == session.Active || st == session.Paused {
			if w.machine.ToggleSet(w.cursorEx, w.cursorSet) {
				w.rest.Start()
			}
			w.advanceCursor()
		}
		return w, nil

	case key.Matches(msg, keys.Weight):
		if st == session.Active || st == session.Paused {
			return w.showWeightForm()
		}

	case key.Matches(msg, keys.Skip):
		w.rest.Skip()
		return w, nil

	case key.Matches(msg, keys.Down):
		w.moveCursor(1)
		return w, nil

	case key.Matches(msg, keys.Up):
		w.moveCursor(-1)
		return w, nil
	}
	return w, nil
}

func (w workoutModel) startToday() (workoutModel, tea.Cmd) {
	p, err := w.store.GetActivePlan(w.userID, store.KindWorkout)
	if err != nil {
		return w, func() tea.Msg { return errStatus(err) }
	}
	now := time.Now()
	if p == nil || !plan.Active(p, now) {
		return w, func() tea.Msg {
			return statusMsg{text: "No active workout plan for today. Press 5 to create one.", isError: true}
		}
	}
	slot := plan.SlotFor(p, now)
	if err := w.machine.Start(plan.WeekdayIndex(now), slot); err != nil {
		if errors.Is(err, session.ErrRestDay) {
			return w, func() tea.Msg {
				return statusMsg{text: "Today is a rest day — nothing to log", isError: true}
			}
		}
		return w, func() tea.Msg { return errStatus(err) }
	}
	w.cursorEx, w.cursorSet = 0, 0
	return w, func() tea.Msg { return sessionStartedMsg{} }
}

func (w workoutModel) finish() (workoutModel, tea.Cmd) {
	log, err := w.machine.Finish("", w.store)
	if err != nil {
		if errors.Is(err, session.ErrNoActiveSession) {
			return w, func() tea.Msg {
				return statusMsg{text: "No session to finish", isError: true}
			}
		}
		return w, func() tea.Msg { return errStatus(err) }
	}
	w.rest.Skip()
	return w, func() tea.Msg { return sessionFinishedMsg{log: log} }
}

// moveCursor walks the flattened (exercise, set) grid.
func (w *workoutModel) moveCursor(dir int) {
	day := w.machine.Day()
	if day == nil {
		return
	}
	w.cursorSet += dir
	for {
		if w.cursorSet < 0 {
			if w.cursorEx == 0 {
				w.cursorSet = 0
				return
			}
			w.cursorEx--
			w.cursorSet = setCount(day.Exercises[w.cursorEx]) - 1
			continue
		}
		if w.cursorSet >= setCount(day.Exercises[w.cursorEx]) {
			if w.cursorEx >= len(day.Exercises)-1 {
				w.cursorSet = setCount(day.Exercises[w.cursorEx]) - 1
				return
			}
			w.cursorEx++
			w.cursorSet = 0
			continue
		}
		return
	}
}

func (w *workoutModel) advanceCursor() {
	w.moveCursor(1)
}

func setCount(ex store.Exercise) int {
	if ex.Sets < 1 {
		return 1
	}
	return ex.Sets
}

// --- Weight form ---

func (w workoutModel) showWeightForm() (workoutModel, tea.Cmd) {
	*w.weightVal = ""
	day := w.machine.Day()
	reps := ""
	if day != nil && w.cursorEx < len(day.Exercises) {
		reps = strconv.Itoa(day.Exercises[w.cursorEx].Reps)
	}
	*w.repsVal = reps

	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Weight (kg)").Value(w.weightVal),
			huh.NewInput().Title("Reps").Value(w.repsVal),
		).Title("Log set"),
	).WithShowHelp(true).WithShowErrors(true)
	w.formActive = true
	return w, w.form.Init()
}

func (w workoutModel) updateForm(msg tea.Msg) (workoutModel, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, keys.Back) {
		w.formActive = false
		w.form = nil
		return w, nil
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		w.formActive = false
		weight, _ := strconv.ParseFloat(strings.TrimSpace(*w.weightVal), 64)
		reps, _ := strconv.Atoi(strings.TrimSpace(*w.repsVal))
		if w.machine.RecordSet(w.cursorEx, w.cursorSet, weight, reps) {
			w.rest.Start()
		}
		w.advanceCursor()
		w.form = nil
		return w, nil
	}
	return w, cmd
}

// --- View ---

func (w workoutModel) view() string {
	width := w.width - 4
	if width < 20 {
		return "Terminal too small"
	}

	if w.formActive && w.form != nil {
		return activePanelStyle.Width(width).Render(w.form.View())
	}

	st := w.machine.State()
	if st == session.Idle || st == session.Finished {
		return w.viewIdle(width)
	}
	return w.viewSession(width, st)
}

func (w workoutModel) viewIdle(width int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		timerStyle.Width(width-6).Render("00:00:00"),
		mutedStyle.Render("No session running"),
		"",
		mutedStyle.Render("Press s to start today's workout"),
	)
	return panelStyle.Width(width).Render(content)
}

func (w workoutModel) viewSession(width int, st session.State) string {
	day := w.machine.Day()

	elapsed := formatSeconds(int64(w.machine.Elapsed()))
	var timerLine, indicator string
	switch st {
	case session.Active:
		timerLine = timerRunningStyle.Width(width - 6).Render(elapsed)
		indicator = successStyle.Render("●  ACTIVE")
	case session.Paused:
		timerLine = timerPausedStyle.Width(width - 6).Render(elapsed)
		indicator = warningStyle.Render("⏸  PAUSED")
	case session.Suspended:
		timerLine = timerPausedStyle.Width(width - 6).Render(elapsed)
		indicator = warningStyle.Render("⏸  SUSPENDED — p resumes, x discards")
	}

	title := titleStyle.Render(day.Label)
	if day.Focus != "" {
		title += mutedStyle.Render("  " + day.Focus)
	}

	var rows []string
	rows = append(rows, title, "")
	for i, ex := range day.Exercises {
		rows = append(rows, w.renderExercise(i, ex))
	}

	restLine := ""
	if w.rest.Counting() {
		restLine = accentStyle.Render(fmt.Sprintf("Rest %s", formatClock(w.rest.Remaining()))) +
			mutedStyle.Render("  r: skip")
	}

	controls := mutedStyle.Render("space: toggle set  w: log weight  p: pause  x: suspend  f: finish")

	content := lipgloss.JoinVertical(lipgloss.Left,
		timerLine,
		lipgloss.NewStyle().Width(width-6).Align(lipgloss.Center).Render(indicator),
		"",
		strings.Join(rows, "\n"),
		"",
		restLine,
		controls,
	)
	return activePanelStyle.Width(width).Render(content)
}

func (w workoutModel) renderExercise(i int, ex store.Exercise) string {
	var boxes []string
	for j := 0; j < setCount(ex); j++ {
		box := "○"
		if w.machine.Done(i, j) {
			box = "●"
		}
		style := normalItemStyle
		if i == w.cursorEx && j == w.cursorSet {
			style = selectedItemStyle
		}
		if _, ok := w.machine.Performed(i, j); ok {
			style = style.Foreground(colorSuccess)
		}
		boxes = append(boxes, style.Render(box))
	}

	name := fmt.Sprintf("  %-28s %dx%d  ", ex.Name, ex.Sets, ex.Reps)
	style := normalItemStyle
	if i == w.cursorEx {
		style = selectedItemStyle
	}
	return style.Render(name) + strings.Join(boxes, " ")
}
