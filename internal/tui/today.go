package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/berkeoz/liftlog/internal/plan"
	"github.com/berkeoz/liftlog/internal/stats"
	"github.com/berkeoz/liftlog/internal/store"
)

// todayModel is the landing screen: what is scheduled today, the current
// streak and the most recent sessions.
type todayModel struct {
	store  *store.Store
	userID string
	width  int
	height int

	workoutPlan *store.Plan
	dietPlan    *store.Plan
	workoutSlot *store.DaySlot
	dietSlot    *store.DaySlot
	streak      int
	recentLogs  []store.WorkoutLog
}

func newTodayModel(s *store.Store, userID string) todayModel {
	return todayModel{store: s, userID: userID}
}

func (t todayModel) Init() tea.Cmd {
	return t.loadData()
}

func (t *todayModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

type todayDataMsg struct {
	workoutPlan *store.Plan
	dietPlan    *store.Plan
	workoutSlot *store.DaySlot
	dietSlot    *store.DaySlot
	streak      int
	recentLogs  []store.WorkoutLog
}

func (t todayModel) loadData() tea.Cmd {
	return func() tea.Msg {
		now := time.Now()
		msg := todayDataMsg{}

		msg.workoutPlan, _ = t.store.GetActivePlan(t.userID, store.KindWorkout)
		msg.dietPlan, _ = t.store.GetActivePlan(t.userID, store.KindDiet)
		msg.workoutSlot = plan.SlotFor(msg.workoutPlan, now)
		msg.dietSlot = plan.SlotFor(msg.dietPlan, now)

		logs, _ := t.store.ListLogs(t.userID, store.LogFilter{})
		msg.streak = stats.Streak(logs, now)
		if len(logs) > 5 {
			logs = logs[:5]
		}
		msg.recentLogs = logs
		return msg
	}
}

func (t todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case todayDataMsg:
		t.workoutPlan = msg.workoutPlan
		t.dietPlan = msg.dietPlan
		t.workoutSlot = msg.workoutSlot
		t.dietSlot = msg.dietSlot
		t.streak = msg.streak
		t.recentLogs = msg.recentLogs
		return t, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Start) {
			return t, func() tea.Msg { return gotoWorkoutMsg{} }
		}
	}
	return t, nil
}

func (t todayModel) view() string {
	w := t.width - 4
	if w < 20 {
		return "Terminal too small"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		t.renderSchedule(w),
		t.renderStreak(w),
		t.renderRecent(w),
	)
}

func (t todayModel) renderSchedule(w int) string {
	now := time.Now()
	header := titleStyle.Render(now.Format("Monday, Jan 2"))

	var rows []string
	rows = append(rows, header, "")

	switch {
	case t.workoutPlan == nil:
		rows = append(rows, mutedStyle.Render("No workout plan. Press 5 to create one."))
	case t.workoutSlot == nil:
		rows = append(rows, mutedStyle.Render("Workout plan is not active today."))
	case plan.IsRestDay(t.workoutSlot):
		rows = append(rows, successStyle.Render("Rest day")+mutedStyle.Render(" — recover well"))
	default:
		line := highlightStyle.Render(t.workoutSlot.Label)
		if t.workoutSlot.Focus != "" {
			line += mutedStyle.Render("  " + t.workoutSlot.Focus)
		}
		rows = append(rows, line)
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %d exercises — press s to train", len(t.workoutSlot.Exercises))))
	}

	rows = append(rows, "")
	if t.dietSlot != nil && len(t.dietSlot.Meals) > 0 {
		var cal int
		for _, m := range t.dietSlot.Meals {
			cal += m.Calories
		}
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("Diet: %d meals, %d kcal planned (press 3)", len(t.dietSlot.Meals), cal)))
	} else {
		rows = append(rows, mutedStyle.Render("No diet scheduled today."))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (t todayModel) renderStreak(w int) string {
	var text string
	switch {
	case t.streak == 0:
		text = mutedStyle.Render("No streak — today is a good day to start one")
	case t.streak == 1:
		text = successStyle.Render("🔥 1 day streak")
	default:
		text = successStyle.Render(fmt.Sprintf("🔥 %d day streak", t.streak))
	}
	return panelStyle.Width(w).Render(text)
}

func (t todayModel) renderRecent(w int) string {
	title := titleStyle.Render("Recent Sessions")
	if len(t.recentLogs) == 0 {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render("No sessions yet")),
		)
	}

	var rows []string
	rows = append(rows, title)
	for _, l := range t.recentLogs {
		row := fmt.Sprintf("  %s  %-22s %d/%d exercises  %s",
			l.Date.Local().Format("Jan 02"), l.Title,
			l.ExercisesCompleted, l.TotalExercises,
			formatSeconds(l.DurationSeconds),
		)
		rows = append(rows, row)
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
