package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/berkeoz/liftlog/internal/plan"
	"github.com/berkeoz/liftlog/internal/session"
	"github.com/berkeoz/liftlog/internal/stats"
	"github.com/berkeoz/liftlog/internal/store"
)

// dietModel shows today's meal checklist for the active diet plan.
type dietModel struct {
	store  *store.Store
	userID string
	width  int
	height int

	plan     *store.Plan
	slot     *store.DaySlot
	dayIndex int
	done     map[string]bool

	cursor int
}

func newDietModel(s *store.Store, userID string) dietModel {
	return dietModel{store: s, userID: userID, done: map[string]bool{}}
}

func (d *dietModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dietDataMsg struct {
	plan     *store.Plan
	slot     *store.DaySlot
	dayIndex int
	done     map[string]bool
}

func (d dietModel) refresh() tea.Cmd {
	return func() tea.Msg {
		now := time.Now()
		p, _ := d.store.GetActivePlan(d.userID, store.KindDiet)
		msg := dietDataMsg{plan: p, dayIndex: plan.WeekdayIndex(now), done: map[string]bool{}}
		if p != nil {
			msg.slot = plan.SlotFor(p, now)
			if m, err := d.store.LoadCompletedMeals(d.userID, p.ID); err == nil {
				msg.done = m
			}
		}
		return msg
	}
}

func (d dietModel) update(msg tea.Msg) (dietModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dietDataMsg:
		d.plan = msg.plan
		d.slot = msg.slot
		d.dayIndex = msg.dayIndex
		d.done = msg.done
		if d.slot != nil && d.cursor >= len(d.slot.Meals) {
			d.cursor = 0
		}
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
		case key.Matches(msg, keys.Down):
			if d.slot != nil && d.cursor < len(d.slot.Meals)-1 {
				d.cursor++
			}
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			return d.toggle()
		}
	}
	return d, nil
}

func (d dietModel) toggle() (dietModel, tea.Cmd) {
	if d.plan == nil || d.slot == nil || len(d.slot.Meals) == 0 {
		return d, nil
	}
	key := session.SetKey(d.dayIndex, d.cursor)
	val, err := d.store.ToggleMeal(d.userID, d.plan.ID, key)
	if err != nil {
		return d, func() tea.Msg { return errStatus(err) }
	}
	if val {
		d.done[key] = true
	} else {
		delete(d.done, key)
	}
	return d, nil
}

func (d dietModel) view() string {
	w := d.width - 4
	if w < 20 {
		return "Terminal too small"
	}

	if d.plan == nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Diet"),
			"",
			mutedStyle.Render("No active diet plan. Press 5 to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}
	if d.slot == nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(d.plan.Title),
			"",
			mutedStyle.Render("The diet plan does not cover today."),
		)
		return panelStyle.Width(w).Render(content)
	}

	progress := stats.MealProgress(d.slot, d.dayIndex, d.done)

	var rows []string
	rows = append(rows, titleStyle.Render(d.plan.Title)+mutedStyle.Render("  "+d.slot.Label))
	rows = append(rows, "")
	for i, meal := range d.slot.Meals {
		box := "○"
		if d.done[session.SetKey(d.dayIndex, i)] {
			box = "●"
		}
		style := normalItemStyle
		if i == d.cursor {
			style = selectedItemStyle
		}
		line := fmt.Sprintf("  %s %-34s %5d kcal", box, meal.Name, meal.Calories)
		if meal.Time != "" {
			line += mutedStyle.Render("  " + meal.Time)
		}
		rows = append(rows, style.Render(line))
	}
	rows = append(rows, "")
	rows = append(rows, d.renderProgress(w, progress))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: check meal"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dietModel) renderProgress(w int, p stats.DietProgress) string {
	barWidth := min(w-20, 40)
	if barWidth < 10 {
		barWidth = 10
	}
	filled := barWidth * p.Percent / 100
	bar := successStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("  %s %3d%%  %d/%d kcal", bar, p.Percent,
		p.CompletedCalories, p.TotalCalories)
}
