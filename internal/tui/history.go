package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/berkeoz/liftlog/internal/stats"
	"github.com/berkeoz/liftlog/internal/store"
)

// historyModel shows one calendar month of training history: aggregate
// numbers, a volume-per-day chart and the raw log list.
type historyModel struct {
	store  *store.Store
	userID string
	width  int
	height int

	year  int
	month time.Month

	logs    []store.WorkoutLog
	monthly stats.Monthly
	streak  int

	cursor int
	chart  barchart.Model
}

func newHistoryModel(s *store.Store, userID string) historyModel {
	now := time.Now()
	return historyModel{
		store:  s,
		userID: userID,
		year:   now.Year(),
		month:  now.Month(),
		chart:  barchart.New(60, 10),
	}
}

func (h *historyModel) setSize(w, height int) {
	h.width = w
	h.height = height
}

type historyDataMsg struct {
	logs    []store.WorkoutLog
	monthly stats.Monthly
	streak  int
}

func (h historyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from := time.Date(h.year, h.month, 1, 0, 0, 0, 0, time.Local)
		to := from.AddDate(0, 1, 0)
		logs, _ := h.store.ListLogs(h.userID, store.LogFilter{From: &from, To: &to})

		all, _ := h.store.ListLogs(h.userID, store.LogFilter{})
		return historyDataMsg{
			logs:    logs,
			monthly: stats.ForMonth(logs, h.year, h.month),
			streak:  stats.Streak(all, time.Now()),
		}
	}
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		h.logs = msg.logs
		h.monthly = msg.monthly
		h.streak = msg.streak
		if h.cursor >= len(h.logs) {
			h.cursor = 0
		}
		h.buildChart()
		return h, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			h.year, h.month = prevMonth(h.year, h.month)
			return h, h.refresh()
		case key.Matches(msg, keys.Right):
			h.year, h.month = nextMonth(h.year, h.month)
			return h, h.refresh()
		case key.Matches(msg, keys.Up):
			if h.cursor > 0 {
				h.cursor--
			}
		case key.Matches(msg, keys.Down):
			if h.cursor < len(h.logs)-1 {
				h.cursor++
			}
		case key.Matches(msg, keys.Delete):
			return h.deleteSelected()
		}
	}
	return h, nil
}

func (h historyModel) deleteSelected() (historyModel, tea.Cmd) {
	if h.cursor >= len(h.logs) {
		return h, nil
	}
	id := h.logs[h.cursor].ID
	if err := h.store.DeleteLog(h.userID, id); err != nil {
		return h, func() tea.Msg { return errStatus(err) }
	}
	return h, tea.Batch(
		h.refresh(),
		func() tea.Msg { return statusMsg{text: "Log deleted"} },
	)
}

func prevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

func (h *historyModel) buildChart() {
	chartWidth := h.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	h.chart = barchart.New(chartWidth, 10)

	if len(h.monthly.VolumeByDay) == 0 {
		return
	}

	daysIn := time.Date(h.year, h.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
	var bars []barchart.BarData
	for day := 1; day <= daysIn; day++ {
		vol := h.monthly.VolumeByDay[day]
		if vol == 0 {
			continue
		}
		bars = append(bars, barchart.BarData{
			Label: fmt.Sprintf("%02d", day),
			Values: []barchart.BarValue{{
				Name:  "volume",
				Value: vol,
				Style: lipgloss.NewStyle().Foreground(colorPrimary),
			}},
		})
	}
	h.chart.PushAll(bars)
	h.chart.Draw()
}

func (h historyModel) view() string {
	w := h.width - 4
	if w < 20 {
		return "Terminal too small"
	}

	monthLabel := time.Date(h.year, h.month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("History"), "  ",
		highlightStyle.Render(monthLabel), "  ",
		mutedStyle.Render("←/→: month"),
	)

	summary := h.renderSummary()
	chartView := ""
	if len(h.monthly.VolumeByDay) > 0 {
		chartView = h.chart.View()
	}
	groups := h.renderMuscleGroups()
	logList := h.renderLogs(w)

	sections := []string{header, "", summary}
	if chartView != "" {
		sections = append(sections, "", chartView)
	}
	if groups != "" {
		sections = append(sections, "", groups)
	}
	sections = append(sections, "", logList)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (h historyModel) renderSummary() string {
	m := h.monthly
	parts := []string{
		fmt.Sprintf("Sessions %s", highlightStyle.Render(fmt.Sprintf("%d", m.Sessions))),
		fmt.Sprintf("Time %s", highlightStyle.Render(formatSeconds(m.TotalDuration))),
		fmt.Sprintf("Sets %s", highlightStyle.Render(fmt.Sprintf("%d (avg %d)", m.TotalSets, m.AvgSets))),
		fmt.Sprintf("Volume %s", highlightStyle.Render(fmt.Sprintf("%.0f kg", m.VolumeKg))),
		fmt.Sprintf("Streak %s", successStyle.Render(fmt.Sprintf("%d", h.streak))),
	}
	return "  " + strings.Join(parts, "   ")
}

func (h historyModel) renderMuscleGroups() string {
	if len(h.monthly.MuscleGroups) == 0 {
		return ""
	}
	var parts []string
	for _, g := range h.monthly.MuscleGroups {
		parts = append(parts, fmt.Sprintf("%s %s", g.Group, mutedStyle.Render(fmt.Sprintf("×%d", g.Count))))
	}
	return "  " + titleStyle.Render("Muscle groups: ") + strings.Join(parts, "  ")
}

func (h historyModel) renderLogs(w int) string {
	if len(h.logs) == 0 {
		return mutedStyle.Render("  No sessions this month")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-8s %-22s %12s %10s", "Date", "Title", "Exercises", "Duration")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 56))))
	for i, l := range h.logs {
		style := normalItemStyle
		cursor := "  "
		if i == h.cursor {
			style = selectedItemStyle
			cursor = "> "
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-8s %-22s %7d/%-4d %10s",
			cursor, l.Date.Local().Format("Jan 02"), l.Title,
			l.ExercisesCompleted, l.TotalExercises, formatSeconds(l.DurationSeconds),
		)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  d: delete selected log"))
	return strings.Join(rows, "\n")
}
