package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/berkeoz/liftlog/internal/export"
	"github.com/berkeoz/liftlog/internal/session"
	"github.com/berkeoz/liftlog/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	userID string
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	today    todayModel
	workout  workoutModel
	diet     dietModel
	history  historyModel
	plans    plansModel
	settings settingsModel

	help   help.Model
	status string
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	userID := "local"
	if v, err := s.GetSetting("profile"); err == nil && v != "" {
		userID = v
	}

	return App{
		store:      s,
		userID:     userID,
		activeView: viewToday,
		today:      newTodayModel(s, userID),
		workout:    newWorkoutModel(s, userID),
		diet:       newDietModel(s, userID),
		history:    newHistoryModel(s, userID),
		plans:      newPlansModel(s, userID),
		settings:   newSettingsModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.today.Init(),
		a.workout.recover(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.today.setSize(a.width, contentHeight)
		a.workout.setSize(a.width, contentHeight)
		a.diet.setSize(a.width, contentHeight)
		a.history.setSize(a.width, contentHeight)
		a.plans.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewToday
			return a, a.today.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewWorkout
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewDiet
			return a, a.diet.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewHistory
			return a, a.history.refresh()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewPlans
			return a, a.plans.refresh()
		case key.Matches(msg, keys.Tab6):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 6
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		// The session and rest timers tick regardless of the active view.
		var cmd tea.Cmd
		a.workout, cmd = a.workout.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.status = msg.text
		return a, nil

	case sessionStartedMsg:
		a.status = "Session started"
		a.activeView = viewWorkout
		return a, nil

	case sessionFinishedMsg:
		a.status = fmt.Sprintf("Session logged: %d/%d exercises in %s",
			msg.log.ExercisesCompleted, msg.log.TotalExercises,
			formatSeconds(msg.log.DurationSeconds))
		return a, a.today.loadData()

	case sessionRecoveredMsg:
		a.activeView = viewWorkout
		var cmd tea.Cmd
		a.workout, cmd = a.workout.update(msg)
		return a, cmd

	case restExpiredMsg:
		a.status = "Rest over — next set! \a"
		return a, nil

	case planSavedMsg:
		a.status = fmt.Sprintf("Plan %q saved", msg.plan.Title)
		return a, tea.Batch(a.today.loadData(), a.diet.refresh())

	case settingsSavedMsg:
		a.workout.rest.SetDuration(msg.restDuration)
		a.status = "Settings saved"
		return a, nil

	case gotoWorkoutMsg:
		a.activeView = viewWorkout
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewToday:
		a.today, cmd = a.today.update(msg)
	case viewWorkout:
		a.workout, cmd = a.workout.update(msg)
	case viewDiet:
		a.diet, cmd = a.diet.update(msg)
	case viewHistory:
		a.history, cmd = a.history.update(msg)
	case viewPlans:
		a.plans, cmd = a.plans.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewWorkout:
		return a.workout.formActive
	case viewPlans:
		return a.plans.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewToday:
		return a.today.loadData()
	case viewDiet:
		return a.diet.refresh()
	case viewHistory:
		return a.history.refresh()
	case viewPlans:
		return a.plans.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewToday:
		content = a.today.view()
	case viewWorkout:
		content = a.workout.view()
	case viewDiet:
		content = a.diet.view()
	case viewHistory:
		content = a.history.view()
	case viewPlans:
		content = a.plans.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("liftlog")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Session indicator in footer
	sessionInfo := ""
	if a.workout.active() {
		elapsed := formatSeconds(int64(a.workout.machine.Elapsed()))
		sessionInfo = successStyle.Render(" ● " + elapsed)
		if a.workout.machine.State() != session.Active {
			sessionInfo = warningStyle.Render(" ⏸ " + elapsed)
		}
		if a.workout.rest.Counting() {
			sessionInfo += accentStyle.Render("  rest " + formatClock(a.workout.rest.Remaining()))
		}
	}

	left := footerStyle.Render(helpView)
	right := sessionInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Logs")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		logs, err := a.store.ListLogs(a.userID, store.LogFilter{})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("liftlog-export-%s.csv", dateStr))
			if err := export.ToCSV(logs, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("liftlog-export-%s.json", dateStr))
			if err := export.ToJSON(logs, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
