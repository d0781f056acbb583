package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/berkeoz/liftlog/internal/session"
	"github.com/berkeoz/liftlog/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	restDuration *string
	weekStart    *string
	units        *string
}

func newSettingsModel(s *store.Store) settingsModel {
	rd, ws, un := "", "", ""
	return settingsModel{
		store:        s,
		restDuration: &rd,
		weekStart:    &ws,
		units:        &un,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

type settingsSavedMsg struct {
	restDuration int
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) getVal(key, fallback string) string {
	for _, set := range s.settings {
		if set.Key == key {
			return set.Value
		}
	}
	return fallback
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.restDuration = s.getVal("rest_duration", "60")
	*s.weekStart = s.getVal("week_start", "monday")
	*s.units = s.getVal("units", "kg")

	var restOptions []huh.Option[string]
	for _, preset := range session.RestPresets {
		restOptions = append(restOptions,
			huh.NewOption(fmt.Sprintf("%ds", preset), strconv.Itoa(preset)))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Rest timer").
				Options(restOptions...).Value(s.restDuration),
			huh.NewSelect[string]().Title("Week starts on").
				Options(
					huh.NewOption("Monday", "monday"),
					huh.NewOption("Sunday", "sunday"),
				).Value(s.weekStart),
			huh.NewSelect[string]().Title("Units").
				Options(
					huh.NewOption("Kilograms", "kg"),
					huh.NewOption("Pounds", "lb"),
				).Value(s.units),
		).Title("Settings"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, keys.Back) {
		s.formActive = false
		s.form = nil
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		return s.save()
	}
	return s, cmd
}

func (s settingsModel) save() (settingsModel, tea.Cmd) {
	s.store.SetSetting("rest_duration", *s.restDuration)
	s.store.SetSetting("week_start", *s.weekStart)
	s.store.SetSetting("units", *s.units)

	rest, _ := strconv.Atoi(*s.restDuration)
	return s, tea.Batch(
		s.refresh(),
		func() tea.Msg { return settingsSavedMsg{restDuration: rest} },
	)
}

func (s settingsModel) view() string {
	w := s.width - 4
	if w < 20 {
		return "Terminal too small"
	}

	if s.formActive && s.form != nil {
		return activePanelStyle.Width(w).Render(s.form.View())
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"))
	rows = append(rows, "")
	for _, set := range s.settings {
		rows = append(rows, fmt.Sprintf("  %-16s %s", set.Key, highlightStyle.Render(set.Value)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit"))

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, strings.Join(rows, "\n")),
	)
}
