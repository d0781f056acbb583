package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/berkeoz/liftlog/internal/plan"
	"github.com/berkeoz/liftlog/internal/store"
)

// plansModel shows the active plans and creates new ones from built-in
// templates or JSON files.
type plansModel struct {
	store  *store.Store
	userID string
	width  int
	height int

	workoutPlan *store.Plan
	dietPlan    *store.Plan

	formActive bool
	form       *huh.Form
	importing  bool

	templateIdx *string
	startDate   *string
	weeks       *string
	importPath  *string
}

func newPlansModel(s *store.Store, userID string) plansModel {
	ti, sd, wk, ip := "", "", "", ""
	return plansModel{
		store:       s,
		userID:      userID,
		templateIdx: &ti,
		startDate:   &sd,
		weeks:       &wk,
		importPath:  &ip,
	}
}

func (p *plansModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type plansDataMsg struct {
	workoutPlan *store.Plan
	dietPlan    *store.Plan
}

func (p plansModel) refresh() tea.Cmd {
	return func() tea.Msg {
		wp, _ := p.store.GetActivePlan(p.userID, store.KindWorkout)
		dp, _ := p.store.GetActivePlan(p.userID, store.KindDiet)
		return plansDataMsg{workoutPlan: wp, dietPlan: dp}
	}
}

func (p plansModel) update(msg tea.Msg) (plansModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case plansDataMsg:
		p.workoutPlan = msg.workoutPlan
		p.dietPlan = msg.dietPlan
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.New):
			return p.showTemplateForm()
		case key.Matches(msg, keys.Import):
			return p.showImportForm()
		}
	}
	return p, nil
}

func (p plansModel) showTemplateForm() (plansModel, tea.Cmd) {
	*p.templateIdx = "0"
	*p.startDate = time.Now().Format("2006-01-02")
	*p.weeks = "4"

	var options []huh.Option[string]
	for i, t := range plan.Templates() {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", t.Name, t.Kind), strconv.Itoa(i)))
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Template").Options(options...).Value(p.templateIdx),
			huh.NewInput().Title("Start date (YYYY-MM-DD)").Value(p.startDate),
			huh.NewInput().Title("Duration (weeks, workout only)").Value(p.weeks),
		).Title("New plan"),
	).WithShowHelp(true).WithShowErrors(true)
	p.formActive = true
	p.importing = false
	return p, p.form.Init()
}

func (p plansModel) showImportForm() (plansModel, tea.Cmd) {
	*p.importPath = ""
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Plan file (JSON)").Value(p.importPath),
		).Title("Import plan"),
	).WithShowHelp(true).WithShowErrors(true)
	p.formActive = true
	p.importing = true
	return p, p.form.Init()
}

func (p plansModel) updateForm(msg tea.Msg) (plansModel, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, keys.Back) {
		p.formActive = false
		p.form = nil
		return p, nil
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		p.form = nil
		if p.importing {
			return p.importPlan()
		}
		return p.createFromTemplate()
	}
	return p, cmd
}

func (p plansModel) createFromTemplate() (plansModel, tea.Cmd) {
	idx, _ := strconv.Atoi(*p.templateIdx)
	templates := plan.Templates()
	if idx < 0 || idx >= len(templates) {
		return p, nil
	}
	start, err := time.Parse("2006-01-02", strings.TrimSpace(*p.startDate))
	if err != nil {
		return p, func() tea.Msg {
			return statusMsg{text: "Bad start date, expected YYYY-MM-DD", isError: true}
		}
	}
	weeks, _ := strconv.Atoi(strings.TrimSpace(*p.weeks))
	if weeks < 1 {
		weeks = 1
	}

	newPlan := templates[idx].Make(start, weeks)
	if err := p.store.SaveActivePlan(p.userID, newPlan); err != nil {
		return p, func() tea.Msg { return errStatus(err) }
	}
	return p, tea.Batch(
		p.refresh(),
		func() tea.Msg { return planSavedMsg{plan: newPlan} },
	)
}

func (p plansModel) importPlan() (plansModel, tea.Cmd) {
	loaded, err := plan.LoadFile(strings.TrimSpace(*p.importPath))
	if err != nil {
		return p, func() tea.Msg { return errStatus(err) }
	}
	if err := p.store.SaveActivePlan(p.userID, loaded); err != nil {
		return p, func() tea.Msg { return errStatus(err) }
	}
	return p, tea.Batch(
		p.refresh(),
		func() tea.Msg { return planSavedMsg{plan: loaded} },
	)
}

func (p plansModel) view() string {
	w := p.width - 4
	if w < 20 {
		return "Terminal too small"
	}

	if p.formActive && p.form != nil {
		return activePanelStyle.Width(w).Render(p.form.View())
	}

	workout := p.renderPlan(w, "Workout plan", p.workoutPlan)
	diet := p.renderPlan(w, "Diet plan", p.dietPlan)
	hint := mutedStyle.Render("  n: new from template  i: import JSON")

	return lipgloss.JoinVertical(lipgloss.Left, workout, diet, hint)
}

func (p plansModel) renderPlan(w int, title string, pl *store.Plan) string {
	head := titleStyle.Render(title)
	if pl == nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, head, mutedStyle.Render("None")),
		)
	}

	meta := fmt.Sprintf("%s — starts %s", pl.Title, pl.StartDate.Format("Jan 02, 2006"))
	if pl.Kind == store.KindWorkout {
		meta += fmt.Sprintf(", %d weeks", pl.DurationWeeks)
	}
	active := ""
	if plan.Active(pl, time.Now()) {
		active = successStyle.Render("  active today")
	}

	var rows []string
	rows = append(rows, head+"  "+mutedStyle.Render(meta)+active)
	rows = append(rows, "")
	dayNames := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	for i, slot := range pl.Schedule {
		if i >= len(dayNames) {
			break
		}
		var desc string
		switch {
		case plan.IsRestDay(&pl.Schedule[i]):
			desc = mutedStyle.Render("rest")
		case pl.Kind == store.KindWorkout:
			desc = fmt.Sprintf("%s (%d exercises)", slot.Label, len(slot.Exercises))
		default:
			var cal int
			for _, m := range slot.Meals {
				cal += m.Calories
			}
			desc = fmt.Sprintf("%s (%d meals, %d kcal)", slot.Label, len(slot.Meals), cal)
		}
		rows = append(rows, fmt.Sprintf("  %s  %s", highlightStyle.Render(dayNames[i]), desc))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
