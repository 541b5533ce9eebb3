package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/habitflow/habitflow/internal/habit"
	"github.com/habitflow/habitflow/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	period      habit.Period
	seedSamples bool

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	formPeriod *string
	formSeed   *bool
}

func newSettingsModel(st *store.Store) settingsModel {
	period, seed := "", true
	return settingsModel{
		store:      st,
		formPeriod: &period,
		formSeed:   &seed,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return settingsDataMsg{
			period:      s.store.AnalyticsPeriod(),
			seedSamples: s.store.SeedSamplesEnabled(),
		}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.period = msg.period
		s.seedSamples = msg.seedSamples
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.formPeriod = strconv.Itoa(s.period.Days())
	*s.formSeed = s.seedSamples

	periodOptions := make([]huh.Option[string], len(habit.Periods))
	for i, p := range habit.Periods {
		periodOptions[i] = huh.NewOption(p.Title(), strconv.Itoa(p.Days()))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Default analysis period").
				Options(periodOptions...).Value(s.formPeriod),
			huh.NewConfirm().Title("Seed sample habits when empty").
				Affirmative("On").Negative("Off").Value(s.formSeed),
		).Title("Analytics"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.saveSettings()
		return s, s.refresh()
	}

	return s, cmd
}

func (s settingsModel) saveSettings() {
	if days, err := strconv.Atoi(*s.formPeriod); err == nil {
		s.store.SetAnalyticsPeriod(habit.Period(days))
	}
	s.store.SetSeedSamples(*s.formSeed)
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	seed := "off"
	if s.seedSamples {
		seed = "on"
	}

	rows := []string{
		title,
		"",
		settingRow("Analysis period", s.period.Title()),
		settingRow("Week starts on", "Monday"),
		settingRow("Seed sample habits", seed),
		"",
		hint,
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingRow(label, value string) string {
	l := lipgloss.NewStyle().Width(24).Render(label)
	return fmt.Sprintf("  %s %s", l, highlightStyle.Render(value))
}
