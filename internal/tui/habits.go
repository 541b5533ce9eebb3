package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/habitflow/habitflow/internal/habit"
)

var habitColors = []habit.Color{
	{Red: 0.42, Green: 0.39, Blue: 1, Opacity: 1},    // violet
	{Red: 0.18, Green: 0.77, Blue: 0.71, Opacity: 1}, // teal
	{Red: 1, Green: 0.42, Blue: 0.42, Opacity: 1},    // coral
	{Red: 0.95, Green: 0.61, Blue: 0.07, Opacity: 1}, // amber
	{Red: 0.18, Green: 0.8, Blue: 0.44, Opacity: 1},  // green
	{Red: 0.61, Green: 0.35, Blue: 0.71, Opacity: 1}, // purple
	{Red: 0.2, Green: 0.6, Blue: 0.86, Opacity: 1},   // blue
}

var habitColorNames = []string{"violet", "teal", "coral", "amber", "green", "purple", "blue"}

var habitEmojis = []string{"🏃", "📚", "🧘", "🎵", "💧", "✍️", "🌱", "💪", "🛌", "🧹"}

type habitsModel struct {
	repo   *habit.Repository
	width  int
	height int

	habits    []*habit.Habit
	cursor    int
	dayCursor int // 0..6 within the current Monday-start week
	week      [7]habit.Day

	formActive bool
	form       *huh.Form
	formType   string // "new", "edit"

	// Form field pointers (survive value copies)
	formTitle       *string
	formDescription *string
	formEmoji       *string
	formColor       *int

	editingID string // habit id under edit
}

func newHabitsModel(repo *habit.Repository) habitsModel {
	title, desc, emoji, colorIdx := "", "", habitEmojis[0], 0
	week := habit.WeekOf(habit.Today())

	m := habitsModel{
		repo:            repo,
		week:            week,
		formTitle:       &title,
		formDescription: &desc,
		formEmoji:       &emoji,
		formColor:       &colorIdx,
	}
	// Start the day cursor on today.
	for i, d := range week {
		if habit.IsToday(d) {
			m.dayCursor = i
		}
	}
	return m
}

func (m *habitsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m habitsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return habitsDataMsg{habits: m.repo.Snapshot()}
	}
}

func (m habitsModel) update(msg tea.Msg) (habitsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case habitsDataMsg:
		m.habits = msg.habits
		if m.cursor >= len(m.habits) {
			m.cursor = max(0, len(m.habits)-1)
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateList(msg)
	}
	return m, nil
}

func (m habitsModel) updateList(msg tea.KeyMsg) (habitsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.habits)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Left):
		if m.dayCursor > 0 {
			m.dayCursor--
		}
	case key.Matches(msg, keys.Right):
		if m.dayCursor < 6 {
			m.dayCursor++
		}
	case key.Matches(msg, keys.Toggle):
		if len(m.habits) > 0 {
			h := m.habits[m.cursor]
			day := m.week[m.dayCursor]
			m.repo.Toggle(h.ID, day.Time())
			return m, m.refresh()
		}
	case key.Matches(msg, keys.New):
		return m.showNewHabitForm()
	case key.Matches(msg, keys.Edit):
		if len(m.habits) > 0 {
			return m.showEditHabitForm()
		}
	case key.Matches(msg, keys.Delete):
		if len(m.habits) > 0 {
			m.repo.Remove(m.habits[m.cursor].ID)
			return m, m.refresh()
		}
	}
	return m, nil
}

func habitFormGroup(title, desc, emoji *string, colorIdx *int) *huh.Group {
	emojiOptions := make([]huh.Option[string], len(habitEmojis))
	for i, e := range habitEmojis {
		emojiOptions[i] = huh.NewOption(e, e)
	}
	colorOptions := make([]huh.Option[int], len(habitColors))
	for i, name := range habitColorNames {
		colorOptions[i] = huh.NewOption(name, i)
	}

	return huh.NewGroup(
		huh.NewInput().Title("Title").Value(title).Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("title cannot be empty")
			}
			return nil
		}),
		huh.NewInput().Title("Description").Value(desc),
		huh.NewSelect[string]().Title("Emoji").Options(emojiOptions...).Value(emoji),
		huh.NewSelect[int]().Title("Color").Options(colorOptions...).Value(colorIdx),
	)
}

func (m habitsModel) showNewHabitForm() (habitsModel, tea.Cmd) {
	*m.formTitle = ""
	*m.formDescription = ""
	*m.formEmoji = habitEmojis[0]
	*m.formColor = 0
	m.formType = "new"

	m.form = huh.NewForm(
		habitFormGroup(m.formTitle, m.formDescription, m.formEmoji, m.formColor),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m habitsModel) showEditHabitForm() (habitsModel, tea.Cmd) {
	h := m.habits[m.cursor]
	*m.formTitle = h.Title
	*m.formDescription = h.Description
	*m.formEmoji = h.Emoji
	*m.formColor = closestColorIndex(h.Color)
	m.formType = "edit"
	m.editingID = h.ID.String()

	m.form = huh.NewForm(
		habitFormGroup(m.formTitle, m.formDescription, m.formEmoji, m.formColor),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

// closestColorIndex maps an arbitrary stored color back onto the
// picker palette so editing does not silently change the color.
func closestColorIndex(c habit.Color) int {
	best, bestDist := 0, -1.0
	for i, candidate := range habitColors {
		dr := c.Red - candidate.Red
		dg := c.Green - candidate.Green
		db := c.Blue - candidate.Blue
		dist := dr*dr + dg*dg + db*db
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

func (m habitsModel) updateForm(msg tea.Msg) (habitsModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		title := strings.TrimSpace(*m.formTitle)
		switch m.formType {
		case "new":
			if title != "" {
				h := habit.New(title, *m.formDescription, *m.formEmoji, habitColors[*m.formColor])
				m.repo.Add(h)
			}
			return m, m.refresh()
		case "edit":
			if title != "" {
				for _, h := range m.habits {
					if h.ID.String() != m.editingID {
						continue
					}
					color := habitColors[*m.formColor]
					m.repo.Update(h.ID, habit.Updates{
						Title:       &title,
						Description: m.formDescription,
						Emoji:       m.formEmoji,
						Color:       &color,
					})
					break
				}
			}
			return m, m.refresh()
		}
	}

	return m, cmd
}

func (m habitsModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Habit")
		if m.formType == "edit" {
			title = titleStyle.Render("Edit Habit")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(m.width - 4).Render(content)
	}

	return m.renderList()
}

func (m habitsModel) renderList() string {
	w := m.width - 4
	title := titleStyle.Render("Habits")
	weekLabel := mutedStyle.Render(fmt.Sprintf("%s — %s",
		m.week[0].Time().Format("Jan 02"), m.week[6].Time().Format("Jan 02")))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", weekLabel)

	if len(m.habits) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("No habits yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")

	// Weekday header aligned with the grid cells.
	var labels []string
	for i, d := range m.week {
		label := d.Label()
		if i == m.dayCursor {
			label = highlightStyle.Render(label)
		} else {
			label = mutedStyle.Render(label)
		}
		labels = append(labels, label)
	}
	rows = append(rows, fmt.Sprintf("  %-24s %s", "", strings.Join(labels, " ")))

	for i, h := range m.habits {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		dot := lipgloss.NewStyle().Foreground(habitColor(h.Color)).Render("●")
		name := style.Render(fmt.Sprintf("%s%s %s %-18s", cursor, dot, h.Emoji, h.Title))
		rows = append(rows, fmt.Sprintf("%s %s", name, m.renderWeekCells(h, i == m.cursor)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle  ←/→: pick day  n: new  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// renderWeekCells draws one ✓/· cell per day of the current week.
func (m habitsModel) renderWeekCells(h *habit.Habit, selected bool) string {
	var cells []string
	for i, d := range m.week {
		var cell string
		if h.CompletedOn(d) {
			cell = heatDoneStyle.Render("✓")
		} else {
			cell = heatMissStyle.Render("·")
		}
		if selected && i == m.dayCursor {
			cell = highlightStyle.Render("[") + cell + highlightStyle.Render("]")
		} else {
			cell = " " + cell + " "
		}
		cells = append(cells, cell)
	}
	return strings.Join(cells, " ")
}
