package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/habitflow/habitflow/internal/habit"
)

// analyticsModel is the per-habit drill-down: streaks, rate, weekday
// distribution chart and the 31-day progress strip.
type analyticsModel struct {
	repo   *habit.Repository
	width  int
	height int

	period habit.Period
	habits []*habit.Habit
	stats  []habit.Stats
	cursor int

	chart barchart.Model
}

func newAnalyticsModel(repo *habit.Repository, period habit.Period) analyticsModel {
	return analyticsModel{
		repo:   repo,
		period: period,
		chart:  barchart.New(40, 8),
	}
}

func (a *analyticsModel) setSize(w, h int) {
	a.width = w
	a.height = h
}

func (a analyticsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		habits := a.repo.Snapshot()
		today := habit.Today()
		stats := make([]habit.Stats, 0, len(habits))
		for _, h := range habits {
			stats = append(stats, habit.ComputeStats(h, today, a.period))
		}
		return analyticsDataMsg{habits: habits, stats: stats}
	}
}

func (a analyticsModel) update(msg tea.Msg) (analyticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case analyticsDataMsg:
		a.habits = msg.habits
		a.stats = msg.stats
		if a.cursor >= len(a.habits) {
			a.cursor = max(0, len(a.habits)-1)
		}
		a.buildDistributionChart()
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if a.cursor > 0 {
				a.cursor--
				a.buildDistributionChart()
			}
		case key.Matches(msg, keys.Down):
			if a.cursor < len(a.habits)-1 {
				a.cursor++
				a.buildDistributionChart()
			}
		case key.Matches(msg, keys.Period):
			a.period = nextPeriod(a.period)
			return a, a.refresh()
		}
	}
	return a, nil
}

// buildDistributionChart renders the selected habit's weekday
// completion counts, Monday first.
func (a *analyticsModel) buildDistributionChart() {
	if a.cursor >= len(a.stats) {
		return
	}
	s := a.stats[a.cursor]

	chartWidth := a.width/2 - 6
	if chartWidth < 20 {
		chartWidth = 20
	}
	a.chart = barchart.New(chartWidth, 8)

	style := lipgloss.NewStyle().Foreground(habitColor(s.Color))
	var bars []barchart.BarData
	for _, label := range habit.WeekdayLabels {
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: label, Value: float64(s.WeekdayDist[label]), Style: style},
			},
		})
	}

	a.chart.PushAll(bars)
	a.chart.Draw()
}

func (a analyticsModel) view() string {
	w := a.width - 4

	title := titleStyle.Render("Analytics")
	periodTabs := a.renderPeriodTabs()
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", periodTabs)

	if len(a.habits) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("No habits to analyze yet."),
		))
	}

	picker := a.renderHabitPicker()
	detail := a.renderDetail(w)
	nav := mutedStyle.Render("  ↑/↓: pick habit  p: switch period")

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		header, "", picker, "", detail, "", nav,
	))
}

func (a analyticsModel) renderPeriodTabs() string {
	var tabs []string
	for _, p := range habit.Periods {
		if p == a.period {
			tabs = append(tabs, activeTabStyle.Render(p.ShortTitle()))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(p.ShortTitle()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (a analyticsModel) renderHabitPicker() string {
	var items []string
	for i, h := range a.habits {
		dot := lipgloss.NewStyle().Foreground(habitColor(h.Color)).Render("●")
		label := fmt.Sprintf("%s %s %s", dot, h.Emoji, h.Title)
		if i == a.cursor {
			label = selectedItemStyle.Render("> " + label)
		} else {
			label = normalItemStyle.Render("  " + label)
		}
		items = append(items, label)
	}
	return strings.Join(items, "\n")
}

func (a analyticsModel) renderDetail(w int) string {
	s := a.stats[a.cursor]

	streak := streakIdleStyle.Render("no active streak")
	if s.CurrentStreak > 0 {
		streak = streakActiveStyle.Render("🔥 " + streakText(s.CurrentStreak))
	}

	facts := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(s.Title),
		"",
		fmt.Sprintf("%s  %s", metricLabelStyle.Render("Current streak"), streak),
		fmt.Sprintf("%s  %s", metricLabelStyle.Render("Longest streak"), highlightStyle.Render(streakText(s.LongestStreak))),
		fmt.Sprintf("%s  %s", metricLabelStyle.Render(a.period.Title()+" rate"), metricValueStyle.Render(formatRate(s.CompletionRate))),
		fmt.Sprintf("%s  %s", metricLabelStyle.Render("Total completions"), metricValueStyle.Render(fmt.Sprintf("%d", s.TotalCompletions))),
		"",
		subtitleStyle.Render("Last 31 days"),
		a.renderProgressStrip(s),
	)

	chartPanel := lipgloss.JoinVertical(lipgloss.Left,
		subtitleStyle.Render("Completions by weekday"),
		a.chart.View(),
	)

	gap := lipgloss.NewStyle().Width(4).Render("")
	return lipgloss.JoinHorizontal(lipgloss.Top, facts, gap, chartPanel)
}

// renderProgressStrip draws the dense monthly progress map as a strip
// of cells, oldest on the left, today on the right.
func (a analyticsModel) renderProgressStrip(s habit.Stats) string {
	today := habit.Today()
	var cells []string
	for _, d := range habit.DaysIn(today.AddDays(-30), today) {
		switch {
		case habit.IsToday(d) && s.MonthlyProgress[d] == 1:
			cells = append(cells, heatTodayStyle.Render("█"))
		case habit.IsToday(d):
			cells = append(cells, heatTodayStyle.Render("░"))
		case s.MonthlyProgress[d] == 1:
			cells = append(cells, heatDoneStyle.Render("█"))
		default:
			cells = append(cells, heatMissStyle.Render("░"))
		}
	}
	return strings.Join(cells, "")
}
