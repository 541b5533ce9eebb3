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

type dashboardModel struct {
	repo   *habit.Repository
	width  int
	height int

	period  habit.Period
	metrics habit.Metrics
	stats   []habit.Stats

	chart barchart.Model
}

func newDashboardModel(repo *habit.Repository, period habit.Period) dashboardModel {
	return dashboardModel{
		repo:   repo,
		period: period,
		chart:  barchart.New(60, 10),
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

// loadData recomputes the full dashboard from a fresh repository
// snapshot. Metrics are never cached across mutations.
func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		habits := d.repo.Snapshot()
		today := habit.Today()

		stats := make([]habit.Stats, 0, len(habits))
		for _, h := range habits {
			stats = append(stats, habit.ComputeStats(h, today, d.period))
		}

		return dashboardDataMsg{
			metrics: habit.ComputeMetrics(habits, d.period, today),
			stats:   stats,
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.metrics = msg.metrics
		d.stats = msg.stats
		d.buildTrendChart()
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Period):
			d.period = nextPeriod(d.period)
			return d, d.loadData()
		}
	}
	return d, nil
}

func nextPeriod(p habit.Period) habit.Period {
	for i, candidate := range habit.Periods {
		if candidate == p {
			return habit.Periods[(i+1)%len(habit.Periods)]
		}
	}
	return habit.PeriodWeek
}

// buildTrendChart renders the weekly trend (percent of habits
// completed per day) as one bar per weekday, today rightmost.
func (d *dashboardModel) buildTrendChart() {
	chartWidth := d.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 8
	if d.height > 30 {
		chartHeight = 12
	}

	d.chart = barchart.New(chartWidth, chartHeight)

	today := habit.Today()
	var bars []barchart.BarData
	for i := 6; i >= 0; i-- {
		day := today.AddDays(-i)
		value := d.metrics.WeeklyTrend[day.Label()]
		style := lipgloss.NewStyle().Foreground(colorSecondary)
		if i == 0 {
			style = lipgloss.NewStyle().Foreground(colorPrimary)
		}
		bars = append(bars, barchart.BarData{
			Label: day.Label(),
			Values: []barchart.BarValue{
				{Name: day.Label(), Value: value, Style: style},
			},
		})
	}

	d.chart.PushAll(bars)
	d.chart.Draw()
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	grid := d.renderMetricsGrid(contentWidth)
	trend := d.renderTrendPanel(contentWidth)
	perHabit := d.renderHabitRows(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, grid, trend, perHabit)
}

func (d dashboardModel) renderMetricsGrid(w int) string {
	m := d.metrics

	cells := []struct {
		label string
		value string
	}{
		{"Habits", fmt.Sprintf("%d", m.TotalHabits)},
		{"Active", fmt.Sprintf("%d", m.ActiveHabits)},
		{"Avg Rate", formatRate(m.AverageCompletionRate)},
		{"Completions", fmt.Sprintf("%d", m.TotalCompletions)},
		{"Max Streak", streakText(m.MaxStreak)},
		{"Best", m.BestPerformingHabit},
	}

	cellWidth := w/3 - 2
	if cellWidth < 12 {
		cellWidth = 12
	}

	var rendered []string
	for _, c := range cells {
		content := lipgloss.JoinVertical(lipgloss.Left,
			metricValueStyle.Render(c.value),
			metricLabelStyle.Render(c.label),
		)
		rendered = append(rendered, panelStyle.Width(cellWidth).Render(content))
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, rendered[0], rendered[1], rendered[2])
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, rendered[3], rendered[4], rendered[5])
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func (d dashboardModel) renderTrendPanel(w int) string {
	title := titleStyle.Render("Weekly Trend")
	periodTabs := d.renderPeriodTabs()
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", periodTabs)

	if d.metrics.TotalHabits == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header,
			mutedStyle.Render("No habits yet. Press 2 to add one."),
		))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		d.chart.View(),
		mutedStyle.Render("  p: switch period"),
	))
}

func (d dashboardModel) renderPeriodTabs() string {
	var tabs []string
	for _, p := range habit.Periods {
		if p == d.period {
			tabs = append(tabs, activeTabStyle.Render(p.ShortTitle()))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(p.ShortTitle()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (d dashboardModel) renderHabitRows(w int) string {
	title := titleStyle.Render(d.period.Title())
	if len(d.stats) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Nothing to show"),
		))
	}

	var rows []string
	rows = append(rows, title)
	for _, s := range d.stats {
		dot := lipgloss.NewStyle().Foreground(habitColor(s.Color)).Render("●")
		streak := streakIdleStyle.Render("–")
		if s.CurrentStreak > 0 {
			streak = streakActiveStyle.Render(fmt.Sprintf("🔥 %s", streakText(s.CurrentStreak)))
		}
		row := fmt.Sprintf("  %s %s %-18s %8s  %s",
			dot, s.Emoji, s.Title, formatRate(s.CompletionRate), streak)
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
