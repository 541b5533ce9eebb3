package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/habitflow/habitflow/internal/habit"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewHabits
	viewAnalytics
	viewSettings
)

var viewNames = []string{"Dashboard", "Habits", "Analytics", "Settings"}

// --- Messages ---

// habitsChangedMsg arrives whenever the repository mutates, bridged
// from the repository's change subscription.
type habitsChangedMsg struct{}

type dashboardDataMsg struct {
	metrics habit.Metrics
	stats   []habit.Stats
}

type habitsDataMsg struct {
	habits []*habit.Habit
}

type analyticsDataMsg struct {
	habits []*habit.Habit
	stats  []habit.Stats
}

type settingsDataMsg struct {
	period      habit.Period
	seedSamples bool
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

func streakText(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// habitColor converts the stored color channels to a lipgloss color.
func habitColor(c habit.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X",
		channelByte(c.Red), channelByte(c.Green), channelByte(c.Blue)))
}

func channelByte(v float64) int {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return int(v*255 + 0.5)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
