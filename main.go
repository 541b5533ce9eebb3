package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/habitflow/habitflow/internal/habit"
	"github.com/habitflow/habitflow/internal/store"
	"github.com/habitflow/habitflow/internal/tui"
)

func main() {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	repo := habit.NewRepository(s, newLogger(dbPath))
	repo.Load()

	if repo.Len() == 0 && s.SeedSamplesEnabled() {
		seedSampleHabits(repo)
	}

	app := tui.NewApp(repo, s)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes next to the database; stderr would corrupt the
// alt-screen TUI.
func newLogger(dbPath string) *slog.Logger {
	f, err := os.OpenFile(filepath.Join(filepath.Dir(dbPath), "habitflow.log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(f, nil))
}

// seedSampleHabits gives a first-time user something to look at.
func seedSampleHabits(repo *habit.Repository) {
	samples := []*habit.Habit{
		habit.New("Exercise", "Stay active everyday", "🏃", habit.Color{Red: 0.18, Green: 0.8, Blue: 0.44, Opacity: 1}),
		habit.New("Reading", "Read everyday", "📚", habit.Color{Red: 0.2, Green: 0.6, Blue: 0.86, Opacity: 1}),
		habit.New("Meditation", "Mindfulness practice", "🧘", habit.Color{Red: 0.61, Green: 0.35, Blue: 0.71, Opacity: 1}),
		habit.New("Sing", "Sing everyday", "🎵", habit.Color{Red: 0.95, Green: 0.61, Blue: 0.07, Opacity: 1}),
	}
	for _, h := range samples {
		repo.Add(h)
	}
}
