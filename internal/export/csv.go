package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/habitflow/habitflow/internal/habit"
)

// ToCSV writes one row per habit with its analytics columns to path.
func ToCSV(habits []*habit.Habit, stats map[string]habit.Stats, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	header := []string{"ID", "Title", "Emoji", "Completion Rate (%)", "Current Streak", "Longest Streak", "Total Completions"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, h := range habits {
		s, ok := stats[h.ID.String()]
		if !ok {
			s = habit.Stats{TotalCompletions: h.TotalCompletions()}
		}
		row := []string{
			h.ID.String(),
			h.Title,
			h.Emoji,
			fmt.Sprintf("%.1f", s.CompletionRate),
			fmt.Sprintf("%d", s.CurrentStreak),
			fmt.Sprintf("%d", s.LongestStreak),
			fmt.Sprintf("%d", s.TotalCompletions),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
