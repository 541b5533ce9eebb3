package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/habitflow/habitflow/internal/habit"
)

// LoadHabits reads the full habit collection in stored order. Decoding
// fails closed: any malformed row (bad uuid, bad day key) aborts the
// load so callers start from an empty collection instead of a
// partially decoded one.
func (s *Store) LoadHabits() ([]*habit.Habit, error) {
	rows, err := s.db.Query(
		`SELECT id, title, description, emoji, color_red, color_green, color_blue, color_opacity
		 FROM habits ORDER BY position, created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("query habits: %w", err)
	}
	defer rows.Close()

	var habits []*habit.Habit
	byID := make(map[uuid.UUID]*habit.Habit)

	for rows.Next() {
		var idStr string
		h := &habit.Habit{Completed: make(map[habit.Day]struct{})}
		if err := rows.Scan(&idStr, &h.Title, &h.Description, &h.Emoji,
			&h.Color.Red, &h.Color.Green, &h.Color.Blue, &h.Color.Opacity); err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("parse habit id %q: %w", idStr, err)
		}
		h.ID = id
		habits = append(habits, h)
		byID[id] = h
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate habits: %w", err)
	}

	crows, err := s.db.Query(`SELECT habit_id, day FROM completions`)
	if err != nil {
		return nil, fmt.Errorf("query completions: %w", err)
	}
	defer crows.Close()

	for crows.Next() {
		var idStr, dayStr string
		if err := crows.Scan(&idStr, &dayStr); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("parse completion habit id %q: %w", idStr, err)
		}
		t, err := time.ParseInLocation("2006-01-02", dayStr, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse completion day %q: %w", dayStr, err)
		}
		if h, ok := byID[id]; ok {
			// Re-normalize on decode so the canonical-day invariant
			// holds even if the row was written by hand.
			h.Completed[habit.DayOf(t)] = struct{}{}
		}
	}
	return habits, crows.Err()
}

// SaveHabits replaces the persisted collection with the given one in a
// single transaction. Positions record insertion order so loads return
// habits in the order the user created them.
func (s *Store) SaveHabits(habits []*habit.Habit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM completions`); err != nil {
		return fmt.Errorf("clear completions: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM habits`); err != nil {
		return fmt.Errorf("clear habits: %w", err)
	}

	for i, h := range habits {
		_, err := tx.Exec(
			`INSERT INTO habits (id, title, description, emoji, color_red, color_green, color_blue, color_opacity, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			h.ID.String(), h.Title, h.Description, h.Emoji,
			h.Color.Red, h.Color.Green, h.Color.Blue, h.Color.Opacity, i,
		)
		if err != nil {
			return fmt.Errorf("insert habit %s: %w", h.Title, err)
		}
		for day := range h.Completed {
			if _, err := tx.Exec(
				`INSERT INTO completions (habit_id, day) VALUES (?, ?)`,
				h.ID.String(), string(day),
			); err != nil {
				return fmt.Errorf("insert completion %s: %w", day, err)
			}
		}
	}

	return tx.Commit()
}
