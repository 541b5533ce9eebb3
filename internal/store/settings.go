package store

import (
	"fmt"
	"strconv"

	"github.com/habitflow/habitflow/internal/habit"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// AnalyticsPeriod returns the persisted default analysis window,
// falling back to the weekly window on missing or unrecognized values.
func (s *Store) AnalyticsPeriod() habit.Period {
	value, err := s.GetSetting("analytics_period")
	if err != nil {
		return habit.PeriodWeek
	}
	days, err := strconv.Atoi(value)
	if err != nil {
		return habit.PeriodWeek
	}
	switch p := habit.Period(days); p {
	case habit.PeriodWeek, habit.PeriodMonth, habit.PeriodYear:
		return p
	default:
		return habit.PeriodWeek
	}
}

// SetAnalyticsPeriod persists the default analysis window.
func (s *Store) SetAnalyticsPeriod(p habit.Period) error {
	return s.SetSetting("analytics_period", strconv.Itoa(p.Days()))
}

// SeedSamplesEnabled reports whether sample habits should be created
// when the collection is empty.
func (s *Store) SeedSamplesEnabled() bool {
	value, err := s.GetSetting("seed_samples")
	if err != nil {
		return true
	}
	return value != "off"
}

// SetSeedSamples toggles empty-collection sample seeding.
func (s *Store) SetSeedSamples(enabled bool) error {
	value := "off"
	if enabled {
		value = "on"
	}
	return s.SetSetting("seed_samples", value)
}
