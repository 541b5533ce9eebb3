package habit

import (
	"time"

	"github.com/google/uuid"
)

// Color is a cosmetic tag stored as four sRGB channels. The engine
// never interprets it; it exists so the UI's color survives the
// round trip through the store and exports.
type Color struct {
	Red     float64
	Green   float64
	Blue    float64
	Opacity float64
}

// Habit is a single tracked habit with its full completion history.
type Habit struct {
	ID          uuid.UUID
	Title       string
	Description string
	Emoji       string
	Color       Color

	// Completed holds one entry per completed calendar day. Every key
	// is a canonical Day; normalization happens in New, MarkDay and
	// the store decoder, never at call sites.
	Completed map[Day]struct{}
}

// New creates a habit with a fresh id and an empty completion set.
// Title validation is the caller's concern.
func New(title, description, emoji string, color Color) *Habit {
	return &Habit{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Emoji:       emoji,
		Color:       color,
		Completed:   make(map[Day]struct{}),
	}
}

// CompletedOn reports whether the habit was completed on the given day.
func (h *Habit) CompletedOn(d Day) bool {
	_, ok := h.Completed[d]
	return ok
}

// MarkDay records a completion for the day containing t.
func (h *Habit) MarkDay(t time.Time) {
	if h.Completed == nil {
		h.Completed = make(map[Day]struct{})
	}
	h.Completed[DayOf(t)] = struct{}{}
}

// UnmarkDay removes the completion for the day containing t, if any.
func (h *Habit) UnmarkDay(t time.Time) {
	delete(h.Completed, DayOf(t))
}

// TotalCompletions returns the lifetime completion count.
func (h *Habit) TotalCompletions() int {
	return len(h.Completed)
}

// Clone returns a deep copy; snapshots hand out clones so readers can
// never alias the repository's mutable state.
func (h *Habit) Clone() *Habit {
	completed := make(map[Day]struct{}, len(h.Completed))
	for d := range h.Completed {
		completed[d] = struct{}{}
	}
	c := *h
	c.Completed = completed
	return &c
}

// Updates is a partial update for a habit. Nil fields are left
// untouched; completion state is never updated this way (Toggle is
// the sole mutation point for it).
type Updates struct {
	Title       *string
	Description *string
	Emoji       *string
	Color       *Color
}

func (h *Habit) apply(u Updates) {
	if u.Title != nil {
		h.Title = *u.Title
	}
	if u.Description != nil {
		h.Description = *u.Description
	}
	if u.Emoji != nil {
		h.Emoji = *u.Emoji
	}
	if u.Color != nil {
		h.Color = *u.Color
	}
}
