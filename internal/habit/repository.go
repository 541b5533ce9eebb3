package habit

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Persister saves and loads the habit collection. The sqlite store
// implements it; tests use in-memory fakes.
type Persister interface {
	LoadHabits() ([]*Habit, error)
	SaveHabits([]*Habit) error
}

// Repository owns the habit collection. It is the single writer:
// every mutation happens under its lock, persists best-effort, and
// notifies subscribers before returning so dependent computations
// never observe a stale snapshot.
type Repository struct {
	mu          sync.Mutex
	habits      []*Habit
	persister   Persister
	logger      *slog.Logger
	subscribers []func()
}

// NewRepository creates an empty repository backed by p. A nil logger
// falls back to slog.Default().
func NewRepository(p Persister, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{persister: p, logger: logger}
}

// Load replaces the collection with the persisted one. A load failure
// leaves the repository empty; the error is logged and swallowed so
// startup never fails on bad data.
func (r *Repository) Load() {
	habits, err := r.persister.LoadHabits()
	if err != nil {
		r.logger.Error("load habits", "err", err)
		habits = nil
	}

	r.mu.Lock()
	r.habits = habits
	r.mu.Unlock()
	r.notify()
}

// Add appends a new habit. The caller validates the title before
// calling; the repository stores what it is given.
func (r *Repository) Add(h *Habit) {
	r.mu.Lock()
	r.habits = append(r.habits, h)
	r.persistLocked()
	r.mu.Unlock()
	r.notify()
}

// Update applies a partial update. Unknown ids are a silent no-op.
func (r *Repository) Update(id uuid.UUID, u Updates) {
	r.mu.Lock()
	h := r.findLocked(id)
	if h == nil {
		r.mu.Unlock()
		return
	}
	h.apply(u)
	r.persistLocked()
	r.mu.Unlock()
	r.notify()
}

// Remove deletes a habit and its completion history. Unknown ids are
// a silent no-op.
func (r *Repository) Remove(id uuid.UUID) {
	r.mu.Lock()
	idx := -1
	for i, h := range r.habits {
		if h.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return
	}
	r.habits = append(r.habits[:idx], r.habits[idx+1:]...)
	r.persistLocked()
	r.mu.Unlock()
	r.notify()
}

// Toggle flips the completion state for the day containing t. This is
// the only mutation point for completion state; toggling the same day
// twice restores the original state.
func (r *Repository) Toggle(id uuid.UUID, t time.Time) {
	r.mu.Lock()
	h := r.findLocked(id)
	if h == nil {
		r.mu.Unlock()
		return
	}
	if h.CompletedOn(DayOf(t)) {
		h.UnmarkDay(t)
	} else {
		h.MarkDay(t)
	}
	r.persistLocked()
	r.mu.Unlock()
	r.notify()
}

// Get returns a copy of the habit with the given id, or nil.
func (r *Repository) Get(id uuid.UUID) *Habit {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h := r.findLocked(id); h != nil {
		return h.Clone()
	}
	return nil
}

// Snapshot returns a deep copy of the collection in insertion order.
func (r *Repository) Snapshot() []*Habit {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Habit, len(r.habits))
	for i, h := range r.habits {
		out[i] = h.Clone()
	}
	return out
}

// Len returns the number of habits.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.habits)
}

// Subscribe registers a callback invoked synchronously after every
// successful mutation and after Load.
func (r *Repository) Subscribe(fn func()) {
	r.mu.Lock()
	r.subscribers = append(r.subscribers, fn)
	r.mu.Unlock()
}

func (r *Repository) findLocked(id uuid.UUID) *Habit {
	for _, h := range r.habits {
		if h.ID == id {
			return h
		}
	}
	return nil
}

// persistLocked saves the collection best-effort. The in-memory state
// is already authoritative, so a save failure is logged, not returned.
func (r *Repository) persistLocked() {
	if err := r.persister.SaveHabits(r.habits); err != nil {
		r.logger.Error("save habits", "err", err)
	}
}

func (r *Repository) notify() {
	r.mu.Lock()
	subs := make([]func(), len(r.subscribers))
	copy(subs, r.subscribers)
	r.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}
