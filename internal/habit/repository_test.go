package habit

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// fakePersister records saves in memory; failSave simulates a broken
// backing store.
type fakePersister struct {
	habits    []*Habit
	saveCount int
	failSave  bool
	failLoad  bool
}

func (f *fakePersister) LoadHabits() ([]*Habit, error) {
	if f.failLoad {
		return nil, errors.New("boom")
	}
	return f.habits, nil
}

func (f *fakePersister) SaveHabits(habits []*Habit) error {
	f.saveCount++
	if f.failSave {
		return errors.New("boom")
	}
	f.habits = habits
	return nil
}

func newTestRepo(t *testing.T) (*Repository, *fakePersister) {
	t.Helper()
	p := &fakePersister{}
	return NewRepository(p, nil), p
}

func TestAddAndSnapshot(t *testing.T) {
	r, p := newTestRepo(t)

	h := New("Exercise", "Stay active", "🏃", Color{Red: 0.2, Green: 0.8, Blue: 0.2, Opacity: 1})
	r.Add(h)

	if r.Len() != 1 {
		t.Fatalf("expected 1 habit, got %d", r.Len())
	}
	if p.saveCount != 1 {
		t.Fatalf("expected 1 save, got %d", p.saveCount)
	}

	snap := r.Snapshot()
	if len(snap) != 1 || snap[0].Title != "Exercise" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	// Snapshots are copies: mutating one must not leak back.
	snap[0].MarkDay(time.Now())
	if got := r.Get(h.ID); got.TotalCompletions() != 0 {
		t.Fatal("snapshot mutation leaked into repository")
	}
}

func TestUpdatePartialFields(t *testing.T) {
	r, _ := newTestRepo(t)
	h := New("Reading", "Read everyday", "📚", Color{Blue: 1, Opacity: 1})
	r.Add(h)

	title := "Deep Reading"
	r.Update(h.ID, Updates{Title: &title})

	got := r.Get(h.ID)
	if got.Title != "Deep Reading" {
		t.Fatalf("title not updated: %s", got.Title)
	}
	if got.Description != "Read everyday" || got.Emoji != "📚" {
		t.Fatal("untouched fields should survive a partial update")
	}
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	r, p := newTestRepo(t)
	title := "ghost"
	r.Update(uuid.New(), Updates{Title: &title})
	if p.saveCount != 0 {
		t.Fatal("no-op update should not persist")
	}
}

func TestRemove(t *testing.T) {
	r, _ := newTestRepo(t)
	a := New("A", "", "", Color{})
	b := New("B", "", "", Color{})
	r.Add(a)
	r.Add(b)

	r.Remove(a.ID)
	if r.Len() != 1 {
		t.Fatalf("expected 1 habit after remove, got %d", r.Len())
	}
	if r.Get(a.ID) != nil {
		t.Fatal("removed habit should be gone")
	}

	// Removing again is a silent no-op.
	r.Remove(a.ID)
	if r.Len() != 1 {
		t.Fatal("double remove changed the collection")
	}
}

func TestToggleIdempotence(t *testing.T) {
	r, _ := newTestRepo(t)
	h := New("Meditate", "", "🧘", Color{})
	r.Add(h)

	at := time.Date(2025, 3, 14, 18, 30, 0, 0, time.Local)
	day := DayOf(at)

	r.Toggle(h.ID, at)
	if !r.Get(h.ID).CompletedOn(day) {
		t.Fatal("first toggle should complete the day")
	}

	// A different time of day still lands on the same canonical day.
	r.Toggle(h.ID, time.Date(2025, 3, 14, 7, 0, 0, 0, time.Local))
	if r.Get(h.ID).CompletedOn(day) {
		t.Fatal("second toggle should restore the original state")
	}
	if r.Get(h.ID).TotalCompletions() != 0 {
		t.Fatal("completion set should be empty after toggling twice")
	}
}

func TestToggleUnknownIDIsNoOp(t *testing.T) {
	r, p := newTestRepo(t)
	r.Toggle(uuid.New(), time.Now())
	if p.saveCount != 0 {
		t.Fatal("no-op toggle should not persist")
	}
}

func TestSubscribersNotifiedBeforeMutationReturns(t *testing.T) {
	r, _ := newTestRepo(t)
	h := New("A", "", "", Color{})

	var observed int
	r.Subscribe(func() {
		observed = r.Len()
	})

	r.Add(h)
	if observed != 1 {
		t.Fatalf("subscriber saw stale state: %d", observed)
	}

	r.Remove(h.ID)
	if observed != 0 {
		t.Fatalf("subscriber saw stale state after remove: %d", observed)
	}
}

func TestSaveFailureDoesNotRollBack(t *testing.T) {
	r, p := newTestRepo(t)
	p.failSave = true

	h := New("A", "", "", Color{})
	r.Add(h)

	// In-memory state is authoritative even when persistence fails.
	if r.Len() != 1 {
		t.Fatal("mutation rolled back on save failure")
	}
}

func TestLoadFailureLeavesEmptyCollection(t *testing.T) {
	p := &fakePersister{failLoad: true}
	r := NewRepository(p, nil)
	r.Load()
	if r.Len() != 0 {
		t.Fatalf("expected empty collection on load failure, got %d", r.Len())
	}
}

func TestLoadReplacesCollectionAndNotifies(t *testing.T) {
	p := &fakePersister{habits: []*Habit{New("A", "", "", Color{}), New("B", "", "", Color{})}}
	r := NewRepository(p, nil)

	notified := false
	r.Subscribe(func() { notified = true })

	r.Load()
	if r.Len() != 2 {
		t.Fatalf("expected 2 habits after load, got %d", r.Len())
	}
	if !notified {
		t.Fatal("load should notify subscribers")
	}
}
