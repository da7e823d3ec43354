// Package store owns the task collection: CRUD mutations, reorder,
// derived views, and write-through persistence to a kv.Store. The
// store is exclusively owned by the UI goroutine; it does no locking.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"taskdeck/internal/kv"
	"taskdeck/internal/task"
)

// KeyTasks is the storage key holding the serialized collection.
const KeyTasks = "todos"

// Store is the task collection service. Construct with Open.
type Store struct {
	kv    kv.Store
	now   func() time.Time
	tasks []task.Task

	// onComplete fires exactly on the not-done→done transition.
	onComplete func(task.Task)
}

// Open loads the collection, seeding the default samples on first run.
// A corrupt stored blob does not fail the open: the store is reseeded
// and a notice wrapping ErrCorruptData is returned alongside it.
func Open(ctx context.Context, kvs kv.Store, now func() time.Time) (*Store, error) {
	if now == nil {
		now = time.Now
	}
	s := &Store{kv: kvs, now: now}

	b, err := kvs.Get(ctx, KeyTasks)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		s.tasks = SampleTasks(now())
		if err := s.persist(ctx); err != nil {
			return nil, err
		}
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	if err := json.Unmarshal(b, &s.tasks); err != nil {
		s.tasks = SampleTasks(now())
		if perr := s.persist(ctx); perr != nil {
			return nil, perr
		}
		return s, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	return s, nil
}

// OnComplete registers the celebration hook.
func (s *Store) OnComplete(fn func(task.Task)) { s.onComplete = fn }

// Tasks returns a copy of the collection in display order.
func (s *Store) Tasks() []task.Task {
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len reports the collection size.
func (s *Store) Len() int { return len(s.tasks) }

// Create appends a task with default priority/category and persists.
func (s *Store) Create(ctx context.Context, title string) (*task.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	now := s.now()
	t := task.Task{
		ID:        s.nextID(now),
		Title:     title,
		Priority:  task.PriorityMedium,
		Category:  task.CategoryPersonal,
		CreatedAt: now,
	}
	s.tasks = append(s.tasks, t)
	if err := s.persist(ctx); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		return nil, err
	}
	return &s.tasks[len(s.tasks)-1], nil
}

// Patch carries the editable fields; nil means "leave unchanged".
// Title is deliberately not re-validated here: clearing a title
// through edit matches the historical behavior and stays allowed.
type Patch struct {
	Title    *string
	Priority *task.Priority
	Category *task.Category
	DueDate  *string
	Notes    *string
}

// Update merges the patch into the task with the given id.
func (s *Store) Update(ctx context.Context, id int64, p Patch) (*task.Task, error) {
	i := s.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	t := &s.tasks[i]
	prev := *t
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if err := s.persist(ctx); err != nil {
		*t = prev
		return nil, err
	}
	return t, nil
}

// ToggleComplete flips completion. completedAt is set on the
// not-done→done transition and cleared on the way back.
func (s *Store) ToggleComplete(ctx context.Context, id int64) (*task.Task, error) {
	i := s.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	t := &s.tasks[i]
	prev := *t
	t.Completed = !t.Completed
	if t.Completed {
		at := s.now()
		t.CompletedAt = &at
	} else {
		t.CompletedAt = nil
	}
	if err := s.persist(ctx); err != nil {
		*t = prev
		return nil, err
	}
	if t.Completed && s.onComplete != nil {
		s.onComplete(*t)
	}
	return t, nil
}

// Delete removes the task. Confirmation is the caller's business.
func (s *Store) Delete(ctx context.Context, id int64) error {
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	if err := s.persist(ctx); err != nil {
		s.tasks = slices.Insert(s.tasks, i, removed)
		return err
	}
	return nil
}

// Reorder swaps the positions of two tasks. A swap, not a move: the
// tasks trade places and everything else stays put. Self-inverse.
func (s *Store) Reorder(ctx context.Context, draggedID, targetID int64) error {
	if draggedID == targetID {
		return nil
	}
	i, j := s.index(draggedID), s.index(targetID)
	if i < 0 || j < 0 {
		return nil
	}
	s.tasks[i], s.tasks[j] = s.tasks[j], s.tasks[i]
	if err := s.persist(ctx); err != nil {
		s.tasks[i], s.tasks[j] = s.tasks[j], s.tasks[i]
		return err
	}
	return nil
}

// Query derives the filtered view as a lazy sequence.
func (s *Store) Query(f task.Filter) iter.Seq[task.Task] {
	return task.Query(s.tasks, f, s.now())
}

// ProgressToday summarizes tasks effective-dated today.
func (s *Store) ProgressToday() task.Progress {
	return task.ProgressToday(s.tasks, s.now())
}

// Statistics computes the aggregate stats view.
func (s *Store) Statistics() task.Statistics {
	return task.ComputeStatistics(s.tasks, s.now())
}

func (s *Store) index(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// nextID derives ids from the clock in milliseconds, bumping past
// collisions. Unique, not strictly increasing across clock changes.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	for s.index(id) >= 0 {
		id++
	}
	return id
}

// persist flushes the whole collection after every mutation. No
// batching, no dirty flag; the collection is small by construction.
func (s *Store) persist(ctx context.Context) error {
	b, err := json.MarshalIndent(s.tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.kv.Set(ctx, KeyTasks, b); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
