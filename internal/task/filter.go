package task

import (
	"iter"
	"strings"
	"time"
)

// Status narrows the list by completion state or date window.
type Status string

const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusToday     Status = "today"
	StatusWeek      Status = "week"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAll, StatusActive, StatusCompleted, StatusToday, StatusWeek:
		return true
	}
	return false
}

// Filter is the view state applied on top of the collection. Empty
// Priority/Category/Search fields mean "no filtering on that axis".
type Filter struct {
	Status   Status
	Priority Priority
	Category Category
	Search   string
}

// Match applies the filter axes in order: status, priority, category,
// then a case-insensitive substring match against title and notes.
func (f Filter) Match(t Task, now time.Time) bool {
	switch f.Status {
	case StatusActive:
		if t.Completed {
			return false
		}
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	case StatusToday:
		today := DateOf(now)
		due := t.DueDate == today
		createdFallback := t.DueDate == "" && DateOf(t.CreatedAt) == today
		if !due && !createdFallback {
			return false
		}
	case StatusWeek:
		// Inclusive boundary at exactly 7 days in the past.
		weekAgo := now.Add(-7 * 24 * time.Hour)
		if t.CreatedAt.Before(weekAgo) {
			return false
		}
	}

	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}

	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		title := strings.ToLower(t.Title)
		notes := strings.ToLower(t.Notes)
		if !strings.Contains(title, q) && !strings.Contains(notes, q) {
			return false
		}
	}
	return true
}

// Query produces a lazy, restartable sequence over tasks matching f.
// The slice is not copied; callers must not mutate it mid-iteration.
func Query(tasks []Task, f Filter, now time.Time) iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, t := range tasks {
			if !f.Match(t, now) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}
