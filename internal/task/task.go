package task

import "time"

// DateLayout is the wire format for calendar dates (due dates have no
// time component).
const DateLayout = "2006-01-02"

// Priority of a task. Zero value is not valid; use Medium as default.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Category groups tasks by life area.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategoryLearning Category = "learning"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryHealth, CategoryLearning:
		return true
	}
	return false
}

// Task is the domain model for a single todo entry. Field names on the
// wire match the persisted collection format.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	Category    Category   `json:"category"`
	DueDate     string     `json:"dueDate"` // "YYYY-MM-DD", or "" when unset
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// DateOf truncates a timestamp to its calendar date string.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// EffectiveDate is the due date when set, else the creation date.
// Used for "today" progress grouping.
func (t Task) EffectiveDate() string {
	if t.DueDate != "" {
		return t.DueDate
	}
	return DateOf(t.CreatedAt)
}

// Overdue reports whether the due date lies strictly before today.
// Tasks without a due date are never overdue.
func (t Task) Overdue(now time.Time) bool {
	if t.DueDate == "" || t.Completed {
		return false
	}
	return t.DueDate < DateOf(now)
}
