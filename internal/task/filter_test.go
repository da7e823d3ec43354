package task

import (
	"testing"
	"time"
)

var now = time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)

func mk(id int64, mut ...func(*Task)) Task {
	t := Task{
		ID:        id,
		Title:     "task",
		Priority:  PriorityMedium,
		Category:  CategoryPersonal,
		CreatedAt: now,
	}
	for _, m := range mut {
		m(&t)
	}
	return t
}

func collect(tasks []Task, f Filter, at time.Time) []Task {
	var out []Task
	for t := range Query(tasks, f, at) {
		out = append(out, t)
	}
	return out
}

func ids(tasks []Task) map[int64]bool {
	m := make(map[int64]bool, len(tasks))
	for _, t := range tasks {
		m[t.ID] = true
	}
	return m
}

func TestActiveAndCompletedPartitionTheCollection(t *testing.T) {
	tasks := []Task{
		mk(1),
		mk(2, func(t *Task) { t.Completed = true }),
		mk(3),
		mk(4, func(t *Task) { t.Completed = true }),
	}

	active := ids(collect(tasks, Filter{Status: StatusActive}, now))
	completed := ids(collect(tasks, Filter{Status: StatusCompleted}, now))

	for id := range active {
		if completed[id] {
			t.Fatalf("task %d in both partitions", id)
		}
	}
	all := ids(collect(tasks, Filter{Status: StatusAll}, now))
	if len(active)+len(completed) != len(all) {
		t.Fatalf("partition sizes %d+%d != %d", len(active), len(completed), len(all))
	}
	for id := range all {
		if !active[id] && !completed[id] {
			t.Fatalf("task %d in neither partition", id)
		}
	}
}

func TestTodayUsesCreatedDateWhenDueAbsent(t *testing.T) {
	// A task created today with no due date counts as today's.
	tasks := []Task{
		{ID: 1, Title: "A", CreatedAt: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)},
	}
	got := collect(tasks, Filter{Status: StatusToday}, now)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("created-date fallback failed, got %v", got)
	}
}

func TestTodayFilterCases(t *testing.T) {
	yesterday := now.AddDate(0, 0, -1)
	cases := []struct {
		name string
		task Task
		want bool
	}{
		{"due today", mk(1, func(t *Task) { t.DueDate = "2024-01-01"; t.CreatedAt = yesterday }), true},
		{"due later, created today", mk(2, func(t *Task) { t.DueDate = "2024-01-05" }), false},
		{"no due, created today", mk(3), true},
		{"no due, created yesterday", mk(4, func(t *Task) { t.CreatedAt = yesterday }), false},
	}
	for _, tc := range cases {
		got := Filter{Status: StatusToday}.Match(tc.task, now)
		if got != tc.want {
			t.Errorf("%s: match = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestWeekFilterBoundaryIsInclusive(t *testing.T) {
	exactly := mk(1, func(t *Task) { t.CreatedAt = now.Add(-7 * 24 * time.Hour) })
	justOver := mk(2, func(t *Task) { t.CreatedAt = now.Add(-7*24*time.Hour - time.Second) })

	f := Filter{Status: StatusWeek}
	if !f.Match(exactly, now) {
		t.Error("exactly 7 days old must match")
	}
	if f.Match(justOver, now) {
		t.Error("older than 7 days must not match")
	}
}

func TestPriorityAndCategoryFilters(t *testing.T) {
	tasks := []Task{
		mk(1, func(t *Task) { t.Priority = PriorityHigh; t.Category = CategoryWork }),
		mk(2, func(t *Task) { t.Priority = PriorityLow; t.Category = CategoryWork }),
		mk(3, func(t *Task) { t.Priority = PriorityHigh; t.Category = CategoryHealth }),
	}

	got := collect(tasks, Filter{Status: StatusAll, Priority: PriorityHigh}, now)
	if len(got) != 2 {
		t.Fatalf("priority filter: got %d, want 2", len(got))
	}
	got = collect(tasks, Filter{Status: StatusAll, Priority: PriorityHigh, Category: CategoryWork}, now)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("combined filters: got %v", got)
	}
}

func TestSearchMatchesTitleAndNotesCaseInsensitive(t *testing.T) {
	tasks := []Task{
		mk(1, func(t *Task) { t.Title = "Buy GROCERIES" }),
		mk(2, func(t *Task) { t.Notes = "remember the groceries list" }),
		mk(3, func(t *Task) { t.Title = "unrelated" }),
	}
	got := collect(tasks, Filter{Status: StatusAll, Search: "gRoCeRiEs"}, now)
	if len(got) != 2 {
		t.Fatalf("search: got %d, want 2", len(got))
	}
}

func TestQueryIsRestartable(t *testing.T) {
	tasks := []Task{mk(1), mk(2), mk(3)}
	seq := Query(tasks, Filter{Status: StatusAll}, now)

	first := 0
	for range seq {
		first++
		if first == 2 {
			break // early stop
		}
	}
	second := 0
	for range seq {
		second++
	}
	if second != 3 {
		t.Fatalf("restarted iteration yielded %d, want 3", second)
	}
}

func TestQueryPreservesCollectionOrder(t *testing.T) {
	tasks := []Task{mk(3), mk(1), mk(2)}
	got := collect(tasks, Filter{Status: StatusAll}, now)
	want := []int64{3, 1, 2}
	for i, tk := range got {
		if tk.ID != want[i] {
			t.Fatalf("order changed: got %d at %d, want %d", tk.ID, i, want[i])
		}
	}
}

func TestEffectiveDate(t *testing.T) {
	noDue := mk(1)
	if noDue.EffectiveDate() != "2024-01-01" {
		t.Errorf("effective date = %s, want creation date", noDue.EffectiveDate())
	}
	due := mk(2, func(t *Task) { t.DueDate = "2024-02-15" })
	if due.EffectiveDate() != "2024-02-15" {
		t.Errorf("effective date = %s, want due date", due.EffectiveDate())
	}
}

func TestOverdue(t *testing.T) {
	cases := []struct {
		name string
		task Task
		want bool
	}{
		{"past due", mk(1, func(t *Task) { t.DueDate = "2023-12-31" }), true},
		{"due today", mk(2, func(t *Task) { t.DueDate = "2024-01-01" }), false},
		{"no due date", mk(3), false},
		{"past due but completed", mk(4, func(t *Task) { t.DueDate = "2023-12-31"; t.Completed = true }), false},
	}
	for _, tc := range cases {
		if got := tc.task.Overdue(now); got != tc.want {
			t.Errorf("%s: overdue = %v, want %v", tc.name, got, tc.want)
		}
	}
}
