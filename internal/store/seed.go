package store

import (
	"time"

	"taskdeck/internal/task"
)

// SampleTasks are seeded on first run (and after corrupt-data
// recovery) so the list shows the app's value immediately.
func SampleTasks(now time.Time) []task.Task {
	tomorrow := now.AddDate(0, 0, 1)
	return []task.Task{
		{
			ID:        now.UnixMilli(),
			Title:     "Mark a task done to see your progress",
			Priority:  task.PriorityHigh,
			Category:  task.CategoryPersonal,
			DueDate:   task.DateOf(now),
			CreatedAt: now,
		},
		{
			ID:        now.UnixMilli() + 1,
			Title:     "Try adding your own task",
			Priority:  task.PriorityMedium,
			Category:  task.CategoryLearning,
			DueDate:   task.DateOf(tomorrow),
			CreatedAt: now,
		},
		{
			ID:        now.UnixMilli() + 2,
			Title:     "Set priorities and categories",
			Priority:  task.PriorityLow,
			Category:  task.CategoryWork,
			CreatedAt: now,
		},
	}
}
