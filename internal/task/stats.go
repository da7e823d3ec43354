package task

import (
	"math"
	"time"
)

// Progress summarizes today's tasks (grouped by effective date).
type Progress struct {
	Completed int
	Total     int
	Percent   int
}

// ProgressToday counts tasks whose effective date is today's date.
func ProgressToday(tasks []Task, now time.Time) Progress {
	today := DateOf(now)
	var p Progress
	for _, t := range tasks {
		if t.EffectiveDate() != today {
			continue
		}
		p.Total++
		if t.Completed {
			p.Completed++
		}
	}
	p.Percent = roundedPercent(p.Completed, p.Total)
	return p
}

// Statistics are the aggregate numbers shown in the stats panel.
// Week holds creation counts for the current calendar week, Monday
// first; WeekHeights is each bucket as a percent of the largest one.
type Statistics struct {
	Total           int
	Completed       int
	CompletionRate  int
	CreatedThisWeek int
	Week            [7]int
	WeekHeights     [7]int
}

// ComputeStatistics derives the aggregate view from the collection.
func ComputeStatistics(tasks []Task, now time.Time) Statistics {
	var s Statistics
	s.Total = len(tasks)

	weekAgo := now.Add(-7 * 24 * time.Hour)
	start := startOfWeek(now)

	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
		if !t.CreatedAt.Before(weekAgo) {
			s.CreatedThisWeek++
		}
		day := int(midnight(t.CreatedAt).Sub(start).Hours() / 24)
		if day >= 0 && day < 7 {
			s.Week[day]++
		}
	}
	s.CompletionRate = roundedPercent(s.Completed, s.Total)

	maxCount := 1
	for _, n := range s.Week {
		if n > maxCount {
			maxCount = n
		}
	}
	for i, n := range s.Week {
		s.WeekHeights[i] = n * 100 / maxCount
	}
	return s
}

// startOfWeek is midnight of the Monday of now's week.
func startOfWeek(now time.Time) time.Time {
	// time.Weekday puts Sunday at 0; shift so Monday is 0.
	offset := (int(now.Weekday()) + 6) % 7
	return midnight(now).AddDate(0, 0, -offset)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func roundedPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
