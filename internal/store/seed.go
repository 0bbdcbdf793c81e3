package store

import (
	"time"

	"buckets/internal/task"
)

// Seed returns the demo collection shown on first launch, relative to now.
// Planned demo tasks carry their calendar day as both due date and creation
// time, which is the date the edit form shows for them.
func Seed(now time.Time) []task.Task {
	today := startOfDay(now)
	updated := now
	meeting := time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)
	refactor := time.Date(2024, 12, 18, 0, 0, 0, 0, time.UTC)

	return []task.Task{
		{
			ID:          1,
			Title:       "Complete project documentation",
			Priority:    task.PriorityHigh,
			Description: "Write comprehensive docs",
			Bucket:      task.BucketDaily,
			CreatedAt:   today,
		},
		{
			ID:        2,
			Title:     "Review pull requests",
			Priority:  task.PriorityMedium,
			Completed: true,
			Bucket:    task.BucketDaily,
			CreatedAt: today,
			UpdatedAt: &updated,
		},
		{
			ID:        3,
			Title:     "Prepare presentation",
			Priority:  task.PriorityHigh,
			Bucket:    task.BucketTomorrow,
			CreatedAt: today,
			UpdatedAt: &updated,
		},
		{
			ID:        4,
			Title:     "Team meeting planning",
			Priority:  task.PriorityLow,
			Bucket:    task.BucketPlanned,
			DueDate:   &meeting,
			CreatedAt: meeting,
			UpdatedAt: &updated,
		},
		{
			ID:        5,
			Title:     "Code refactoring",
			Priority:  task.PriorityMedium,
			Completed: true,
			Bucket:    task.BucketPlanned,
			DueDate:   &refactor,
			CreatedAt: refactor,
			UpdatedAt: &updated,
		},
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
