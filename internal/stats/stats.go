// Package stats derives per-bucket progress from a task collection. Every
// function is a pure function of its input.
package stats

import (
	"fmt"

	"buckets/internal/task"
)

type BucketStats struct {
	Total      int
	Completed  int
	Percentage float64
}

// Percent is Completed*100/Total rounded down; 0 for an empty bucket.
func (s BucketStats) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return s.Completed * 100 / s.Total
}

func (s BucketStats) Pending() int {
	return s.Total - s.Completed
}

// PerBucket counts the tasks in bucket. Percentage is exactly 0 for an empty
// bucket.
func PerBucket(tasks []task.Task, bucket task.Bucket) (BucketStats, error) {
	if !bucket.Valid() {
		return BucketStats{}, fmt.Errorf("bucket stats: %w %q", task.ErrInvalidBucket, bucket)
	}
	return count(tasks, bucket), nil
}

func count(tasks []task.Task, bucket task.Bucket) BucketStats {
	var s BucketStats
	for _, t := range tasks {
		if t.Bucket != bucket {
			continue
		}
		s.Total++
		if t.Completed {
			s.Completed++
		}
	}
	if s.Total > 0 {
		s.Percentage = float64(s.Completed) / float64(s.Total)
	}
	return s
}

// SplitByCompletion returns the pending and completed tasks of bucket, each in
// collection order.
func SplitByCompletion(tasks []task.Task, bucket task.Bucket) (pending, completed []task.Task, err error) {
	if !bucket.Valid() {
		return nil, nil, fmt.Errorf("split tasks: %w %q", task.ErrInvalidBucket, bucket)
	}
	for _, t := range tasks {
		if t.Bucket != bucket {
			continue
		}
		if t.Completed {
			completed = append(completed, t)
		} else {
			pending = append(pending, t)
		}
	}
	return pending, completed, nil
}

type Summary struct {
	Bucket task.Bucket
	BucketStats
}

// Overview returns the stats of every bucket in dashboard order.
func Overview(tasks []task.Task) []Summary {
	out := make([]Summary, 0, len(task.Buckets))
	for _, b := range task.Buckets {
		out = append(out, Summary{Bucket: b, BucketStats: count(tasks, b)})
	}
	return out
}
