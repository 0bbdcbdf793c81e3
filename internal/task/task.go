package task

import (
	"strings"
	"time"
)

type ID int64

type Bucket string

const (
	BucketDaily    Bucket = "daily"
	BucketTomorrow Bucket = "tomorrow"
	BucketPlanned  Bucket = "planned"
)

// Buckets lists every bucket in dashboard order.
var Buckets = []Bucket{BucketDaily, BucketTomorrow, BucketPlanned}

func (b Bucket) Valid() bool {
	switch b {
	case BucketDaily, BucketTomorrow, BucketPlanned:
		return true
	}
	return false
}

// ParseBucket accepts any casing and surrounding spaces.
func ParseBucket(v string) (Bucket, error) {
	b := Bucket(strings.ToLower(strings.TrimSpace(v)))
	if !b.Valid() {
		return "", invalidBucket(v)
	}
	return b, nil
}

// Label is the upper-case heading the screens show for a bucket.
func (b Bucket) Label() string {
	return strings.ToUpper(string(b))
}

type Priority string

const (
	PriorityNone   Priority = ""
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists the selectable priorities in form order.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) Valid() bool {
	switch p {
	case PriorityNone, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ParsePriority maps "high", "HIGH" and "High" to PriorityHigh. An empty
// string is the unset priority.
func ParsePriority(v string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		return PriorityNone, nil
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	}
	return PriorityNone, validation("priority", "unknown priority "+v)
}

type Task struct {
	ID          ID
	Title       string
	Priority    Priority
	Description string
	Completed   bool
	Bucket      Bucket
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Clone returns a copy that shares no pointers with t.
func (t Task) Clone() Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	if t.UpdatedAt != nil {
		u := *t.UpdatedAt
		t.UpdatedAt = &u
	}
	return t
}

// Patch is a partial update. A nil field means "no change". A zero DueDate
// clears the date.
type Patch struct {
	Title       *string
	Priority    *Priority
	Description *string
	Bucket      *Bucket
	DueDate     *time.Time
}

func (p Patch) Empty() bool {
	return p.Title == nil && p.Priority == nil && p.Description == nil && p.Bucket == nil && p.DueDate == nil
}

// Validate checks a task about to be committed as new. The title is not
// trimmed here, only rejected when blank.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return validation("title", "must not be empty")
	}
	if !t.Bucket.Valid() {
		return invalidBucket(string(t.Bucket))
	}
	if !t.Priority.Valid() {
		return validation("priority", "unknown priority "+string(t.Priority))
	}
	if t.Completed {
		return validation("completed", "new tasks start pending")
	}
	if t.DueDate != nil && t.Bucket != BucketPlanned {
		return validation("due_date", "only planned tasks have a due date")
	}
	return nil
}

// Apply merges p into t. The result is normalized: titles are trimmed and a
// due date only survives on planned tasks.
func (t *Task) Apply(p Patch) error {
	next := t.Clone()
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return validation("title", "must not be empty")
		}
		next.Title = title
	}
	if p.Priority != nil {
		if !p.Priority.Valid() {
			return validation("priority", "unknown priority "+string(*p.Priority))
		}
		next.Priority = *p.Priority
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.Bucket != nil {
		if !p.Bucket.Valid() {
			return invalidBucket(string(*p.Bucket))
		}
		next.Bucket = *p.Bucket
	}
	if p.DueDate != nil {
		if p.DueDate.IsZero() {
			next.DueDate = nil
		} else {
			d := *p.DueDate
			next.DueDate = &d
		}
	}
	*t = next.Normalized()
	return nil
}

// Normalized trims the title and drops a due date outside the planned bucket.
func (t Task) Normalized() Task {
	t = t.Clone()
	t.Title = strings.TrimSpace(t.Title)
	if t.Bucket != BucketPlanned {
		t.DueDate = nil
	}
	return t
}
