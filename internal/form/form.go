// Package form holds the state of the task form independent of rendering.
// A form opened on a completed task is read-only and committing it deletes
// the task.
package form

import (
	"fmt"
	"strings"
	"time"

	"buckets/internal/task"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
	ModeCompleted
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	case ModeCompleted:
		return "completed"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

type Form struct {
	mode        Mode
	id          task.ID
	title       string
	description string
	priority    task.Priority
	bucket      task.Bucket
	due         time.Time
}

// New opens an empty form. preset may be empty; an unknown preset is ignored.
func New(preset task.Bucket) *Form {
	f := &Form{mode: ModeCreate}
	if preset.Valid() {
		f.bucket = preset
	}
	return f
}

// Open loads t into the form. The mode follows the task's state.
func Open(t task.Task) *Form {
	f := &Form{
		mode:        ModeEdit,
		id:          t.ID,
		title:       t.Title,
		description: t.Description,
		priority:    t.Priority,
		bucket:      t.Bucket,
	}
	if t.Completed {
		f.mode = ModeCompleted
	}
	if t.DueDate != nil {
		f.due = *t.DueDate
	}
	return f
}

func (f *Form) Mode() Mode {
	return f.mode
}

func (f *Form) TaskID() task.ID {
	return f.id
}

func (f *Form) Title() string {
	return f.title
}

func (f *Form) Description() string {
	return f.description
}

func (f *Form) Priority() task.Priority {
	return f.priority
}

func (f *Form) Bucket() task.Bucket {
	return f.bucket
}

func (f *Form) ReadOnly() bool {
	return f.mode == ModeCompleted
}

func (f *Form) DueDate() (time.Time, bool) {
	return f.due, !f.due.IsZero()
}

func (f *Form) SetTitle(v string) {
	if f.ReadOnly() {
		return
	}
	f.title = v
}

func (f *Form) SetDescription(v string) {
	if f.ReadOnly() {
		return
	}
	f.description = v
}

func (f *Form) SetPriority(p task.Priority) error {
	if f.ReadOnly() {
		return nil
	}
	if !p.Valid() {
		return &task.FieldError{Field: "priority", Reason: "unknown priority " + string(p)}
	}
	f.priority = p
	return nil
}

// CyclePriority steps through task.Priorities by delta, wrapping at both
// ends. From the unset priority it lands on the first or last entry.
func (f *Form) CyclePriority(delta int) {
	if f.ReadOnly() || delta == 0 {
		return
	}
	n := len(task.Priorities)
	cur := -1
	for i, p := range task.Priorities {
		if p == f.priority {
			cur = i
		}
	}
	var next int
	switch {
	case cur < 0 && delta > 0:
		next = 0
	case cur < 0:
		next = n - 1
	default:
		next = ((cur+delta)%n + n) % n
	}
	f.priority = task.Priorities[next]
}

// ChooseBucket sets the bucket. Leaving planned drops the picked date.
func (f *Form) ChooseBucket(b task.Bucket) error {
	if f.ReadOnly() {
		return nil
	}
	if !b.Valid() {
		return fmt.Errorf("choose bucket: %w %q", task.ErrInvalidBucket, b)
	}
	f.bucket = b
	if b != task.BucketPlanned {
		f.due = time.Time{}
	}
	return nil
}

// PickDate stores the calendar day of d and moves the form to planned.
func (f *Form) PickDate(d time.Time) {
	if f.ReadOnly() || d.IsZero() {
		return
	}
	y, m, day := d.Date()
	f.due = time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	f.bucket = task.BucketPlanned
}

func (f *Form) ClearDate() {
	if f.ReadOnly() {
		return
	}
	f.due = time.Time{}
}

func (f *Form) Validate() error {
	switch f.mode {
	case ModeCompleted:
		return nil
	case ModeCreate:
		if strings.TrimSpace(f.title) == "" {
			return &task.FieldError{Field: "title", Reason: "must not be empty"}
		}
		if !f.bucket.Valid() {
			return &task.FieldError{Field: "bucket", Reason: "must be chosen"}
		}
	case ModeEdit:
		if strings.TrimSpace(f.title) == "" {
			return &task.FieldError{Field: "title", Reason: "must not be empty"}
		}
	}
	return nil
}

// CanCommit reports whether the commit button is enabled.
func (f *Form) CanCommit() bool {
	return f.Validate() == nil
}

type Action int

const (
	ActionCreated Action = iota + 1
	ActionUpdated
	ActionDeleted
)

func (a Action) String() string {
	switch a {
	case ActionCreated:
		return "created"
	case ActionUpdated:
		return "updated"
	case ActionDeleted:
		return "deleted"
	}
	return "none"
}

// Mutator is the part of the store a form commits through.
type Mutator interface {
	Create(draft task.Task) (task.Task, error)
	Update(id task.ID, patch task.Patch) (task.Task, error)
	Delete(id task.ID) error
}

type Result struct {
	Action Action
	Task   task.Task
}

// Commit applies the form to m. Create adds a new task, edit patches the
// loaded one and completed deletes it.
func (f *Form) Commit(m Mutator) (Result, error) {
	if err := f.Validate(); err != nil {
		return Result{}, err
	}

	switch f.mode {
	case ModeCreate:
		created, err := m.Create(f.draft())
		if err != nil {
			return Result{}, err
		}
		return Result{Action: ActionCreated, Task: created}, nil
	case ModeEdit:
		updated, err := m.Update(f.id, f.patch())
		if err != nil {
			return Result{}, err
		}
		return Result{Action: ActionUpdated, Task: updated}, nil
	case ModeCompleted:
		if err := m.Delete(f.id); err != nil {
			return Result{}, err
		}
		return Result{Action: ActionDeleted, Task: task.Task{ID: f.id}}, nil
	}
	return Result{}, fmt.Errorf("commit form: unknown mode %s", f.mode)
}

func (f *Form) draft() task.Task {
	t := task.Task{
		Title:       strings.TrimSpace(f.title),
		Priority:    f.priority,
		Description: f.description,
		Bucket:      f.bucket,
	}
	if !f.due.IsZero() {
		d := f.due
		t.DueDate = &d
	}
	return t
}

func (f *Form) patch() task.Patch {
	title := strings.TrimSpace(f.title)
	priority := f.priority
	description := f.description
	bucket := f.bucket
	due := f.due
	return task.Patch{
		Title:       &title,
		Priority:    &priority,
		Description: &description,
		Bucket:      &bucket,
		DueDate:     &due,
	}
}
