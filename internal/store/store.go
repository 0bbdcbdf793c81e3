// Package store holds the task collection. Every successful mutation
// publishes a new Snapshot; snapshots handed out earlier never change.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"buckets/internal/logger"
	"buckets/internal/task"
)

type Store struct {
	mu   sync.RWMutex
	snap Snapshot
	now  func() time.Time
	ids  IDSource
	seed []task.Task
}

type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDs replaces the default sequence used by Create.
func WithIDs(ids IDSource) Option {
	return func(s *Store) {
		s.ids = ids
	}
}

// WithTasks starts the store from an initial collection, newest first.
// Unlike Add, initial tasks may already be completed or updated.
func WithTasks(tasks []task.Task) Option {
	return func(s *Store) {
		s.seed = tasks
	}
}

func New(opts ...Option) (*Store, error) {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	initial := make([]task.Task, 0, len(s.seed))
	seen := make(map[task.ID]struct{}, len(s.seed))
	var maxID task.ID
	for _, t := range s.seed {
		if _, ok := seen[t.ID]; ok {
			return nil, fmt.Errorf("loading initial tasks: %w", task.DuplicateID(t.ID))
		}
		seen[t.ID] = struct{}{}
		if !t.Bucket.Valid() {
			return nil, fmt.Errorf("loading task %d: %w", t.ID, task.ErrInvalidBucket)
		}
		initial = append(initial, t.Normalized())
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	s.seed = nil
	s.snap = Snapshot{tasks: initial}

	if s.ids == nil {
		s.ids = NewSequence(maxID)
	}
	return s, nil
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Add inserts a fully formed task at the front of the collection as given.
// A zero CreatedAt is taken from the store clock; UpdatedAt is always
// cleared. Blank titles and due dates outside planned are rejected.
func (s *Store) Add(t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := t.Validate(); err != nil {
		return s.reject("add", t.ID, err)
	}
	if s.snap.index(t.ID) >= 0 {
		return s.reject("add", t.ID, task.DuplicateID(t.ID))
	}

	t = t.Clone()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}
	t.UpdatedAt = nil

	next := make([]task.Task, 0, len(s.snap.tasks)+1)
	next = append(next, t)
	next = append(next, s.snap.tasks...)
	s.publish(next)

	logger.Debug("store: task added",
		zap.Int64("task_id", int64(t.ID)),
		zap.String("bucket", string(t.Bucket)),
		zap.Uint64("version", s.snap.version))
	return nil
}

// Create trims the draft's title, assigns a fresh id and creation time and
// adds it. Invalid drafts are rejected before an id is drawn.
func (s *Store) Create(draft task.Task) (task.Task, error) {
	draft = draft.Normalized()
	if err := draft.Validate(); err != nil {
		return task.Task{}, s.reject("create", draft.ID, err)
	}
	draft.ID = s.ids.NextID()
	draft.CreatedAt = s.now()
	if err := s.Add(draft); err != nil {
		return task.Task{}, err
	}
	created, _ := s.Snapshot().Get(draft.ID)
	return created, nil
}

func (s *Store) Update(id task.ID, patch task.Patch) (task.Task, error) {
	return s.modify("update", id, func(t *task.Task) error {
		return t.Apply(patch)
	})
}

func (s *Store) ToggleCompleted(id task.ID) (task.Task, error) {
	return s.modify("toggle", id, func(t *task.Task) error {
		t.Completed = !t.Completed
		return nil
	})
}

func (s *Store) Delete(id task.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.snap.index(id)
	if i < 0 {
		return s.reject("delete", id, task.NotFound(id))
	}

	next := make([]task.Task, 0, len(s.snap.tasks)-1)
	next = append(next, s.snap.tasks[:i]...)
	next = append(next, s.snap.tasks[i+1:]...)
	s.publish(next)

	logger.Debug("store: task deleted",
		zap.Int64("task_id", int64(id)),
		zap.Uint64("version", s.snap.version))
	return nil
}

// modify copies the collection, lets fn change the matching task and stamps
// UpdatedAt. Nothing is published when fn fails.
func (s *Store) modify(op string, id task.ID, fn func(*task.Task) error) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.snap.index(id)
	if i < 0 {
		return task.Task{}, s.reject(op, id, task.NotFound(id))
	}

	t := s.snap.tasks[i].Clone()
	if err := fn(&t); err != nil {
		return task.Task{}, s.reject(op, id, err)
	}
	now := s.now()
	t.UpdatedAt = &now

	next := make([]task.Task, len(s.snap.tasks))
	copy(next, s.snap.tasks)
	next[i] = t
	s.publish(next)

	logger.Debug("store: task "+op,
		zap.Int64("task_id", int64(id)),
		zap.Bool("completed", t.Completed),
		zap.Uint64("version", s.snap.version))
	return t.Clone(), nil
}

func (s *Store) publish(tasks []task.Task) {
	s.snap = Snapshot{version: s.snap.version + 1, tasks: tasks}
}

func (s *Store) reject(op string, id task.ID, err error) error {
	level := zap.WarnLevel
	if errors.Is(err, task.ErrNotFound) {
		level = zap.InfoLevel
	}
	logger.Logger.Log(level, "store: "+op+" rejected",
		zap.Int64("task_id", int64(id)),
		zap.Error(err))
	return fmt.Errorf("%s task: %w", op, err)
}
