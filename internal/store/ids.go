package store

import (
	"sync/atomic"

	"buckets/internal/task"
)

type IDSource interface {
	NextID() task.ID
}

// Sequence hands out increasing ids starting after a given value.
type Sequence struct {
	last atomic.Int64
}

func NewSequence(after task.ID) *Sequence {
	s := &Sequence{}
	s.last.Store(int64(after))
	return s
}

func (s *Sequence) NextID() task.ID {
	return task.ID(s.last.Add(1))
}
