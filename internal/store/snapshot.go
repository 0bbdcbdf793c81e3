package store

import "buckets/internal/task"

// Snapshot is an immutable view of the collection. The store never writes
// to a slice it has published, and accessors hand out copies.
type Snapshot struct {
	version uint64
	tasks   []task.Task
}

func (s Snapshot) Version() uint64 {
	return s.version
}

func (s Snapshot) Len() int {
	return len(s.tasks)
}

// Tasks returns the collection newest first.
func (s Snapshot) Tasks() []task.Task {
	out := make([]task.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

func (s Snapshot) Get(id task.ID) (task.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return task.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

func (s Snapshot) index(id task.ID) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
