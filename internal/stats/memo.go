package stats

import "buckets/internal/task"

// Source is anything versioned that can list tasks; store.Snapshot is one.
type Source interface {
	Version() uint64
	Tasks() []task.Task
}

// Memo caches the Overview of the last version it saw. It is not safe for
// concurrent use.
type Memo struct {
	valid    bool
	version  uint64
	overview []Summary
	computes int
}

func (m *Memo) Overview(src Source) []Summary {
	if !m.valid || m.version != src.Version() {
		m.overview = Overview(src.Tasks())
		m.version = src.Version()
		m.valid = true
		m.computes++
	}
	out := make([]Summary, len(m.overview))
	copy(out, m.overview)
	return out
}

// Get returns the cached stats of one bucket.
func (m *Memo) Get(src Source, bucket task.Bucket) BucketStats {
	for _, s := range m.Overview(src) {
		if s.Bucket == bucket {
			return s.BucketStats
		}
	}
	return BucketStats{}
}
