package eventlog

import (
	"context"
	"slices"
	"sync"

	"shopfloor/internal/storage"
)

// MemoryStore keeps the log in process memory.
//
// With NonAtomic set, AppendEvent behaves like the spreadsheet backend it
// replaces: read the whole table, add one row, write the whole table back.
// Two writers interleaving between the read and the write lose one of the
// rows (last writer wins). The default mode appends under a lock.
type MemoryStore struct {
	NonAtomic bool

	mu     sync.Mutex
	events []storage.Event
	seq    int64

	// between runs after the read of a non-atomic append, before its write.
	between func()
}

func NewMemoryStore(events ...storage.Event) *MemoryStore {
	s := &MemoryStore{}
	for _, ev := range events {
		s.seq++
		ev.Seq = s.seq
		s.events = append(s.events, ev)
	}
	return s
}

func (s *MemoryStore) AppendEvent(_ context.Context, ev storage.Event) error {
	if s.NonAtomic {
		return s.appendReadModifyWrite(ev)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasUID(s.events, ev.UID) {
		return nil
	}
	s.seq++
	ev.Seq = s.seq
	s.events = append(s.events, ev)

	return nil
}

func (s *MemoryStore) appendReadModifyWrite(ev storage.Event) error {
	s.mu.Lock()
	table := slices.Clone(s.events)
	s.mu.Unlock()

	if s.between != nil {
		s.between()
	}

	if s.hasUID(table, ev.UID) {
		return nil
	}
	ev.Seq = int64(len(table)) + 1
	table = append(table, ev)

	s.mu.Lock()
	s.events = table
	s.seq = int64(len(table))
	s.mu.Unlock()

	return nil
}

func (s *MemoryStore) hasUID(events []storage.Event, uid string) bool {
	if uid == "" {
		return false
	}
	return slices.ContainsFunc(events, func(e storage.Event) bool { return e.UID == uid })
}

func (s *MemoryStore) ListEvents(_ context.Context) ([]storage.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.events), nil
}

func (s *MemoryStore) ResetEvents(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = nil
	s.seq = 0

	return nil
}
