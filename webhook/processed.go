package webhook

import "sync"

// maxProcessedEvents bounds the idempotency set.
const maxProcessedEvents = 1000

// processedSet is a bounded, process-local record of event ids already acted
// upon. It is a best-effort optimization for the sender's retry window; the
// processor's own event-id deduplication remains the backstop across
// instances. Nothing is persisted.
type processedSet struct {
	lock  sync.Mutex
	seen  map[string]struct{}
	order []string
	bound int
}

func newProcessedSet(bound int) *processedSet {
	return &processedSet{
		seen:  make(map[string]struct{}, bound),
		bound: bound,
	}
}

// mark records the id and reports whether it was newly seen. Once the bound
// is reached, the oldest id is evicted before the new one is inserted, so
// the set never exceeds its bound.
func (s *processedSet) mark(id string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.seen[id]; ok {
		return false
	}

	if len(s.order) >= s.bound {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.seen, oldest)
	}

	s.seen[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

func (s *processedSet) size() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return len(s.seen)
}
