package search

import (
	"context"
	"sync"
)

type inflight struct {
	gen    uint64
	cancel context.CancelFunc
}

// Supersede tracks the latest search per key. Starting a search cancels the
// previous one under the same key so its results can be dropped.
type Supersede struct {
	mu      sync.Mutex
	next    uint64
	current map[string]inflight
}

// NewSupersede returns an empty registry.
func NewSupersede() *Supersede {
	return &Supersede{current: make(map[string]inflight)}
}

// Begin registers a new search for key and cancels the one it replaces. The
// returned context is cancelled when a newer search begins or done is called.
func (s *Supersede) Begin(ctx context.Context, key string) (searchCtx context.Context, gen uint64, done func()) {
	searchCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.next++
	gen = s.next
	if previous, ok := s.current[key]; ok {
		previous.cancel()
	}
	s.current[key] = inflight{gen: gen, cancel: cancel}
	s.mu.Unlock()

	done = func() {
		s.mu.Lock()
		if entry, ok := s.current[key]; ok && entry.gen == gen {
			delete(s.current, key)
		}
		s.mu.Unlock()
		cancel()
	}
	return searchCtx, gen, done
}

// IsCurrent reports whether gen is still the latest search for key.
func (s *Supersede) IsCurrent(key string, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.current[key]
	return ok && entry.gen == gen
}
