package highlight

import (
	"sort"
	"sync"

	"github.com/gompdf/folio/internal/layout"
)

// Set is an ordered collection of highlightings, safe for concurrent use.
// Entries are kept sorted by start, then end.
type Set struct {
	mu    sync.RWMutex
	items []*Highlighting
}

// NewSet creates an empty set
func NewSet() *Set {
	return &Set{}
}

func (s *Set) insert(h *Highlighting) {
	i := sort.Search(len(s.items), func(i int) bool {
		o := s.items[i]
		if c := o.Start.Compare(h.Start); c != 0 {
			return c > 0
		}
		return o.End.Compare(h.End) > 0
	})
	s.items = append(s.items, nil)
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = h
}

// Add inserts h
func (s *Set) Add(h *Highlighting) {
	if h == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insert(h)
}

// AddAll inserts every highlighting of hs
func (s *Set) AddAll(hs []*Highlighting) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range hs {
		if h != nil {
			s.insert(h)
		}
	}
}

// Remove deletes h and reports whether it was present
func (s *Set) Remove(h *Highlighting) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.items {
		if o == h {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveKind deletes every highlighting of kind and reports whether any
// was removed
func (s *Set) RemoveKind(kind Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, h := range s.items {
		if h.Kind != kind {
			kept = append(kept, h)
		}
	}
	removed := len(kept) != len(s.items)
	clear(s.items[len(kept):])
	s.items = kept
	return removed
}

// Clear deletes everything and reports whether the set was not empty
func (s *Set) Clear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	had := len(s.items) > 0
	s.items = nil
	return had
}

// Len returns the number of highlightings
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// All returns a snapshot of the highlightings in order
func (s *Set) All() []*Highlighting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Highlighting, len(s.items))
	copy(out, s.items)
	return out
}

// Intersecting returns the highlightings overlapping the page [start, end)
func (s *Set) Intersecting(start, end layout.WordCursor) []*Highlighting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Highlighting
	for _, h := range s.items {
		if h.Intersects(start, end) {
			out = append(out, h)
		}
	}
	return out
}

// At returns the first highlighting whose region soul is s, if any
func (s *Set) At(soul layout.Soul) *Highlighting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.items {
		if h.IntersectsRegion(soul) {
			return h
		}
	}
	return nil
}
