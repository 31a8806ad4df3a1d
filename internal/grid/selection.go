package grid

import "github.com/emirpasic/gods/sets/linkedhashset"

// Selection is a set of record keys in the order they were chosen. It is only
// changed by explicit calls and knows nothing about filtering or paging.
type Selection[K comparable] struct {
	set *linkedhashset.Set
}

// NewSelection returns an empty selection.
func NewSelection[K comparable]() *Selection[K] {
	return &Selection[K]{set: linkedhashset.New()}
}

// Toggle removes k if present, otherwise adds it. It reports whether k is
// selected afterwards.
func (s *Selection[K]) Toggle(k K) bool {
	if s.set.Contains(k) {
		s.set.Remove(k)
		return false
	}
	s.set.Add(k)
	return true
}

// SelectAll adds every key. Keys already selected keep their position.
func (s *Selection[K]) SelectAll(keys ...K) {
	for _, k := range keys {
		s.set.Add(k)
	}
}

// Clear empties the selection.
func (s *Selection[K]) Clear() {
	s.set.Clear()
}

// Has reports membership.
func (s *Selection[K]) Has(k K) bool {
	return s.set.Contains(k)
}

// Len returns the number of selected keys.
func (s *Selection[K]) Len() int {
	return s.set.Size()
}

// Keys returns the selected keys in selection order.
func (s *Selection[K]) Keys() []K {
	values := s.set.Values()
	out := make([]K, 0, len(values))
	for _, v := range values {
		out = append(out, v.(K))
	}
	return out
}
