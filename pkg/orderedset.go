// Package pkg is a package that provides utilities for pintrace.
package pkg

// OrderedSet is a generic set that remembers first-insertion order.
type OrderedSet[T comparable] interface {
	Len() int
	Add(item T) bool
	Has(item T) bool
	Items() []T
}

type orderedSetImpl[T comparable] struct {
	index map[T]struct{}
	items []T
}

// NewOrderedSet creates an empty OrderedSet.
func NewOrderedSet[T comparable]() OrderedSet[T] {
	return &orderedSetImpl[T]{index: make(map[T]struct{})}
}

// Len implements OrderedSet.
func (s *orderedSetImpl[T]) Len() int {
	return len(s.items)
}

// Add implements OrderedSet. It reports whether the item was newly added.
func (s *orderedSetImpl[T]) Add(item T) bool {
	if _, ok := s.index[item]; ok {
		return false
	}

	s.index[item] = struct{}{}
	s.items = append(s.items, item)

	return true
}

// Has implements OrderedSet.
func (s *orderedSetImpl[T]) Has(item T) bool {
	_, ok := s.index[item]
	return ok
}

// Items implements OrderedSet. The returned slice is a copy in insertion order.
func (s *orderedSetImpl[T]) Items() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)

	return out
}
