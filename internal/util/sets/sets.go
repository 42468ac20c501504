// Package sets provides small generic set types.
package sets

// Ordered is a set that remembers insertion order. Re-adding a present
// value keeps its original position. It is not safe for concurrent use.
type Ordered[T comparable] struct {
	index  map[T]int
	values []T
}

// NewOrdered creates an ordered set holding vals, duplicates dropped.
func NewOrdered[T comparable](vals ...T) *Ordered[T] {
	s := &Ordered[T]{index: make(map[T]int, len(vals))}
	for _, v := range vals {
		s.Add(v)
	}
	return s
}

// Add appends v unless it is already present. It reports whether v was added.
func (s *Ordered[T]) Add(v T) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = len(s.values)
	s.values = append(s.values, v)
	return true
}

// Has returns true if v is present.
func (s *Ordered[T]) Has(v T) bool {
	_, ok := s.index[v]
	return ok
}

// Delete removes v and reports whether it was present.
func (s *Ordered[T]) Delete(v T) bool {
	i, ok := s.index[v]
	if !ok {
		return false
	}
	delete(s.index, v)
	s.values = append(s.values[:i], s.values[i+1:]...)
	for _, moved := range s.values[i:] {
		s.index[moved]--
	}
	return true
}

// Values returns a copy of the members in insertion order.
func (s *Ordered[T]) Values() []T {
	return append([]T(nil), s.values...)
}

// Len returns the number of members.
func (s *Ordered[T]) Len() int { return len(s.values) }
