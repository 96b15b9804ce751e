package sets

// Set is a minimal generic hash set for comparable keys.
// Usage: s := sets.New("a", "b"); s.Add("c"); if s.Has("b") {...}
type Set[T comparable] map[T]struct{}

// New creates a set pre-populated with the provided values.
func New[T comparable](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// Union returns a new set holding every value of every input slice.
func Union[T comparable](lists ...[]T) Set[T] {
	s := make(Set[T])
	for _, l := range lists {
		for _, v := range l {
			s[v] = struct{}{}
		}
	}
	return s
}

// Add inserts value into the set.
func (s Set[T]) Add(v T) { s[v] = struct{}{} }

// Has returns true if v is present. Safe on a nil set.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Delete removes v if present.
func (s Set[T]) Delete(v T) { delete(s, v) }

// Len reports the number of values.
func (s Set[T]) Len() int { return len(s) }
