package util

// Set keeps values in insertion order.
type Set[V comparable] struct {
	values map[V]bool
	order  []V
}

func NewSet[V comparable](values ...V) *Set[V] {
	set := &Set[V]{
		values: map[V]bool{},
	}
	for _, value := range values {
		set.Add(value)
	}
	return set
}

// Add returns false if the value already existed.
func (s *Set[V]) Add(value V) bool {
	if s.values[value] {
		return false
	}
	s.values[value] = true
	s.order = append(s.order, value)
	return true
}

func (s *Set[V]) Remove(value V) {
	if !s.values[value] {
		return
	}
	delete(s.values, value)
	for i, v := range s.order {
		if v == value {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Set[V]) Contains(value V) bool {
	return s.values[value]
}

func (s *Set[V]) Len() int {
	return len(s.order)
}

func (s *Set[V]) Values() []V {
	values := make([]V, len(s.order))
	copy(values, s.order)
	return values
}

func (s *Set[V]) Clear() {
	s.values = map[V]bool{}
	s.order = nil
}
