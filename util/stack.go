package util

// Stack is a simple LIFO stack.  The zero value is an empty stack ready to use.
type Stack[T any] struct {
	items []T
}

// Push pushes an item onto the top of the stack.
func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

// Pop removes and returns the top item of the stack.  The boolean is false if
// the stack was empty.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}

	item := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]
	return item, true
}

// Peek returns the top item of the stack without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}

	return s.items[len(s.items)-1], true
}

// Len returns the number of items on the stack.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// IsEmpty returns whether the stack holds no items.
func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// Clear discards every item on the stack.
func (s *Stack[T]) Clear() {
	s.items = nil
}
