package ds

// Stack is a LIFO used to walk trees without recursion.
// Peek, Top and Pop panic on an empty stack; check IsEmpty first.
type Stack[T any] struct {
	slice []T
}

func NewStack[T any]() *Stack[T] {
	return &Stack[T]{
		slice: make([]T, 0),
	}
}

func (r *Stack[T]) Len() int {
	return len(r.slice)
}

func (r *Stack[T]) IsEmpty() bool {
	return len(r.slice) == 0
}

func (r *Stack[T]) Push(t T) T {
	r.slice = append(r.slice, t)
	return t
}

func (r *Stack[T]) Pop() T {
	last := r.slice[r.Len()-1]
	var zero T
	r.slice[r.Len()-1] = zero
	r.slice = r.slice[:r.Len()-1]
	return last
}

func (r *Stack[T]) Peek() T {
	return r.slice[r.Len()-1]
}

// Top returns a pointer to the last element, so it can be updated in place.
// The pointer is invalidated by the next Push.
func (r *Stack[T]) Top() *T {
	return &r.slice[r.Len()-1]
}

// Items returns a copy of the elements, bottom first.
func (r *Stack[T]) Items() []T {
	items := make([]T, len(r.slice))
	copy(items, r.slice)
	return items
}
