package ds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Peek(t *testing.T) {
	type T struct {
		Value1 int
		Value2 int
	}
	stack := NewStack[T]()
	stack.Push(
		T{
			Value1: 1,
			Value2: 2,
		},
	)

	last := stack.Peek()

	assert.Equal(t, last.Value1, 1)
	assert.Equal(t, last.Value2, 2)
}

func TestStack_PushPop(t *testing.T) {
	stack := NewStack[string]()
	assert.True(t, stack.IsEmpty())

	stack.Push("a")
	stack.Push("b")
	assert.Equal(t, 2, stack.Len())

	assert.Equal(t, "b", stack.Pop())
	assert.Equal(t, "a", stack.Pop())
	assert.True(t, stack.IsEmpty())
}

func TestStack_Top(t *testing.T) {
	stack := NewStack[[]int]()
	stack.Push([]int{1, 2, 3})

	top := stack.Top()
	*top = (*top)[:1]

	assert.Equal(t, []int{1}, stack.Peek())
}

func TestStack_Items(t *testing.T) {
	stack := NewStack[int]()
	stack.Push(1)
	stack.Push(2)

	items := stack.Items()
	assert.Equal(t, []int{1, 2}, items)

	items[0] = 42
	stack.Pop()
	assert.Equal(t, 1, stack.Peek())
}
