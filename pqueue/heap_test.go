package pqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeapOrdersByPriority(t *testing.T) {
	h := New[string]()
	assert.True(t, h.Empty(), "new heap should be empty")

	h.Insert("task1", 5)
	h.Insert("task2", 2)
	h.Insert("task3", 7)

	assert.False(t, h.Empty())
	assert.Equal(t, 3, h.Len())

	for _, want := range []string{"task2", "task1", "task3"} {
		got, ok := h.Pop()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	assert.True(t, h.Empty(), "heap should be empty after extracting all items")
}

func TestMinHeapInsertionOrderIndependent(t *testing.T) {
	orders := [][]float64{
		{5, 2, 7},
		{7, 5, 2},
		{2, 7, 5},
	}
	for _, order := range orders {
		var h MinHeap[float64]
		for _, p := range order {
			h.Insert(p, p)
		}
		var got []float64
		for !h.Empty() {
			p, _ := h.Pop()
			got = append(got, p)
		}
		assert.Equal(t, []float64{2, 5, 7}, got, "insertion order %v", order)
	}
}

func TestMinHeapPopEmpty(t *testing.T) {
	h := New[int]()
	v, ok := h.Pop()
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestMinHeapManyItems(t *testing.T) {
	h := New[int]()
	for _, p := range []int{9, 3, 14, 1, 8, 8, 0, 12, 5, 3, 11} {
		h.Insert(p, float64(p))
	}
	prev := -1
	for !h.Empty() {
		p, _ := h.Pop()
		assert.GreaterOrEqual(t, p, prev)
		prev = p
	}
}

type cell struct{ x, y int }

func sameCell(a, b cell) bool { return a == b }

func TestMinHeapContainsAndUpdate(t *testing.T) {
	h := New[cell]()
	h.Insert(cell{0, 0}, 10)
	h.Insert(cell{1, 0}, 4)
	h.Insert(cell{2, 0}, 6)

	assert.True(t, h.Contains(cell{2, 0}, sameCell))
	assert.False(t, h.Contains(cell{3, 3}, sameCell))

	h.Update(cell{0, 0}, 1, sameCell)
	first, _ := h.Pop()
	assert.Equal(t, cell{0, 0}, first, "updated entry should now be the minimum")

	// Unknown items are ignored.
	h.Update(cell{9, 9}, 0, sameCell)
	assert.Equal(t, 2, h.Len())

	next, _ := h.Pop()
	assert.Equal(t, cell{1, 0}, next)
}
