// Package pqueue provides the binary min-heap the pathfinder uses as its open set.
package pqueue

type entry[T any] struct {
	item     T
	priority float64
}

// MinHeap orders items by ascending priority. Equal priorities come out in
// whatever order the heap structure yields; callers must not rely on it.
// The zero value is ready to use.
type MinHeap[T any] struct {
	heap []entry[T]
}

func New[T any]() *MinHeap[T] {
	return &MinHeap[T]{}
}

func (h *MinHeap[T]) Empty() bool { return len(h.heap) == 0 }
func (h *MinHeap[T]) Len() int    { return len(h.heap) }

func (h *MinHeap[T]) Insert(item T, priority float64) {
	h.heap = append(h.heap, entry[T]{item: item, priority: priority})
	h.siftUp(len(h.heap) - 1)
}

// Pop removes and returns the lowest-priority item. ok is false when empty.
func (h *MinHeap[T]) Pop() (item T, ok bool) {
	if h.Empty() {
		return item, false
	}
	top := h.heap[0]
	last := len(h.heap) - 1
	end := h.heap[last]
	h.heap = h.heap[:last]
	if !h.Empty() {
		h.heap[0] = end
		h.siftDown(0)
	}
	return top.item, true
}

// Contains scans for an item equal to the given one under eq.
func (h *MinHeap[T]) Contains(item T, eq func(a, b T) bool) bool {
	return h.indexOf(item, eq) >= 0
}

// Update lowers the priority of an existing item and restores heap order.
// It only sifts up: A* relaxation never raises a cost. Missing items are ignored.
func (h *MinHeap[T]) Update(item T, priority float64, eq func(a, b T) bool) {
	i := h.indexOf(item, eq)
	if i < 0 {
		return
	}
	h.heap[i].priority = priority
	h.siftUp(i)
}

// indexOf is a linear scan. Open sets stay small (bounded by the search
// budget), so an item→slot index map isn't worth maintaining.
func (h *MinHeap[T]) indexOf(item T, eq func(a, b T) bool) int {
	for i := range h.heap {
		if eq(h.heap[i].item, item) {
			return i
		}
	}
	return -1
}

func (h *MinHeap[T]) siftUp(i int) {
	e := h.heap[i]
	for i > 0 {
		parent := (i - 1) / 2
		if e.priority >= h.heap[parent].priority {
			break
		}
		h.heap[i] = h.heap[parent]
		h.heap[parent] = e
		i = parent
	}
}

func (h *MinHeap[T]) siftDown(i int) {
	n := len(h.heap)
	e := h.heap[i]
	for {
		left, right := 2*i+1, 2*i+2
		swap := -1
		if left < n && h.heap[left].priority < e.priority {
			swap = left
		}
		if right < n {
			if (swap == -1 && h.heap[right].priority < e.priority) ||
				(swap != -1 && h.heap[right].priority < h.heap[left].priority) {
				swap = right
			}
		}
		if swap == -1 {
			return
		}
		h.heap[i] = h.heap[swap]
		h.heap[swap] = e
		i = swap
	}
}
