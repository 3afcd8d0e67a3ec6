// Package taskheap is an array-backed binary min-heap of tasks keyed on priority.
//
// Only Priority is compared; equal priorities come out in whatever order the
// heap mechanics produce. The heap holds pointers into a tasks.Store and is
// meant to be rebuilt from the store's incomplete set after every mutation.
package taskheap

import "taskweaver/tasks"

// Heap is a 0-indexed binary min-heap. The zero value is an empty heap.
type Heap struct {
	items []*tasks.Task
}

// New returns an empty heap
func New() *Heap {
	return &Heap{items: []*tasks.Task{}}
}

// FromTasks returns a heap built from ts in O(n)
func FromTasks(ts []*tasks.Task) *Heap {
	h := New()
	h.BuildHeap(ts)
	return h
}

// Insert adds a task in O(log n)
func (h *Heap) Insert(t *tasks.Task) {
	h.items = append(h.items, t)
	h.siftUp(len(h.items) - 1)
}

// ExtractMin removes and returns the most urgent task.
// It returns false when the heap is empty.
func (h *Heap) ExtractMin() (*tasks.Task, bool) {
	if len(h.items) == 0 {
		return nil, false
	}

	top := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items[last] = nil
	h.items = h.items[:last]

	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return top, true
}

// Peek returns the most urgent task without removing it
func (h *Heap) Peek() (*tasks.Task, bool) {
	if len(h.items) == 0 {
		return nil, false
	}
	return h.items[0], true
}

// BuildHeap replaces the contents with ts and restores heap order by sifting
// down from the last parent to the root. ts itself is not reordered.
func (h *Heap) BuildHeap(ts []*tasks.Task) {
	h.items = make([]*tasks.Task, len(ts))
	copy(h.items, ts)
	for i := len(h.items)/2 - 1; i >= 0; i-- {
		h.siftDown(i)
	}
}

// Drain empties the heap, returning its tasks in ascending priority order
func (h *Heap) Drain() []*tasks.Task {
	out := make([]*tasks.Task, 0, len(h.items))
	for {
		t, ok := h.ExtractMin()
		if !ok {
			return out
		}
		out = append(out, t)
	}
}

// IsEmpty reports whether the heap has no tasks
func (h *Heap) IsEmpty() bool {
	return len(h.items) == 0
}

// Size returns the number of tasks
func (h *Heap) Size() int {
	return len(h.items)
}

// Tasks returns a copy of the backing array. This is heap order, not
// priority order.
func (h *Heap) Tasks() []*tasks.Task {
	out := make([]*tasks.Task, len(h.items))
	copy(out, h.items)
	return out
}

func (h *Heap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].Priority >= h.items[parent].Priority {
			break
		}
		h.swap(i, parent)
		i = parent
	}
}

func (h *Heap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left, right := 2*i+1, 2*i+2

		if left < n && h.items[left].Priority < h.items[smallest].Priority {
			smallest = left
		}
		if right < n && h.items[right].Priority < h.items[smallest].Priority {
			smallest = right
		}
		if smallest == i {
			return
		}

		h.swap(i, smallest)
		i = smallest
	}
}

func (h *Heap) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}
