package timing

import (
	"container/heap"
	"sync"
)

// scheduledEventQueue is a min-heap on (Time, push order).
type scheduledEventQueue struct {
	mu     sync.Mutex
	events eventHeap
	pushed uint64
}

func newScheduledEventQueue() *scheduledEventQueue {
	return &scheduledEventQueue{}
}

func (q *scheduledEventQueue) Push(evt *ScheduledEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()

	evt.seq = q.pushed
	q.pushed++
	heap.Push(&q.events, evt)
}

// Pop returns nil on an empty queue.
func (q *scheduledEventQueue) Pop() *ScheduledEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return nil
	}

	return heap.Pop(&q.events).(*ScheduledEvent)
}

func (q *scheduledEventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.events)
}

type eventHeap []*ScheduledEvent

func (h eventHeap) Len() int      { return len(h) }
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h eventHeap) Less(i, j int) bool {
	if h[i].Time == h[j].Time {
		return h[i].seq < h[j].seq
	}

	return h[i].Time < h[j].Time
}

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(*ScheduledEvent))
}

func (h *eventHeap) Pop() any {
	n := len(*h) - 1
	evt := (*h)[n]
	(*h)[n] = nil
	*h = (*h)[:n]

	return evt
}
