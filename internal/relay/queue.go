// Package relay carries process output from the reader goroutine to the
// UI-side drain loop. The queue is unbounded so the producer never blocks on
// a slow consumer; the consumer drains it non-blockingly on a fixed interval.
package relay

import "sync"

// Item is either a Chunk of process output or the terminal Completion.
type Item interface {
	isRelayItem()
}

// Chunk is a fragment of merged stdout/stderr output, usually one line.
type Chunk struct {
	Text string
}

// Completion is the last item of an invocation, carrying the exit code.
// Exactly one is pushed per runner invocation, after every Chunk.
type Completion struct {
	Code int
}

func (Chunk) isRelayItem()      {}
func (Completion) isRelayItem() {}

// Queue is a FIFO for a single producer and a single consumer.
type Queue struct {
	mu    sync.Mutex
	items []Item
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an item. It never blocks.
func (q *Queue) Push(item Item) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()
}

// PushChunk is shorthand for Push(Chunk{Text: text}).
func (q *Queue) PushChunk(text string) {
	q.Push(Chunk{Text: text})
}

// Drain removes and returns everything currently queued, in push order.
// It returns nil when the queue is empty and never blocks.
func (q *Queue) Drain() []Item {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	drained := q.items
	q.items = nil
	return drained
}

// Len reports how many items are currently queued.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
