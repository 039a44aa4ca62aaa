package runner

import (
	"context"
	"time"

	"organizer-gui/internal/relay"
)

// DefaultDrainInterval matches the original front-end's output poll cadence.
const DefaultDrainInterval = 100 * time.Millisecond

// DrainHooks receive drained output. Append is called once per chunk in
// queue order; OnDone fires exactly once, strictly after every chunk of the
// invocation has been appended. Callers that render on a UI thread marshal
// inside the hooks.
type DrainHooks struct {
	Append func(text string)
	OnDone func(code int)
}

// Drainer empties a relay queue on a fixed interval without ever blocking
// on the producer.
type Drainer struct {
	queue    *relay.Queue
	interval time.Duration
	hooks    DrainHooks
	finished bool
	code     int
}

func NewDrainer(queue *relay.Queue, interval time.Duration, hooks DrainHooks) *Drainer {
	if queue == nil {
		panic("runner.NewDrainer: queue must not be nil")
	}
	if interval <= 0 {
		interval = DefaultDrainInterval
	}
	return &Drainer{queue: queue, interval: interval, hooks: hooks}
}

// Tick drains everything currently queued and reports whether the completion
// item has been observed. An empty queue is a normal tick, not an error.
// Tick is idempotent after completion.
func (d *Drainer) Tick() bool {
	if d.finished {
		return true
	}
	for _, item := range d.queue.Drain() {
		switch v := item.(type) {
		case relay.Chunk:
			if d.hooks.Append != nil {
				d.hooks.Append(v.Text)
			}
		case relay.Completion:
			d.finished = true
			d.code = v.Code
			if d.hooks.OnDone != nil {
				d.hooks.OnDone(v.Code)
			}
		}
	}
	return d.finished
}

// Code returns the exit code once the completion item has been drained.
func (d *Drainer) Code() (int, bool) {
	return d.code, d.finished
}

// RunContext polls the queue until completion or cancellation. The loop
// sleeps between ticks instead of blocking on the queue, so a cancelled
// context is honored within one interval.
func (d *Drainer) RunContext(ctx context.Context) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		if d.Tick() {
			return d.code, nil
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-ticker.C:
		}
	}
}
