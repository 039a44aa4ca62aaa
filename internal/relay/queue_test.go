package relay

import (
	"fmt"
	"sync"
	"testing"
)

func TestQueuePreservesOrder(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 5; i++ {
		q.PushChunk(fmt.Sprintf("line %d\n", i))
	}
	q.Push(Completion{Code: 0})

	items := q.Drain()
	if len(items) != 6 {
		t.Fatalf("Drain() returned %d items, want 6", len(items))
	}
	for i := 0; i < 5; i++ {
		chunk, ok := items[i].(Chunk)
		if !ok {
			t.Fatalf("items[%d] = %T, want Chunk", i, items[i])
		}
		if want := fmt.Sprintf("line %d\n", i); chunk.Text != want {
			t.Fatalf("items[%d].Text = %q, want %q", i, chunk.Text, want)
		}
	}
	if _, ok := items[5].(Completion); !ok {
		t.Fatalf("items[5] = %T, want Completion", items[5])
	}
}

func TestQueueDrainEmptiesAndNeverBlocks(t *testing.T) {
	q := NewQueue()
	if items := q.Drain(); items != nil {
		t.Fatalf("Drain() on empty queue = %v, want nil", items)
	}
	q.PushChunk("one\n")
	if got := len(q.Drain()); got != 1 {
		t.Fatalf("Drain() returned %d items, want 1", got)
	}
	if q.Len() != 0 {
		t.Fatalf("Len() after drain = %d, want 0", q.Len())
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()
	const producers = 8
	const perProducer = 100

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.PushChunk(fmt.Sprintf("p%d-%d\n", p, i))
			}
		}(p)
	}

	collected := 0
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for {
		collected += len(q.Drain())
		select {
		case <-done:
			collected += len(q.Drain())
			if collected != producers*perProducer {
				t.Errorf("collected %d items, want %d", collected, producers*perProducer)
			}
			return
		default:
		}
	}
}
