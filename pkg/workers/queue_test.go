package workers

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestQueueFIFO(t *testing.T) {
	q := NewTaskQueue()

	tasks := make([]*testTask, 5)
	for i := range tasks {
		tasks[i] = &testTask{name: string(rune('a' + i))}
		q.Enqueue(tasks[i])
	}

	for i := range tasks {
		task, shutdown := q.Dequeue()
		if shutdown {
			t.Fatalf("Unexpected shutdown marker at %d", i)
		}
		if task != tasks[i] {
			t.Fatalf("FIFO violated at %d: got %s, want %s", i, task.Describe(), tasks[i].name)
		}
	}
	if q.Len() != 0 {
		t.Errorf("Expected empty queue, got %d", q.Len())
	}
}

func TestQueueShutdownMarker(t *testing.T) {
	q := NewTaskQueue()
	q.Enqueue(&testTask{name: "work"})
	q.EnqueueShutdown()

	task, shutdown := q.Dequeue()
	if shutdown || task == nil {
		t.Fatal("First element should be the task")
	}

	task, shutdown = q.Dequeue()
	if !shutdown {
		t.Fatal("Second element should be the shutdown marker")
	}
	if task != nil {
		t.Error("Shutdown marker should carry no task")
	}
}

func TestQueueDequeueBlocksUntilEnqueue(t *testing.T) {
	q := NewTaskQueue()

	got := make(chan Task, 1)
	go func() {
		task, _ := q.Dequeue()
		got <- task
	}()

	select {
	case <-got:
		t.Fatal("Dequeue returned from an empty queue")
	case <-time.After(50 * time.Millisecond):
	}

	want := &testTask{name: "late"}
	q.Enqueue(want)

	select {
	case task := <-got:
		if task != want {
			t.Errorf("Got wrong task: %v", task)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Dequeue did not wake after enqueue")
	}
}

func TestQueueEnqueueNeverBlocks(t *testing.T) {
	q := NewTaskQueue()

	// No consumer exists; a bounded queue would wedge here
	const n = 10000
	done := make(chan struct{})
	go func() {
		for i := 0; i < n; i++ {
			q.Enqueue(&testTask{name: "bulk"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Enqueue blocked")
	}
	if q.Len() != n {
		t.Errorf("Expected %d queued, got %d", n, q.Len())
	}
}

func TestQueueConcurrentProducersConsumers(t *testing.T) {
	q := NewTaskQueue()

	const producers = 4
	const perProducer = 250
	const consumers = 4

	var produced sync.WaitGroup
	for i := 0; i < producers; i++ {
		produced.Add(1)
		go func() {
			defer produced.Done()
			for j := 0; j < perProducer; j++ {
				q.Enqueue(&testTask{name: "mixed"})
			}
		}()
	}

	var consumed int64
	var drained sync.WaitGroup
	for i := 0; i < consumers; i++ {
		drained.Add(1)
		go func() {
			defer drained.Done()
			for {
				_, shutdown := q.Dequeue()
				if shutdown {
					return
				}
				atomic.AddInt64(&consumed, 1)
			}
		}()
	}

	produced.Wait()
	for i := 0; i < consumers; i++ {
		q.EnqueueShutdown()
	}
	drained.Wait()

	if got := atomic.LoadInt64(&consumed); got != producers*perProducer {
		t.Errorf("Expected %d consumed, got %d", producers*perProducer, got)
	}
	if q.Len() != 0 {
		t.Errorf("Expected empty queue, got %d", q.Len())
	}
}

func BenchmarkQueueEnqueueDequeue(b *testing.B) {
	q := NewTaskQueue()
	task := &testTask{name: "bench"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Enqueue(task)
		q.Dequeue()
	}
}
