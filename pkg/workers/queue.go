package workers

import "sync"

// queueItem is the queue's element type: either a task to execute or the
// shutdown marker telling one worker to exit. The two variants are carried
// in separate fields so a legitimate task can never be mistaken for a
// shutdown signal.
type queueItem struct {
	task     Task
	shutdown bool
}

// TaskQueue is an unbounded FIFO of pending work. Enqueue never blocks
// beyond lock contention; Dequeue blocks until an element arrives. A bulk
// folder walk may enqueue thousands of tasks before any worker drains them.
type TaskQueue struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items []queueItem
}

// NewTaskQueue creates an empty queue.
func NewTaskQueue() *TaskQueue {
	q := &TaskQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Enqueue appends a task at the tail.
func (q *TaskQueue) Enqueue(task Task) {
	q.push(queueItem{task: task})
}

// EnqueueShutdown appends a shutdown marker at the tail. Exactly one worker
// will consume it and exit; tasks queued ahead of the marker are still
// drained first.
func (q *TaskQueue) EnqueueShutdown() {
	q.push(queueItem{shutdown: true})
}

func (q *TaskQueue) push(item queueItem) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()
	q.cond.Signal()
}

// Dequeue removes and returns the head element, blocking while the queue is
// empty. When shutdown is true the task is nil and the caller must exit its
// work loop.
func (q *TaskQueue) Dequeue() (task Task, shutdown bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		q.cond.Wait()
	}

	item := q.items[0]
	q.items = q.items[1:]
	return item.task, item.shutdown
}

// Len returns the number of queued elements, shutdown markers included.
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
