package workers

import (
	"context"
	"fmt"
	"sync"

	"github.com/cons0leweb/cons0leweb-utils/pkg/logging"
)

// Task represents one bound unit of file work
type Task interface {
	// Execute performs the operation. A non-nil error marks the task as
	// failed; the failure is contained and never propagates past the worker.
	Execute(ctx context.Context) error

	// Describe returns a short label identifying the task in failure logs
	Describe() string
}

// Progress is a consistent snapshot of bulk operation accounting
type Progress struct {
	Total     int
	Processed int
	Errors    int
}

// Done reports whether every added task has been accounted for.
func (p Progress) Done() bool {
	return p.Processed+p.Errors == p.Total
}

// String formats the snapshot for summaries and progress lines.
func (p Progress) String() string {
	return fmt.Sprintf("%d/%d processed, %d errors", p.Processed, p.Total, p.Errors)
}

// Pool manages a set of workers draining a shared task queue. A pool is
// reusable: after Stop it can be started again for the next bulk operation.
// Counters carry over between runs until ResetProgress is called.
type Pool struct {
	queue  *TaskQueue
	logger *logging.Logger

	// Lifecycle state
	mu      sync.Mutex
	running bool
	workers int
	wg      sync.WaitGroup

	// Accounting. One mutex covers all three counters so snapshots are
	// never torn; critical sections hold no I/O.
	progressMu sync.Mutex
	total      int
	processed  int
	errors     int
}

// NewPool creates a stopped pool with zeroed counters.
func NewPool(logger *logging.Logger) *Pool {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	return &Pool{
		queue:  NewTaskQueue(),
		logger: logger.WithComponent("engine"),
	}
}

// Start spawns exactly n workers and marks the pool running. It returns
// immediately; tasks already waiting in the queue begin draining at once.
// Starting a running pool is an error and leaves the pool untouched.
func (p *Pool) Start(n int) error {
	if n <= 0 {
		return fmt.Errorf("worker count must be positive (got %d)", n)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return fmt.Errorf("pool already running with %d workers", p.workers)
	}

	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	p.workers = n
	p.running = true

	p.logger.Debug("workers started", map[string]interface{}{"workers": n})
	return nil
}

// Stop enqueues one shutdown marker per tracked worker and blocks until all
// workers have exited. Tasks queued before the markers, and tasks already
// in flight, run to completion first. Safe to call on a pool that was never
// started.
func (p *Pool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.workers > 0 {
		for i := 0; i < p.workers; i++ {
			p.queue.EnqueueShutdown()
		}
		p.wg.Wait()
		p.logger.Debug("workers stopped", map[string]interface{}{"workers": p.workers})
	}

	p.workers = 0
	p.running = false
}

// Running reports whether workers are currently live.
func (p *Pool) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Add enqueues a task. The total is incremented before the task becomes
// visible to workers, so a concurrent snapshot can never show more completed
// work than was added. Legal before Start; early tasks wait in the queue.
func (p *Pool) Add(task Task) {
	p.progressMu.Lock()
	p.total++
	p.progressMu.Unlock()

	p.queue.Enqueue(task)
}

// Progress returns a copy of the counters taken under the counter lock.
func (p *Pool) Progress() Progress {
	p.progressMu.Lock()
	defer p.progressMu.Unlock()

	return Progress{
		Total:     p.total,
		Processed: p.processed,
		Errors:    p.errors,
	}
}

// ResetProgress zeroes the counters between bulk operations. Only valid
// while the pool is stopped.
func (p *Pool) ResetProgress() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return fmt.Errorf("cannot reset progress while pool is running")
	}

	p.progressMu.Lock()
	p.total = 0
	p.processed = 0
	p.errors = 0
	p.progressMu.Unlock()

	return nil
}

// Pending returns the number of queue elements not yet picked up.
func (p *Pool) Pending() int {
	return p.queue.Len()
}

// worker is the main worker goroutine: dequeue, match, execute, account.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	log := p.logger.WithField("worker", id)
	for {
		task, shutdown := p.queue.Dequeue()
		if shutdown {
			return
		}
		p.runTask(task, log)
	}
}

// runTask executes one task with panic isolation. A panicking operation
// counts as a failure like an error return; the worker keeps draining.
func (p *Pool) runTask(task Task, log *logging.FieldLogger) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("panic in task (%s): %v", task.Describe(), r)
			p.recordError()
		}
	}()

	if err := task.Execute(context.Background()); err != nil {
		log.Errorf("task failed (%s): %v", task.Describe(), err)
		p.recordError()
		return
	}

	p.recordProcessed()
}

func (p *Pool) recordProcessed() {
	p.progressMu.Lock()
	p.processed++
	p.progressMu.Unlock()
}

func (p *Pool) recordError() {
	p.progressMu.Lock()
	p.errors++
	p.progressMu.Unlock()
}
