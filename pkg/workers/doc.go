// Package workers provides the task-parallel processing engine behind every
// bulk file operation.
//
// A Pool owns a set of worker goroutines draining one unbounded FIFO
// TaskQueue. The usual sequence is Start, one Add per file produced by a
// filesystem walk, and a Progress poll loop that waits until every task is
// accounted for (Total == Processed + Errors) before stopping the pool.
//
// # Lifecycle
//
// A pool is either stopped or running. Start spawns workers and fails on a
// running pool rather than stacking a second worker set. Stop enqueues one
// shutdown marker per tracked worker and joins them all; tasks queued ahead
// of the markers still run. A stopped pool can be started again for the
// next bulk operation, and ResetProgress (valid only while stopped) clears
// the counters between operations.
//
// # Accounting
//
// The three counters share one mutex, so a Progress snapshot is never torn:
// Processed+Errors cannot exceed Total in any observable state. Add bumps
// Total before the task reaches the queue. A task failure, whether an error
// return or a panic, is logged and counted; the worker moves on to the next
// task, and nothing is reported back to the Add caller.
//
// Tasks are dequeued in FIFO order across the pool, but completion order is
// unspecified once more than one worker runs.
package workers
