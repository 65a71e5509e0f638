package sched

// AcceleratorExecutor simulates one or more GPU-like command queues:
// kernels enqueued on it are dispatched concurrently up to queueCount at
// a time, modeling asynchronous dispatch within a queue without an
// actual device — a Barrier is this executor's queue-wait. Hint records
// the last prefetch request per buffer name; a real accelerator back-end
// would issue the device-side prefetch here.
type AcceleratorExecutor struct {
	queueCount int
	pending    []Task
	prefetched map[string]bool
}

// NewAcceleratorExecutor returns an AcceleratorExecutor with queueCount
// concurrent command queues.
func NewAcceleratorExecutor(queueCount int) *AcceleratorExecutor {
	if queueCount < 1 {
		queueCount = 1
	}
	return &AcceleratorExecutor{
		queueCount: queueCount,
		prefetched: make(map[string]bool),
	}
}

func (a *AcceleratorExecutor) Enqueue(t Task) { a.pending = append(a.pending, t) }

func (a *AcceleratorExecutor) Barrier() error {
	batch := a.pending
	a.pending = nil
	return runBatch(batch, a.queueCount)
}

func (a *AcceleratorExecutor) Hint(accessedBy string, prefetch bool) {
	if prefetch {
		a.prefetched[accessedBy] = true
	}
}

// Capacity returns the number of concurrent command queues.
func (a *AcceleratorExecutor) Capacity() int { return a.queueCount }
