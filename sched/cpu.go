package sched

import "runtime"

// CPUExecutor runs enqueued tasks on a bounded worker pool sized to
// GOMAXPROCS, the same sizing game/parallel.go uses for its per-tile
// chunk dispatch. Memory-placement hints are no-ops on CPU: there is only
// one address space to place anything in.
type CPUExecutor struct {
	workers int
	pending []Task
}

// NewCPUExecutor returns a CPUExecutor with workers sized to GOMAXPROCS.
func NewCPUExecutor() *CPUExecutor {
	return &CPUExecutor{workers: runtime.GOMAXPROCS(0)}
}

func (c *CPUExecutor) Enqueue(t Task) { c.pending = append(c.pending, t) }

func (c *CPUExecutor) Barrier() error {
	batch := c.pending
	c.pending = nil
	return runBatch(batch, c.workers)
}

func (c *CPUExecutor) Hint(accessedBy string, prefetch bool) {}

// Capacity returns the worker-pool size.
func (c *CPUExecutor) Capacity() int { return c.workers }
