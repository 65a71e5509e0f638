// Package sched implements the heterogeneous executor abstraction and
// pipeline scheduler: an Executor interface that CPU and accelerator
// back-ends implement independently, and a Scheduler that assigns
// regions to one or the other and drives a World through its step phases
// as dependency-ordered tasks.
package sched

// Task is one kernel dispatched through an Executor: a name (for
// dependency matching and memory-placement hints), the names of tasks it
// depends on, which back-end it is pinned to (Accel selects the
// accelerator queues, the zero value runs on CPU), and the function to
// run once its dependencies have completed.
type Task struct {
	Name  string
	Deps  []string
	Accel bool
	Fn    func() error
}

// Executor is the heterogeneous back-end abstraction: enqueue a kernel
// with its dependencies, wait for everything enqueued so far to finish,
// and accept memory-placement hints. CPU and accelerator back-ends
// implement it independently; the scheduler speaks only to this
// interface. Capacity reports how many tasks this back-end can run
// concurrently (worker-pool size, or command-queue count).
type Executor interface {
	Enqueue(t Task)
	Barrier() error
	Hint(accessedBy string, prefetch bool)
	Capacity() int
}
