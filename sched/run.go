package sched

import (
	"fmt"
	"sort"
	"sync"
)

func unresolvedDepsError(pending map[string]Task) error {
	names := make([]string, 0, len(pending))
	for name := range pending {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Errorf("sched: unresolved dependencies among tasks %v (cycle or unknown dependency)", names)
}

// runBatch executes a batch of tasks respecting intra-batch dependencies,
// dispatching every round's ready tasks concurrently across at most
// workers goroutines — the same chunk-and-WaitGroup shape the CPU worker
// pool uses for per-tile kernels, applied here at task granularity. A
// round with no progress (a dependency cycle, or a dependency naming a
// task outside this batch) is reported as an error rather than looping
// forever.
func runBatch(tasks []Task, workers int) error {
	if workers < 1 {
		workers = 1
	}
	pending := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		pending[t.Name] = t
	}
	done := make(map[string]bool, len(tasks))

	for len(pending) > 0 {
		var ready []Task
		for name, t := range pending {
			if depsSatisfied(t.Deps, done) {
				ready = append(ready, t)
				delete(pending, name)
			}
		}
		if len(ready) == 0 {
			return unresolvedDepsError(pending)
		}

		if err := runConcurrent(ready, workers); err != nil {
			return err
		}
		for _, t := range ready {
			done[t.Name] = true
		}
	}
	return nil
}

// runGraph drives a whole step's task graph to completion across both
// back-ends at once: each round collects every task whose Deps are
// already done, splits that ready set by its Accel flag, and dispatches
// the two groups concurrently (CPU group on cpuWorkers goroutines,
// accelerator group on accelQueues). The round ends when both groups
// have finished; only then are their tasks marked done and the next
// round's ready set collected, so a task whose dependencies clear
// mid-round does not start until the whole round, on both back-ends,
// has completed. Cross-executor dependencies are resolved over this
// single shared done set rather than two independently-barriered
// executors.
func runGraph(tasks []Task, cpuWorkers, accelQueues int) error {
	if cpuWorkers < 1 {
		cpuWorkers = 1
	}
	if accelQueues < 1 {
		accelQueues = 1
	}
	pending := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		pending[t.Name] = t
	}
	done := make(map[string]bool, len(tasks))

	for len(pending) > 0 {
		var cpuReady, accelReady []Task
		for name, t := range pending {
			if !depsSatisfied(t.Deps, done) {
				continue
			}
			if t.Accel {
				accelReady = append(accelReady, t)
			} else {
				cpuReady = append(cpuReady, t)
			}
			delete(pending, name)
		}
		if len(cpuReady) == 0 && len(accelReady) == 0 {
			return unresolvedDepsError(pending)
		}

		var wg sync.WaitGroup
		var mu sync.Mutex
		var firstErr error
		run := func(group []Task, workers int) {
			defer wg.Done()
			if err := runConcurrent(group, workers); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}
		if len(cpuReady) > 0 {
			wg.Add(1)
			go run(cpuReady, cpuWorkers)
		}
		if len(accelReady) > 0 {
			wg.Add(1)
			go run(accelReady, accelQueues)
		}
		wg.Wait()
		if firstErr != nil {
			return firstErr
		}

		for _, t := range cpuReady {
			done[t.Name] = true
		}
		for _, t := range accelReady {
			done[t.Name] = true
		}
	}
	return nil
}

func depsSatisfied(deps []string, done map[string]bool) bool {
	for _, d := range deps {
		if !done[d] {
			return false
		}
	}
	return true
}

func runConcurrent(tasks []Task, workers int) error {
	n := len(tasks)
	if n == 0 {
		return nil
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for w := 0; w*chunk < n; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				if err := tasks[i].Fn(); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}
			}
		}(lo, hi)
	}
	wg.Wait()
	return firstErr
}
