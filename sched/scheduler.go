package sched

import (
	"fmt"
	"math"

	"github.com/pthm-cable/pic2d/region"
)

// Scheduler drives a region.World through its step pipeline as explicit
// dependency-ordered tasks dispatched across a CPU executor and an
// accelerator executor: the first k regions are pinned to the
// accelerator, the rest to CPU. Every task for the step — every region,
// every phase — is built with real Deps on the specific predecessor
// tasks it needs (see Step), and runGraph dispatches whichever tasks
// have cleared their dependencies each round, split by back-end; a
// cross-executor dependency is resolved by that shared round-by-round
// done-set, not by a global barrier between phases.
type Scheduler struct {
	CPU   Executor
	Accel Executor

	onAccel []bool // indexed by region ID
}

// NewScheduler assigns the first k = round(nRegions*gpuFraction) regions
// to the accelerator (or nGPURegions if positive, overriding the
// fraction), and the rest to CPU.
func NewScheduler(nRegions int, gpuFraction float64, nGPURegions int, queueCount int) *Scheduler {
	k := nGPURegions
	if k <= 0 {
		k = int(math.Round(float64(nRegions) * gpuFraction))
	}
	if k > nRegions {
		k = nRegions
	}
	onAccel := make([]bool, nRegions)
	for i := 0; i < k; i++ {
		onAccel[i] = true
	}
	return &Scheduler{
		CPU:     NewCPUExecutor(),
		Accel:   NewAcceleratorExecutor(queueCount),
		onAccel: onAccel,
	}
}

func (s *Scheduler) accelFor(regionID int) bool {
	return regionID < len(s.onAccel) && s.onAccel[regionID]
}

// Step advances w by one time step by building the full per-step
// dependency graph — spec §4.5's intra-region chain plus its two
// inter-region edges (gc_y_up reads the region above's just-advanced
// fields; sort consumes what both neighbors' boundary phases handed
// off) — and running it through runGraph. runGraph dispatches in
// rounds: every task whose dependencies are done at the start of a round
// runs in that round, sibling regions and the CPU/accelerator back-ends
// concurrently, and the next round starts only when all of them have
// finished.
func (s *Scheduler) Step(w *region.World) error {
	dt := w.Dt
	movingX := w.MovingWindow
	n := len(w.Regions)

	advanceName := func(i int) string { return fmt.Sprintf("advance_local_%d", i) }
	gcYName := func(i int) string { return fmt.Sprintf("gc_y_%d", i) }
	boundaryName := func(i int) string { return fmt.Sprintf("boundary_%d", i) }
	sortName := func(i int) string { return fmt.Sprintf("sort_%d", i) }

	tasks := make([]Task, 0, 4*n)
	for i, r := range w.Regions {
		r := r
		tasks = append(tasks, Task{
			Name:  advanceName(i),
			Accel: s.accelFor(r.ID),
			Fn:    func() error { return r.AdvanceLocal(dt, movingX) },
		})
	}
	for i, r := range w.Regions {
		r, above := r, w.Regions[(i+1)%n]
		tasks = append(tasks, Task{
			Name:  gcYName(i),
			Deps:  []string{advanceName(i), advanceName((i + 1) % n)},
			Accel: s.accelFor(r.ID),
			Fn:    func() error { r.ExchangeGuardY(above); return nil },
		})
	}
	for i, r := range w.Regions {
		r := r
		tasks = append(tasks, Task{
			Name:  boundaryName(i),
			Deps:  []string{advanceName(i)},
			Accel: s.accelFor(r.ID),
			Fn:    r.Boundary,
		})
	}
	for i, r := range w.Regions {
		r := r
		tasks = append(tasks, Task{
			Name:  sortName(i),
			Deps:  []string{boundaryName((i - 1 + n) % n), boundaryName(i), boundaryName((i + 1) % n)},
			Accel: s.accelFor(r.ID),
			Fn:    r.Sort,
		})
	}

	if err := runGraph(tasks, s.CPU.Capacity(), s.Accel.Capacity()); err != nil {
		return err
	}

	w.Time += dt
	if w.MovingWindow && w.Time > w.Geom.Dx[0]*float64(w.NMove+1) {
		for _, r := range w.Regions {
			if err := r.ShiftWindow(w.Samplers); err != nil {
				return err
			}
		}
		w.NMove++
	}
	return nil
}
