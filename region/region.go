// Package region implements the per-region state and step pipeline: one
// region owns a horizontal slab of the domain — its own E,B,J grids and
// per-species tiled particle stores — and exposes the phases a scheduler
// sequences across the whole stack (AdvanceLocal, ExchangeGuardY,
// Boundary, Sort).
package region

import (
	"github.com/pthm-cable/pic2d/boundary"
	"github.com/pthm-cable/pic2d/diagnostics"
	"github.com/pthm-cable/pic2d/emf"
	"github.com/pthm-cable/pic2d/grid"
	"github.com/pthm-cable/pic2d/particles"
	"github.com/pthm-cable/pic2d/physics"
)

// Region owns one horizontal slab [YLo,YHi) of rows.
type Region struct {
	ID   int
	Geom grid.Geometry

	E, B *grid.VField
	J    *grid.Current

	Solver emf.Solver

	Stores []*particles.Store

	filterScratch []float64
	Reporter      diagnostics.Reporter
}

// NewRegion allocates a region's field grids and wires its Reporter. The
// caller (World) is responsible for allocating Stores and wiring
// Outgoing/neighbor pointers once every region in the ring exists.
func NewRegion(id int, geom grid.Geometry, reporter diagnostics.Reporter) *Region {
	if reporter == nil {
		reporter = diagnostics.Noop{}
	}
	return &Region{
		ID:            id,
		Geom:          geom,
		E:             grid.NewVField(geom),
		B:             grid.NewVField(geom),
		J:             grid.NewCurrent(geom),
		Solver:        emf.NewSolver(geom),
		filterScratch: make([]float64, geom.NRow()),
		Reporter:      reporter,
	}
}

// AdvanceLocal runs the portion of the step pipeline a region can do
// without its neighbors: current.reset -> pusher+deposit (all species) ->
// current.filter -> emf.advance -> emf.gc_x (the dependency chain up to,
// but not including, the cross-region gc_y edge). movingWindowX
// disables the periodic x guard-cell wrap of E and B — guards are
// refilled by the window shift instead.
func (r *Region) AdvanceLocal(dt float64, movingWindowX bool) error {
	r.J.Reset()

	for _, s := range r.Stores {
		n := int32(s.Main.Len())
		if err := physics.PushAndDeposit(s, r.E, r.B, r.J, 0, n); err != nil {
			return err
		}
	}

	r.J.Filter(r.filterScratch)
	r.Solver.Step(r.E, r.B, r.J, dt)

	if !movingWindowX {
		emf.ExchangeGuardX(r.E)
		emf.ExchangeGuardX(r.B)
	}
	return nil
}

// ExchangeGuardY performs the half-duplex y guard exchange with the
// region directly above this one in the ring. Must run only after this
// region's and the region above's AdvanceLocal have completed: the
// guard-y exchange of region r reads interior rows of region r+1.
func (r *Region) ExchangeGuardY(above *Region) {
	emf.ExchangeGuardY(r.E, above.E, r.Geom)
	emf.ExchangeGuardY(r.B, above.B, r.Geom)
}

// Boundary runs particle boundary handling for every species store,
// handing off y-crossing particles to neighbors' incoming buffers (which
// must already be wired via Store.OutgoingUp/Down).
func (r *Region) Boundary() error {
	for _, s := range r.Stores {
		if err := boundary.Apply(s); err != nil {
			return err
		}
	}
	return nil
}

// Sort re-buckets every species store by tile and merges incoming
// transfers, consuming what predecessor regions' Boundary phase produced.
func (r *Region) Sort() error {
	for _, s := range r.Stores {
		if err := particles.Sort(s); err != nil {
			return err
		}
	}
	return nil
}

// ShiftWindow applies the moving-window shift to this region's fields and
// particles, then injects fresh particles at the right edge for every
// species flagged MovingWindow. samplers supplies the out-of-scope density
// sampling function per species name; a species with no entry is skipped.
func (r *Region) ShiftWindow(samplers map[string]particles.ProfileSampler) error {
	emf.ShiftWindow(r.E, r.B, r.Geom)
	for _, s := range r.Stores {
		if !s.Species.MovingWindow {
			continue
		}
		boundary.ShiftWindow(s)
		sample, ok := samplers[s.Species.Name]
		if !ok {
			continue
		}
		if err := boundary.InjectRightEdge(s, sample); err != nil {
			return err
		}
	}
	return nil
}
