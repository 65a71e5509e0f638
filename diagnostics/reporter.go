// Package diagnostics defines the simulation's external reporting
// contract and the performance-telemetry collector used to profile the
// per-step kernel pipeline.
package diagnostics

import (
	"github.com/pthm-cable/pic2d/grid"
	"github.com/pthm-cable/pic2d/particles"
)

// Reporter is the diagnostic sink contract: grid snapshots (E, B, J.z)
// and per-species charge-density grids, emitted once per region per dump
// interval. Writing output-file records, picking an output directory, and
// naming axes are an external collaborator's job — this interface is the
// seam.
type Reporter interface {
	EmitGrid(regionID, iter int, e, b *grid.VField, j *grid.Current) error
	EmitSpeciesDensity(regionID, iter int, s *particles.Store) error
}

// Noop implements Reporter by discarding everything; used by tests and by
// runs with no configured output sink.
type Noop struct{}

func (Noop) EmitGrid(regionID, iter int, e, b *grid.VField, j *grid.Current) error { return nil }
func (Noop) EmitSpeciesDensity(regionID, iter int, s *particles.Store) error       { return nil }
