package region

import (
	"github.com/pthm-cable/pic2d/diagnostics"
	"github.com/pthm-cable/pic2d/grid"
	"github.com/pthm-cable/pic2d/particles"
	"github.com/pthm-cable/pic2d/picerr"
)

// World owns a ring of Regions stacked in y, periodic top to bottom (a
// particle leaving the top region above enters the bottom region, via the
// same iy wrap used against the global row count) and periodic in x.
type World struct {
	Regions []*Region
	Geom    grid.Geometry

	NxGlobal int
	NyGlobal int

	Dt           float64
	Time         float64
	NMove        int
	MovingWindow bool

	Samplers map[string]particles.ProfileSampler
}

// WorldConfig collects the parameters needed to build a ring of regions.
type WorldConfig struct {
	NRegions     int
	Nx0          int
	NyGlobal     int
	Box          [2]float64
	GC           [2][2]int
	Tile         int
	CapPerStore  int
	Dt           float64
	MovingWindow bool
	Species      []*particles.Species
	Samplers     map[string]particles.ProfileSampler
	Reporter     diagnostics.Reporter
}

// NewWorld builds nRegions equal-height regions, each with its own
// per-species stores, and wires every region's Outgoing{Up,Down} pointers
// to the correct neighbor's Incoming buffer (the inter-region edges).
// Region geometry is scaled so every region shares the same cell size as
// the global domain regardless of how many rows it owns.
func NewWorld(cfg WorldConfig) (*World, error) {
	if cfg.NRegions <= 0 {
		return nil, picerr.Config("n_regions", "must be positive, got %d", cfg.NRegions)
	}
	if cfg.NyGlobal%cfg.NRegions != 0 {
		return nil, picerr.Config("n_regions", "ny=%d not evenly divisible by n_regions=%d", cfg.NyGlobal, cfg.NRegions)
	}
	nyRegion := cfg.NyGlobal / cfg.NRegions

	regionBox := [2]float64{cfg.Box[0], cfg.Box[1] * float64(nyRegion) / float64(cfg.NyGlobal)}
	geom, err := grid.NewGeometry([2]int{cfg.Nx0, nyRegion}, regionBox, cfg.GC)
	if err != nil {
		return nil, err
	}

	reporter := cfg.Reporter
	if reporter == nil {
		reporter = diagnostics.Noop{}
	}

	regions := make([]*Region, cfg.NRegions)
	for i := 0; i < cfg.NRegions; i++ {
		reg := NewRegion(i, geom, reporter)
		yLo := i * nyRegion
		for _, sp := range cfg.Species {
			st, err := particles.NewStore(sp, cfg.Tile, cfg.Nx0, nyRegion, yLo, cfg.NyGlobal, cfg.CapPerStore)
			if err != nil {
				return nil, err
			}
			transferCap := cfg.CapPerStore/4 + 64
			for k := range st.Incoming {
				st.Incoming[k] = particles.NewBuffer(transferCap)
			}
			reg.Stores = append(reg.Stores, st)
		}
		regions[i] = reg
	}

	for i := 0; i < cfg.NRegions; i++ {
		above := regions[(i+1)%cfg.NRegions]
		below := regions[(i-1+cfg.NRegions)%cfg.NRegions]
		for sIdx, st := range regions[i].Stores {
			st.OutgoingUp = above.Stores[sIdx].Incoming[particles.FromBelow]
			st.OutgoingDown = below.Stores[sIdx].Incoming[particles.FromAbove]
		}
	}

	for _, reg := range regions {
		for _, st := range reg.Stores {
			if err := particles.FullSort(st); err != nil {
				return nil, err
			}
		}
	}

	return &World{
		Regions:      regions,
		Geom:         geom,
		NxGlobal:     cfg.Nx0,
		NyGlobal:     cfg.NyGlobal,
		Dt:           cfg.Dt,
		MovingWindow: cfg.MovingWindow,
		Samplers:     cfg.Samplers,
	}, nil
}

// Step advances every region by one time step: each region's local
// pipeline runs, then the cross-region guard-y exchange, then particle
// boundary handoff, then the per-region sort that consumes what boundary
// produced. A moving-window shift is applied once the window's scheduled
// advance time has passed.
func (w *World) Step() error {
	for _, r := range w.Regions {
		if err := r.AdvanceLocal(w.Dt, w.MovingWindow); err != nil {
			return err
		}
	}

	n := len(w.Regions)
	for i := 0; i < n; i++ {
		w.Regions[i].ExchangeGuardY(w.Regions[(i+1)%n])
	}

	for _, r := range w.Regions {
		if err := r.Boundary(); err != nil {
			return err
		}
	}
	for _, r := range w.Regions {
		if err := r.Sort(); err != nil {
			return err
		}
	}

	w.Time += w.Dt
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

// EmitDiagnostics reports every region's field and species-density grids
// through its Reporter, for a caller invoking it every ndump steps.
func (w *World) EmitDiagnostics(iter int) error {
	for _, r := range w.Regions {
		if err := r.Reporter.EmitGrid(r.ID, iter, r.E, r.B, r.J); err != nil {
			return err
		}
		for _, s := range r.Stores {
			if err := r.Reporter.EmitSpeciesDensity(r.ID, iter, s); err != nil {
				return err
			}
		}
	}
	return nil
}
