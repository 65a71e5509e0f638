// Package particles implements tiled, structure-of-arrays particle
// storage: per-species, per-region position and momentum arrays, the tile
// offset table, the incoming/outgoing transfer buffers, and the
// bucket-sort maintenance pass that keeps particles grouped by tile after
// every step.
package particles

// DensityProfile selects the shape used to sample initial/injected
// particle density. Sampling itself (RNG thermal velocities, the actual
// density function evaluation) is an external collaborator, so this
// package only carries the enumeration and the parameters needed to
// describe one.
type DensityProfile int

const (
	UNIFORM DensityProfile = iota
	STEP
	SLAB
)

func (p DensityProfile) String() string {
	switch p {
	case UNIFORM:
		return "uniform"
	case STEP:
		return "step"
	case SLAB:
		return "slab"
	default:
		return "unknown"
	}
}

// ProfileSampler is supplied by the external caller (sim_init or the
// moving-window driver) to place new particles according to a
// DensityProfile. The simulation core only ever calls this function value
// at the documented injection sites; it never constructs one itself.
type ProfileSampler func(profile DensityProfile, n, start, end float64, x, y float64) (weight float64, ok bool)

// Species holds the per-species physical parameters: mass-to-charge
// ratio, per-particle charge, particles-per-cell, initial fluid/thermal
// velocity, density profile, time step, and the moving-window flag.
type Species struct {
	Name string

	MQ float64 // m_q, mass-to-charge ratio
	Q  float64 // per-particle charge

	PPC [2]int // particles per cell, per axis

	Ufl [3]float64 // initial fluid velocity
	Uth [3]float64 // initial thermal velocity (sampling is external)

	Profile      DensityProfile
	ProfileN     float64
	ProfileStart float64
	ProfileEnd   float64

	Dt           float64
	MovingWindow bool
}
