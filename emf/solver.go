// Package emf implements the Yee finite-difference time-domain field
// solver: the leapfrog B-half / E / B-half update, x/y guard-cell
// exchange, and the moving-window shift.
package emf

import "github.com/pthm-cable/pic2d/grid"

// Solver advances one region's E,B pair in place. It carries no state of
// its own beyond the geometry both fields share; dt is passed in per call
// since species (and therefore stable time steps) can differ between a
// simulation's warm-up and main phases.
type Solver struct {
	Geom grid.Geometry
}

// NewSolver returns a Solver over geom.
func NewSolver(geom grid.Geometry) Solver {
	return Solver{Geom: geom}
}

// AdvanceBHalf updates B over (-1..nx[0]) x (-1..nx[1]) from the curl of
// E, for a half time step dtHalf.
func (s Solver) AdvanceBHalf(e, b *grid.VField, dtHalf float64) {
	dtx := dtHalf / s.Geom.Dx[0]
	dty := dtHalf / s.Geom.Dx[1]
	g := s.Geom

	for j := -1; j <= g.Nx[1]; j++ {
		for i := -1; i <= g.Nx[0]; i++ {
			_, _, ez00 := e.At(i, j)
			_, _, ez0p := e.At(i, j+1)
			_, _, ezp0 := e.At(i+1, j)
			_, ey00, _ := e.At(i, j)
			_, eyp0, _ := e.At(i+1, j)
			ex00, _, _ := e.At(i, j)
			ex0p, _, _ := e.At(i, j+1)

			b.AddAt(i, j,
				-dty*(ez0p-ez00),
				dtx*(ezp0-ez00),
				-dtx*(eyp0-ey00)+dty*(ex0p-ex00),
			)
		}
	}
}

// AdvanceE updates E over (0..nx[0]) x (0..nx[1]+1) from the curl of B
// minus dt*J.
func (s Solver) AdvanceE(b *grid.VField, e *grid.VField, j *grid.Current, dt float64) {
	dtx := dt / s.Geom.Dx[0]
	dty := dt / s.Geom.Dx[1]
	g := s.Geom

	for jy := 0; jy <= g.Nx[1]+1; jy++ {
		for ix := 0; ix <= g.Nx[0]; ix++ {
			_, _, bz00 := b.At(ix, jy)
			_, _, bz0m := b.At(ix, jy-1)
			_, _, bzm0 := b.At(ix-1, jy)
			_, by00, _ := b.At(ix, jy)
			_, bym0, _ := b.At(ix-1, jy)
			bx00, _, _ := b.At(ix, jy)
			bx0m, _, _ := b.At(ix, jy-1)

			jx, jy_, jz := j.At(ix, jy)

			e.AddAt(ix, jy,
				dty*(bz00-bz0m)-dt*jx,
				-dtx*(bz00-bzm0)-dt*jy_,
				dtx*(by00-bym0)-dty*(bx00-bx0m)-dt*jz,
			)
		}
	}
}

// Step performs the leapfrog Bhalf -> E -> Bhalf sequence that
// co-centers E and B in time for the particle pusher.
func (s Solver) Step(e, b *grid.VField, j *grid.Current, dt float64) {
	s.AdvanceBHalf(e, b, dt/2)
	s.AdvanceE(b, e, j, dt)
	s.AdvanceBHalf(e, b, dt/2)
}
