// Package physics implements the per-particle kernel: field
// interpolation at the Yee-staggered grid locations, the Boris momentum
// rotation, the relativistic position push, and the Villasenor-Buneman
// charge-conserving current deposition.
package physics

import (
	"math"

	"github.com/pthm-cable/pic2d/grid"
	"github.com/pthm-cable/pic2d/particles"
	"github.com/pthm-cable/pic2d/picerr"
)

// halfShift returns the index offset and fractional weight used to
// locate a half-cell-shifted (Yee-staggered) field component: ih = ix-1,
// w1h = x+0.5 when x<0.5; otherwise ih = ix, w1h = x-0.5.
func halfShift(x float64) (offset int, w1h float64) {
	if x < 0.5 {
		return -1, x + 0.5
	}
	return 0, x - 0.5
}

// bilerp reads the four corners of comp around (i0,j0) with weights
// (wx,wy) and returns the bilinearly interpolated value.
func bilerp(comp []float64, geom grid.Geometry, i0, j0 int, wx, wy float64) float64 {
	c00 := comp[geom.Index(i0, j0)]
	c10 := comp[geom.Index(i0+1, j0)]
	c01 := comp[geom.Index(i0, j0+1)]
	c11 := comp[geom.Index(i0+1, j0+1)]
	return (1-wx)*(1-wy)*c00 + wx*(1-wy)*c10 + (1-wx)*wy*c01 + wx*wy*c11
}

// interpolate samples E and B at a particle's position, using the
// stagger-specific corner combination the Yee layout requires: E.x/B.y
// are x-half-shifted, E.y/B.x are y-half-shifted, E.z is unshifted, and
// B.z is shifted on both axes.
func interpolate(e, b *grid.VField, ix, iy int32, x, y float64) (ex, ey, ez, bx, by, bz float64) {
	geom := e.Geom
	ii, jj := int(ix), int(iy)
	ihOff, w1hx := halfShift(x)
	jhOff, w1hy := halfShift(y)
	ih, jh := ii+ihOff, jj+jhOff

	ex = bilerp(e.X, geom, ih, jj, w1hx, y)
	ey = bilerp(e.Y, geom, ii, jh, x, w1hy)
	ez = bilerp(e.Z, geom, ii, jj, x, y)

	bx = bilerp(b.X, geom, ii, jh, x, w1hy)
	by = bilerp(b.Y, geom, ih, jj, w1hx, y)
	bz = bilerp(b.Z, geom, ih, jh, w1hx, w1hy)
	return
}

// boris applies the time-reversible Boris rotation: a half
// electric-field kick, a magnetic rotation, and a second half
// electric-field kick.
func boris(ux, uy, uz, ex, ey, ez, bx, by, bz, tem float64) (nux, nuy, nuz float64) {
	upx := ux + tem*ex
	upy := uy + tem*ey
	upz := uz + tem*ez

	gammaP := math.Sqrt(1 + upx*upx + upy*upy + upz*upz)
	tx := tem * bx / gammaP
	ty := tem * by / gammaP
	tz := tem * bz / gammaP

	uppx := upx + (upy*tz - upz*ty)
	uppy := upy + (upz*tx - upx*tz)
	uppz := upz + (upx*ty - upy*tx)

	s := 2.0 / (1 + tx*tx + ty*ty + tz*tz)
	sx, sy, sz := s*tx, s*ty, s*tz

	upppx := upx + (uppy*sz - uppz*sy)
	upppy := upy + (uppz*sx - uppx*sz)
	upppz := upz + (uppx*sy - uppy*sx)

	nux = upppx + tem*ex
	nuy = upppy + tem*ey
	nuz = upppz + tem*ez
	return
}

// ltrim returns the signed cell-crossing count: -1 if v<0, +1 if v>=1,
// else 0. It also reports whether v represents a crossing of more than
// one cell (a CFL violation, see NumericOverrun), which this formula
// itself cannot represent; the caller must check that before trusting
// the trimmed result.
func ltrim(v float64) (di int, overrun bool) {
	switch {
	case v < -1 || v >= 2:
		return 0, true
	case v < 0:
		return -1, false
	case v >= 1:
		return 1, false
	default:
		return 0, false
	}
}

// Push advances every non-invalid particle in [lo,hi) of the store's main
// buffer by one time step: field interpolation, Boris rotation,
// relativistic position push. It does not deposit current — see
// PushAndDeposit, which does both in one pass over the same range (the
// interpolated fields and pushed momentum are needed by both stages, so
// splitting them would mean interpolating twice).
func Push(s *particles.Store, e, b *grid.VField, lo, hi int32) error {
	return pushRange(s, e, b, nil, lo, hi)
}

// PushAndDeposit advances particles in [lo,hi) and deposits their
// current into j via Villasenor-Buneman trajectory splitting
// (implemented in deposit.go).
func PushAndDeposit(s *particles.Store, e, b *grid.VField, j *grid.Current, lo, hi int32) error {
	return pushRange(s, e, b, j, lo, hi)
}

func pushRange(s *particles.Store, e, b *grid.VField, j *grid.Current, lo, hi int32) error {
	sp := s.Species
	dt := sp.Dt
	tem := 0.5 * dt / sp.MQ
	dtx := dt / e.Geom.Dx[0]
	dty := dt / e.Geom.Dx[1]
	buf := s.Main

	for k := lo; k < hi; k++ {
		if buf.Invalid[k] {
			continue
		}
		ix, iy := buf.Ix[k], buf.Iy[k]
		x, y := buf.X[k], buf.Y[k]
		ux, uy, uz := buf.Ux[k], buf.Uy[k], buf.Uz[k]

		ex, ey, ez, bx, by, bz := interpolate(e, b, ix, iy, x, y)
		nux, nuy, nuz := boris(ux, uy, uz, ex, ey, ez, bx, by, bz, tem)

		rg := 1.0 / math.Sqrt(1+nux*nux+nuy*nuy+nuz*nuz)
		dx := dtx * rg * nux
		dy := dty * rg * nuy
		x1 := x + dx
		y1 := y + dy

		di, overrunX := ltrim(x1)
		dj, overrunY := ltrim(y1)
		if overrunX || overrunY {
			return picerr.NumericOverrun(sp.Name, int(k), di, dj)
		}

		newX := x1 - float64(di)
		newY := y1 - float64(dj)

		if j != nil {
			qvz := sp.Q * nuz * rg
			depositSegments(j, ix, iy, x, y, dx, dy, int32(di), int32(dj), sp.Q, qvz, 1/dt)
		}

		buf.X[k], buf.Y[k] = newX, newY
		buf.Ix[k] = ix + int32(di)
		buf.Iy[k] = iy + int32(dj)
		buf.Ux[k], buf.Uy[k], buf.Uz[k] = nux, nuy, nuz
	}
	return nil
}
