// Package grid implements the 2D staggered-grid indexing, vector field
// storage, and current accumulator that the EMF solver and the particle
// pusher/deposit kernels share. A cell is addressed with a signed offset
// so that (0,0) is the first interior cell; guard cells carry negative (or
// beyond-nx) indices.
package grid

import "github.com/pthm-cable/pic2d/picerr"

// Geometry describes one region's grid layout: interior cell counts,
// physical box size, derived cell size, and guard-cell margins on each
// side of each axis.
type Geometry struct {
	Nx  [2]int       // interior cells per axis (x, y)
	Box [2]float64   // physical box size per axis
	Dx  [2]float64   // cell size per axis, Box[i]/Nx[i]
	GC  [2][2]int    // guard cells [axis][lo,hi]

	nrow int // row stride (x-axis extent including guards)
	ncol int // number of rows (y-axis extent including guards)
}

// NewGeometry builds a Geometry from interior cell counts, box size, and
// guard-cell margins. Returns a ConfigError if nx or box are non-positive.
func NewGeometry(nx [2]int, box [2]float64, gc [2][2]int) (Geometry, error) {
	for axis := 0; axis < 2; axis++ {
		if nx[axis] <= 0 {
			return Geometry{}, picerr.Config("nx", "axis %d must be positive, got %d", axis, nx[axis])
		}
		if box[axis] <= 0 {
			return Geometry{}, picerr.Config("box", "axis %d must be positive, got %g", axis, box[axis])
		}
	}
	g := Geometry{Nx: nx, Box: box, GC: gc}
	g.Dx[0] = box[0] / float64(nx[0])
	g.Dx[1] = box[1] / float64(nx[1])
	g.nrow = gc[0][0] + nx[0] + gc[0][1]
	g.ncol = gc[1][0] + nx[1] + gc[1][1]
	return g, nil
}

// NRow returns the row stride (x-extent including guard cells).
func (g Geometry) NRow() int { return g.nrow }

// NCol returns the number of rows (y-extent including guard cells).
func (g Geometry) NCol() int { return g.ncol }

// Size returns the total number of cells including guards.
func (g Geometry) Size() int { return g.nrow * g.ncol }

// Index maps a signed interior-relative cell coordinate (i,j) to a flat
// slice offset. i and j may be negative (lower guard) or >= Nx (upper
// guard); callers are responsible for staying within the allocated
// geometry.
func (g Geometry) Index(i, j int) int {
	return (j+g.GC[1][0])*g.nrow + (i + g.GC[0][0])
}

// InBounds reports whether (i,j) addresses an allocated cell (interior or
// guard) of this geometry.
func (g Geometry) InBounds(i, j int) bool {
	return i >= -g.GC[0][0] && i < g.Nx[0]+g.GC[0][1] &&
		j >= -g.GC[1][0] && j < g.Nx[1]+g.GC[1][1]
}

// WrapX returns i wrapped into [0, Nx[0]) under periodic boundary
// conditions.
func (g Geometry) WrapX(i int) int {
	n := g.Nx[0]
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
