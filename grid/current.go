package grid

import "gonum.org/v1/gonum/blas/blas64"

// Current is the per-region staggered current density grid J. It shares
// E's geometry and stride; it is reset to zero at the start of every step
// and filled additively by the deposition kernel, then optionally
// smoothed before the E advance reads it.
type Current struct {
	*VField
}

// NewCurrent allocates a zeroed current grid over geom.
func NewCurrent(geom Geometry) *Current {
	return &Current{VField: NewVField(geom)}
}

// Reset clears J to zero; called at the start of every step before
// deposition runs.
func (c *Current) Reset() { c.Zero() }

// Add accumulates other into c component-wise, for merging a separately
// accumulated (e.g. tile-local) current into the region's shared J. The
// deposition path in package physics does not use it: it writes into the
// region's J directly.
func (c *Current) Add(other *Current) {
	for i := range c.X {
		c.X[i] += other.X[i]
		c.Y[i] += other.Y[i]
		c.Z[i] += other.Z[i]
	}
}

// Filter applies one pass of the binomial smoothing stencil
// (0.25, 0.5, 0.25) along the x-axis to every allocated row (guard rows
// included) of every component; no compensator pass follows. It uses
// blas64 AXPY combinations to combine shifted copies of
// each row. float64 throughout, since current densities accumulate over
// many particles and lose precision fastest in single precision.
func (c *Current) Filter(scratch []float64) {
	nrow := c.Geom.NRow()
	lo, hi := -c.Geom.GC[1][0], c.Geom.Nx[1]+c.Geom.GC[1][1]
	for _, comp := range [][]float64{c.X, c.Y, c.Z} {
		for j := lo; j < hi; j++ {
			base := c.Geom.Index(-c.Geom.GC[0][0], j)
			row := comp[base : base+nrow]
			filterRow(row, scratch[:nrow])
		}
	}
}

// filterRow applies the 3-point binomial stencil to one row in place,
// leaving the two boundary cells untouched (they belong to the guard
// region and are refreshed by the subsequent guard-cell exchange).
func filterRow(row, scratch []float64) {
	n := len(row)
	if n < 3 {
		return
	}
	dst := blas64.Vector{N: n - 2, Inc: 1, Data: scratch[1 : n-1]}
	center := blas64.Vector{N: n - 2, Inc: 1, Data: row[1 : n-1]}
	left := blas64.Vector{N: n - 2, Inc: 1, Data: row[0 : n-2]}
	right := blas64.Vector{N: n - 2, Inc: 1, Data: row[2:n]}

	blas64.Copy(center, dst)
	blas64.Scal(0.5, dst)
	blas64.Axpy(0.25, left, dst)
	blas64.Axpy(0.25, right, dst)

	copy(row[1:n-1], scratch[1:n-1])
}
