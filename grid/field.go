package grid

// VField is a vector field value per cell: three scalar components stored
// structure-of-arrays so that per-component passes (e.g. the gonum/floats
// reductions in package diagnostics) can walk a single flat slice.
type VField struct {
	Geom Geometry
	X, Y, Z []float64
}

// NewVField allocates a zeroed vector field over geom.
func NewVField(geom Geometry) *VField {
	n := geom.Size()
	return &VField{
		Geom: geom,
		X:    make([]float64, n),
		Y:    make([]float64, n),
		Z:    make([]float64, n),
	}
}

// At returns the component values at (i,j).
func (f *VField) At(i, j int) (x, y, z float64) {
	k := f.Geom.Index(i, j)
	return f.X[k], f.Y[k], f.Z[k]
}

// AddAt adds (dx,dy,dz) to the component values at (i,j).
func (f *VField) AddAt(i, j int, dx, dy, dz float64) {
	k := f.Geom.Index(i, j)
	f.X[k] += dx
	f.Y[k] += dy
	f.Z[k] += dz
}

// Zero resets every component to zero.
func (f *VField) Zero() {
	for i := range f.X {
		f.X[i] = 0
		f.Y[i] = 0
		f.Z[i] = 0
	}
}

// ShiftLeftRow shifts row j (its x guard cells included) of all three
// components left by one cell (used by the moving-window kernel) and
// zeros the rightmost allocated cell of the row.
// Shifting is independent per row so a single reusable scratch slice can
// service every row without per-row allocation.
func (f *VField) ShiftLeftRow(j int, scratch []float64) {
	nrow := f.Geom.NRow()
	base := f.Geom.Index(-f.Geom.GC[0][0], j)
	for _, comp := range [][]float64{f.X, f.Y, f.Z} {
		row := comp[base : base+nrow]
		copy(scratch[:nrow-1], row[1:])
		copy(row[:nrow-1], scratch[:nrow-1])
		row[nrow-1] = 0
	}
}
