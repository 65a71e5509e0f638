package emf

import "github.com/pthm-cable/pic2d/grid"

func copyCell(src *grid.VField, si, sj int, dst *grid.VField, di, dj int) {
	x, y, z := src.At(si, sj)
	sk := dst.Geom.Index(di, dj)
	dst.X[sk] = x
	dst.Y[sk] = y
	dst.Z[sk] = z
}

// ExchangeGuardX fills x-direction guard cells by periodic wrap. Callers
// in moving-window mode must not call this — the window shift fills
// those guards instead.
func ExchangeGuardX(f *grid.VField) {
	g := f.Geom
	nx := g.Nx[0]
	loJ, hiJ := -g.GC[1][0], g.Nx[1]+g.GC[1][1]
	for j := loJ; j < hiJ; j++ {
		for i := -g.GC[0][0]; i < 0; i++ {
			copyCell(f, g.WrapX(i), j, f, i, j)
		}
		for i := nx; i < nx+g.GC[0][1]; i++ {
			copyCell(f, g.WrapX(i), j, f, i, j)
		}
	}
}

// ExchangeGuardY performs the half-duplex y exchange between a region
// (lower) and the region stacked above it (upper), sharing the same
// geometry: lower's upper guard is filled from upper's first interior
// rows, and lower's own last interior rows are written into upper's
// lower guard.
func ExchangeGuardY(lower, upper *grid.VField, geom grid.Geometry) {
	ny := geom.Nx[1]
	gcLo := geom.GC[1][0]
	gcHi := geom.GC[1][1]
	loI, hiI := 0, geom.Nx[0]

	for k := 0; k < gcHi; k++ {
		srcJ := k
		dstJ := ny + k
		for i := loI; i < hiI; i++ {
			copyCell(upper, i, srcJ, lower, i, dstJ)
		}
	}
	for k := 0; k < gcLo; k++ {
		srcJ := ny - gcLo + k
		dstJ := -gcLo + k
		for i := loI; i < hiI; i++ {
			copyCell(lower, i, srcJ, upper, i, dstJ)
		}
	}
}

// ShiftWindow shifts every allocated row of e and b left by one cell and
// zeros the rightmost column, reusing one scratch slice across rows.
func ShiftWindow(e, b *grid.VField, geom grid.Geometry) {
	scratch := make([]float64, geom.NRow())
	loJ, hiJ := -geom.GC[1][0], geom.Nx[1]+geom.GC[1][1]
	for j := loJ; j < hiJ; j++ {
		e.ShiftLeftRow(j, scratch)
		b.ShiftLeftRow(j, scratch)
	}
}
