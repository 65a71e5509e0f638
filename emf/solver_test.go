package emf

import (
	"math"
	"testing"

	"github.com/pthm-cable/pic2d/grid"
)

func newSolverTestGeom(t *testing.T) grid.Geometry {
	t.Helper()
	g, err := grid.NewGeometry([2]int{16, 16}, [2]float64{1, 1}, [2][2]int{{2, 2}, {2, 2}})
	if err != nil {
		t.Fatalf("NewGeometry: %v", err)
	}
	return g
}

func fieldEnergy(e, b *grid.VField) float64 {
	var total float64
	for i := range e.X {
		total += e.X[i]*e.X[i] + e.Y[i]*e.Y[i] + e.Z[i]*e.Z[i]
		total += b.X[i]*b.X[i] + b.Y[i]*b.Y[i] + b.Z[i]*b.Z[i]
	}
	return 0.5 * total
}

func TestVacuumEnergyConservedOverManySteps(t *testing.T) {
	g := newSolverTestGeom(t)
	e := grid.NewVField(g)
	b := grid.NewVField(g)
	j := grid.NewCurrent(g)
	s := NewSolver(g)

	cx, cy := g.Nx[0]/2, g.Nx[1]/2
	for dj := -2; dj <= 2; dj++ {
		for di := -2; di <= 2; di++ {
			amp := math.Exp(-0.5 * float64(di*di+dj*dj))
			e.AddAt(cx+di, cy+dj, 0, 0, amp)
		}
	}

	dt := 0.2 * g.Dx[0]
	e0 := fieldEnergy(e, b)

	for n := 0; n < 100; n++ {
		ExchangeGuardX(e)
		ExchangeGuardX(b)
		s.Step(e, b, j, dt)
	}

	e1 := fieldEnergy(e, b)
	rel := math.Abs(e1-e0) / e0
	if rel > 1e-2 {
		t.Fatalf("relative energy drift = %v, want < 1e-2", rel)
	}
}

func TestExchangeGuardXPeriodicInvariant(t *testing.T) {
	g := newSolverTestGeom(t)
	e := grid.NewVField(g)
	nx := g.Nx[0]
	for j := 0; j < g.Nx[1]; j++ {
		for i := 0; i < nx; i++ {
			e.AddAt(i, j, float64(i+j*nx), 0, 0)
		}
	}
	ExchangeGuardX(e)

	for j := 0; j < g.Nx[1]; j++ {
		xm1, _, _ := e.At(-1, j)
		xn1, _, _ := e.At(nx-1, j)
		if xm1 != xn1 {
			t.Fatalf("row %d: F[-1,j]=%v want F[nx-1,j]=%v", j, xm1, xn1)
		}
		xn, _, _ := e.At(nx, j)
		x0, _, _ := e.At(0, j)
		if xn != x0 {
			t.Fatalf("row %d: F[nx,j]=%v want F[0,j]=%v", j, xn, x0)
		}
	}
}

func TestExchangeGuardYHalfDuplex(t *testing.T) {
	g := newSolverTestGeom(t)
	lower := grid.NewVField(g)
	upper := grid.NewVField(g)
	ny := g.Nx[1]

	for i := -g.GC[0][0]; i < g.Nx[0]+g.GC[0][1]; i++ {
		upper.AddAt(i, 0, 1.0, 0, 0)
		lower.AddAt(i, ny-1, 2.0, 0, 0)
	}

	ExchangeGuardY(lower, upper, g)

	x, _, _ := lower.At(0, ny)
	if x != 1.0 {
		t.Fatalf("lower's upper guard = %v, want 1.0 (upper's first interior row)", x)
	}
	x, _, _ = upper.At(0, -1)
	if x != 2.0 {
		t.Fatalf("upper's lower guard = %v, want 2.0 (lower's last interior row)", x)
	}
}

func TestShiftWindowZerosRightEdge(t *testing.T) {
	g := newSolverTestGeom(t)
	e := grid.NewVField(g)
	b := grid.NewVField(g)
	for i := -g.GC[0][0]; i < g.Nx[0]+g.GC[0][1]; i++ {
		e.AddAt(i, 0, float64(i), 0, 0)
	}
	ShiftWindow(e, b, g)

	hiI := g.Nx[0] + g.GC[0][1] - 1
	x, _, _ := e.At(hiI, 0)
	if x != 0 {
		t.Fatalf("rightmost cell after window shift = %v, want 0", x)
	}
	x, _, _ = e.At(hiI-1, 0)
	if x != float64(hiI) {
		t.Fatalf("shifted cell = %v, want %v", x, hiI)
	}
}
