package grid

import "testing"

func TestCurrentAdd(t *testing.T) {
	geom := testGeom(t)
	a := NewCurrent(geom)
	b := NewCurrent(geom)
	a.AddAt(0, 0, 1, 2, 3)
	b.AddAt(0, 0, 10, 20, 30)
	b.AddAt(1, 1, 1, 1, 1)

	a.Add(b)
	x, y, z := a.At(0, 0)
	if x != 11 || y != 22 || z != 33 {
		t.Fatalf("At(0,0) after Add = %v,%v,%v, want 11,22,33", x, y, z)
	}
	x, y, z = a.At(1, 1)
	if x != 1 || y != 1 || z != 1 {
		t.Fatalf("At(1,1) after Add = %v,%v,%v, want 1,1,1", x, y, z)
	}
}

func TestCurrentFilterPreservesUniform(t *testing.T) {
	geom := testGeom(t)
	c := NewCurrent(geom)
	lo, hi := -geom.GC[1][0], geom.Nx[1]+geom.GC[1][1]
	rlo, rhi := -geom.GC[0][0], geom.Nx[0]+geom.GC[0][1]
	for j := lo; j < hi; j++ {
		for i := rlo; i < rhi; i++ {
			c.AddAt(i, j, 2.0, 0, 0)
		}
	}
	scratch := make([]float64, geom.NRow())
	c.Filter(scratch)

	for j := lo; j < hi; j++ {
		for i := rlo + 1; i < rhi-1; i++ {
			x, _, _ := c.At(i, j)
			if x != 2.0 {
				t.Fatalf("At(%d,%d) after filtering a uniform field = %v, want 2.0 unchanged", i, j, x)
			}
		}
	}
}
