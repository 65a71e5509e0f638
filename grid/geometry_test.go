package grid

import "testing"

func TestNewGeometryRejectsNonPositive(t *testing.T) {
	if _, err := NewGeometry([2]int{0, 4}, [2]float64{1, 1}, [2][2]int{}); err == nil {
		t.Fatal("want ConfigError for nx=0")
	}
	if _, err := NewGeometry([2]int{4, 4}, [2]float64{1, -1}, [2][2]int{}); err == nil {
		t.Fatal("want ConfigError for negative box")
	}
}

func TestGeometryIndexAndBounds(t *testing.T) {
	g, err := NewGeometry([2]int{4, 4}, [2]float64{4, 4}, [2][2]int{{1, 1}, {1, 1}})
	if err != nil {
		t.Fatalf("NewGeometry: %v", err)
	}
	if g.NRow() != 6 || g.NCol() != 6 {
		t.Fatalf("NRow,NCol = %d,%d, want 6,6", g.NRow(), g.NCol())
	}
	if g.Dx[0] != 1 || g.Dx[1] != 1 {
		t.Fatalf("Dx = %v, want [1 1]", g.Dx)
	}

	if !g.InBounds(0, 0) || !g.InBounds(-1, -1) || !g.InBounds(3, 3) {
		t.Fatal("expected interior and guard cells in bounds")
	}
	if g.InBounds(-2, 0) || g.InBounds(5, 0) {
		t.Fatal("expected out-of-guard cells to be rejected")
	}

	idx00 := g.Index(0, 0)
	idxNeg := g.Index(-1, -1)
	if idx00 != idxNeg+g.NRow()+1 {
		t.Fatalf("Index(0,0)=%d Index(-1,-1)=%d, expected diagonal offset", idx00, idxNeg)
	}
}

func TestGeometryWrapX(t *testing.T) {
	g, err := NewGeometry([2]int{4, 4}, [2]float64{4, 4}, [2][2]int{})
	if err != nil {
		t.Fatalf("NewGeometry: %v", err)
	}
	cases := []struct{ in, want int }{
		{0, 0}, {3, 3}, {4, 0}, {-1, 3}, {-5, 3}, {7, 3},
	}
	for _, c := range cases {
		if got := g.WrapX(c.in); got != c.want {
			t.Fatalf("WrapX(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
