package boundary

import (
	"testing"

	"github.com/pthm-cable/pic2d/particles"
)

func newBoundaryStore(t *testing.T, moving bool) *particles.Store {
	t.Helper()
	sp := &particles.Species{Name: "e", MovingWindow: moving, PPC: [2]int{1, 1}}
	s, err := particles.NewStore(sp, 4, 16, 8, 8, 24, 32)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	s.OutgoingUp = particles.NewBuffer(8)
	s.OutgoingDown = particles.NewBuffer(8)
	for i := range s.Incoming {
		s.Incoming[i] = particles.NewBuffer(8)
	}
	return s
}

func TestApplyPeriodicXWrap(t *testing.T) {
	s := newBoundaryStore(t, false)
	if err := s.Main.Append("main", -1, 10, 0.5, 0.5, 0, 0, 0); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Main.Append("main", 16, 10, 0.5, 0.5, 0, 0, 0); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := Apply(s); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if s.Main.Ix[0] != 15 {
		t.Fatalf("ix[0] = %d, want 15 (wrapped from -1)", s.Main.Ix[0])
	}
	if s.Main.Ix[1] != 0 {
		t.Fatalf("ix[1] = %d, want 0 (wrapped from 16)", s.Main.Ix[1])
	}
	if s.Main.Invalid[0] || s.Main.Invalid[1] {
		t.Fatal("periodic wrap must not invalidate particles")
	}
}

func TestApplyMovingWindowInvalidatesExits(t *testing.T) {
	s := newBoundaryStore(t, true)
	if err := s.Main.Append("main", -1, 10, 0.5, 0.5, 0, 0, 0); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := Apply(s); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !s.Main.Invalid[0] {
		t.Fatal("moving-window particle crossing x<0 must be invalidated")
	}
}

func TestApplyYTransferToOutgoing(t *testing.T) {
	s := newBoundaryStore(t, false)
	if err := s.Main.Append("main", 5, 7, 0.5, 0.5, 0, 0, 0); err != nil { // below yLo=8
		t.Fatalf("append: %v", err)
	}
	if err := s.Main.Append("main", 5, 24, 0.5, 0.5, 0, 0, 0); err != nil { // at/over yHi=16 and at nyGlobal=24, wraps to 0
		t.Fatalf("append: %v", err)
	}

	if err := Apply(s); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !s.Main.Invalid[0] || !s.Main.Invalid[1] {
		t.Fatal("particles crossing y boundary must be invalidated locally")
	}
	if s.OutgoingDown.Len() != 1 || s.OutgoingDown.Iy[0] != 7 {
		t.Fatalf("outgoing-down = %d particles, iy=%v; want 1 particle iy=7", s.OutgoingDown.Len(), s.OutgoingDown.Iy[:s.OutgoingDown.Len()])
	}
	if s.OutgoingUp.Len() != 1 || s.OutgoingUp.Iy[0] != 0 {
		t.Fatalf("outgoing-up = %d particles, iy=%v; want 1 particle iy=0 (wrapped)", s.OutgoingUp.Len(), s.OutgoingUp.Iy[:s.OutgoingUp.Len()])
	}
}

func TestShiftWindowDecrementsIx(t *testing.T) {
	s := newBoundaryStore(t, true)
	if err := s.Main.Append("main", 5, 10, 0.5, 0.5, 0, 0, 0); err != nil {
		t.Fatalf("append: %v", err)
	}
	ShiftWindow(s)
	if s.Main.Ix[0] != 4 {
		t.Fatalf("ix after shift = %d, want 4", s.Main.Ix[0])
	}
}

func TestInjectRightEdgeSkipsRejectedSamples(t *testing.T) {
	s := newBoundaryStore(t, true)
	always := func(profile particles.DensityProfile, n, start, end, x, y float64) (float64, bool) {
		return 1.0, true
	}
	if err := InjectRightEdge(s, always); err != nil {
		t.Fatalf("InjectRightEdge: %v", err)
	}
	wantN := (s.YHi - s.YLo) * s.Species.PPC[0] * s.Species.PPC[1]
	if s.Incoming[particles.Injected].Len() != wantN {
		t.Fatalf("injected = %d, want %d", s.Incoming[particles.Injected].Len(), wantN)
	}
	for k := 0; k < s.Incoming[particles.Injected].Len(); k++ {
		if s.Incoming[particles.Injected].Ix[k] != int32(s.NxGlobal-1) {
			t.Fatalf("injected particle %d not at rightmost column", k)
		}
	}

	never := func(profile particles.DensityProfile, n, start, end, x, y float64) (float64, bool) {
		return 0, false
	}
	s.Incoming[particles.Injected].Reset()
	if err := InjectRightEdge(s, never); err != nil {
		t.Fatalf("InjectRightEdge: %v", err)
	}
	if s.Incoming[particles.Injected].Len() != 0 {
		t.Fatalf("injected with all samples rejected = %d, want 0", s.Incoming[particles.Injected].Len())
	}
}
