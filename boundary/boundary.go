// Package boundary implements post-push particle boundary handling:
// periodic x-wrap or moving-window x-invalidation, y-direction handoff to
// the outgoing buffers of neighboring regions, and the moving-window
// right-edge injection hook.
package boundary

import "github.com/pthm-cable/pic2d/particles"

// Apply walks every non-invalid slot of the store's main buffer and
// resolves x and y boundary crossings. x crossings either wrap (periodic
// mode) or invalidate the particle (moving-window mode, since it has
// exited the window). y crossings hand the particle to the owning
// neighbor's outgoing buffer with domain wrap, then invalidate the local
// slot; capacity exhaustion on the outgoing buffer is a fatal
// CapacityExceeded error.
func Apply(s *particles.Store) error {
	buf := s.Main
	n := int32(buf.Len())
	nx := int32(s.NxGlobal)
	nyTotal := int32(s.NyGlobal)
	yLo, yHi := int32(s.YLo), int32(s.YHi)
	moving := s.Species.MovingWindow

	for k := int32(0); k < n; k++ {
		if buf.Invalid[k] {
			continue
		}

		ix := buf.Ix[k]
		switch {
		case moving && (ix < 0 || ix >= nx):
			buf.Invalid[k] = true
			continue
		case !moving && ix < 0:
			ix += nx
			buf.Ix[k] = ix
		case !moving && ix >= nx:
			ix -= nx
			buf.Ix[k] = ix
		}

		iy := buf.Iy[k]
		switch {
		case iy < yLo:
			wrapped := iy
			if wrapped < 0 {
				wrapped += nyTotal
			}
			if err := s.OutgoingDown.Append("outgoing_down", buf.Ix[k], wrapped,
				buf.X[k], buf.Y[k], buf.Ux[k], buf.Uy[k], buf.Uz[k]); err != nil {
				return err
			}
			buf.Invalid[k] = true
		case iy >= yHi:
			wrapped := iy
			if wrapped >= nyTotal {
				wrapped -= nyTotal
			}
			if err := s.OutgoingUp.Append("outgoing_up", buf.Ix[k], wrapped,
				buf.X[k], buf.Y[k], buf.Ux[k], buf.Uy[k], buf.Uz[k]); err != nil {
				return err
			}
			buf.Invalid[k] = true
		}
	}
	return nil
}

// ShiftWindow decrements every non-invalid particle's ix by one, the
// particle-side counterpart of emf.ShiftWindow: when the window advances,
// every particle's cell index shifts left with it.
func ShiftWindow(s *particles.Store) {
	buf := s.Main
	n := buf.Len()
	for k := 0; k < n; k++ {
		if buf.Invalid[k] {
			continue
		}
		buf.Ix[k]--
	}
}

// InjectRightEdge places ppc[0]*ppc[1] candidate particles per row of the
// rightmost column into the store's Injected incoming vector. Where to
// place candidates and how many is handled here; whether a candidate
// actually carries weight (and what thermal velocity it starts with) is
// decided by sample, an external density-profile collaborator. Candidates
// sample reports ok=false for are skipped.
func InjectRightEdge(s *particles.Store, sample particles.ProfileSampler) error {
	sp := s.Species
	rightCol := int32(s.NxGlobal - 1)
	ppcX, ppcY := sp.PPC[0], sp.PPC[1]
	if ppcX <= 0 {
		ppcX = 1
	}
	if ppcY <= 0 {
		ppcY = 1
	}

	for row := s.YLo; row < s.YHi; row++ {
		for sy := 0; sy < ppcY; sy++ {
			y := (float64(sy) + 0.5) / float64(ppcY)
			for sx := 0; sx < ppcX; sx++ {
				x := (float64(sx) + 0.5) / float64(ppcX)
				weight, ok := sample(sp.Profile, sp.ProfileN, sp.ProfileStart, sp.ProfileEnd, x, y)
				if !ok || weight <= 0 {
					continue
				}
				err := s.Incoming[particles.Injected].Append("incoming_injected",
					rightCol, int32(row), x, y, sp.Ufl[0], sp.Ufl[1], sp.Ufl[2])
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}
