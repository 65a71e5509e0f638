package physics

import "github.com/pthm-cable/pic2d/grid"

// segment is one virtual sub-trajectory of a particle's motion during a
// single step, confined to one cell (ic,jc), with start/end coordinates
// expressed locally to that cell in [0,1].
type segment struct {
	ic, jc     int32
	x0, y0     float64
	x1, y1     float64
}

// depositSegments splits a particle's raw (untrimmed) displacement
// (dx,dy) from its pre-push cell (ix,iy)+(x,y) into up to three virtual
// sub-segments at cell crossings (x-crossing first, then a y-crossing
// within whichever resulting piece contains it) and accumulates each
// into j.
func depositSegments(j *grid.Current, ix, iy int32, x, y, dx, dy float64, di, dj int32, q, qvz, dtInv float64) {
	type xpiece struct {
		s0, s1 float64
		xOff   int32
	}
	var pieces []xpiece
	if di == 0 {
		pieces = []xpiece{{0, 1, 0}}
	} else {
		xb := 0.0
		if di > 0 {
			xb = 1.0
		}
		sx := (xb - x) / dx
		if sx < 0 {
			sx = 0
		} else if sx > 1 {
			sx = 1
		}
		pieces = []xpiece{{0, sx, 0}, {sx, 1, di}}
	}

	haveY := dj != 0
	var sy float64
	if haveY {
		yb := 0.0
		if dj > 0 {
			yb = 1.0
		}
		sy = (yb - y) / dy
		if sy < 0 {
			sy = 0
		} else if sy > 1 {
			sy = 1
		}
	}

	emit := func(s0, s1 float64, xOff, yOff int32) {
		if s1 <= s0 {
			return
		}
		seg := segment{
			ic: ix + xOff,
			jc: iy + yOff,
			x0: x + s0*dx - float64(xOff),
			y0: y + s0*dy - float64(yOff),
			x1: x + s1*dx - float64(xOff),
			y1: y + s1*dy - float64(yOff),
		}
		depositOne(j, seg, q, qvz, dtInv)
	}

	for _, p := range pieces {
		if p.s1 <= p.s0 {
			continue
		}
		if haveY && sy > p.s0 && sy < p.s1 {
			emit(p.s0, sy, p.xOff, 0)
			emit(sy, p.s1, p.xOff, dj)
		} else {
			yOff := int32(0)
			if haveY && sy <= p.s0 {
				yOff = dj
			}
			emit(p.s0, p.s1, p.xOff, yOff)
		}
	}
}

// depositOne accumulates one in-cell virtual sub-segment into J: J.x and
// J.y carry the in-plane (longitudinal) flux of the segment's own
// displacement split between the two grid edges it touches, weighted by
// the segment's time-averaged transverse position; J.z carries the
// out-of-plane current, weighted by the area-swept shape overlap between
// the segment's start and end corners.
func depositOne(j *grid.Current, sg segment, q, qvz, dtInv float64) {
	geom := j.Geom
	wx := sg.x1 - sg.x0
	wy := sg.y1 - sg.y0
	avgX := 0.5 * (sg.x0 + sg.x1)
	avgY := 0.5 * (sg.y0 + sg.y1)

	ic, jc := int(sg.ic), int(sg.jc)
	idx00 := geom.Index(ic, jc)
	idx01 := geom.Index(ic, jc+1)
	idx10 := geom.Index(ic+1, jc)

	if wx != 0 {
		fx := q * wx * dtInv
		j.X[idx00] += fx * (1 - avgY)
		j.X[idx01] += fx * avgY
	}
	if wy != 0 {
		fy := q * wy * dtInv
		j.Y[idx00] += fy * (1 - avgX)
		j.Y[idx10] += fy * avgX
	}

	s0x, s1x := sg.x0, sg.x1
	s0y, s1y := sg.y0, sg.y1
	w := s0x*s0y + s1x*s1y + (s0x*s1y-s1x*s0y)/2
	j.Z[idx00] += qvz * w * dtInv
}
