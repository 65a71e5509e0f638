package particles

import (
	"sync/atomic"

	"github.com/pthm-cable/pic2d/picerr"
)

// Buffer is the raw structure-of-arrays particle layout shared by the
// main per-region storage and by the incoming/outgoing transfer vectors:
// integer cell indices, fractional in-cell position, three momentum
// components, and a logical-delete flag. size is atomic so that boundary
// processing can append to an adjacent region's outgoing buffer under a
// fetch-add.
type Buffer struct {
	Ix, Iy             []int32
	X, Y               []float64
	Ux, Uy, Uz         []float64
	Invalid            []bool
	size               atomic.Int64
	cap                int
}

// NewBuffer allocates a Buffer with fixed capacity cap. Capacity for
// transfer buffers must be pre-reserved by the caller (see
// CapacityExceeded); it is never grown mid-step.
func NewBuffer(cap int) *Buffer {
	return &Buffer{
		Ix: make([]int32, cap), Iy: make([]int32, cap),
		X: make([]float64, cap), Y: make([]float64, cap),
		Ux: make([]float64, cap), Uy: make([]float64, cap), Uz: make([]float64, cap),
		Invalid: make([]bool, cap),
		cap:     cap,
	}
}

// Len returns the number of slots currently in use.
func (b *Buffer) Len() int { return int(b.size.Load()) }

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int { return b.cap }

// Reset zeroes the size without touching capacity; used after a buffer's
// contents have been consumed by the sorter.
func (b *Buffer) Reset() { b.size.Store(0) }

// Append atomically reserves the next free slot and writes a particle
// into it. Concurrent callers (different tiles appending to the same
// outgoing buffer) are safe. Returns CapacityExceeded if the buffer is
// full — a fatal error, since headroom should have been reserved at
// allocation time.
func (b *Buffer) Append(name string, ix, iy int32, x, y, ux, uy, uz float64) error {
	idx := b.size.Add(1) - 1
	if idx >= int64(b.cap) {
		return picerr.CapacityExceeded(name, int(idx)+1, b.cap)
	}
	b.Ix[idx], b.Iy[idx] = ix, iy
	b.X[idx], b.Y[idx] = x, y
	b.Ux[idx], b.Uy[idx], b.Uz[idx] = ux, uy, uz
	b.Invalid[idx] = false
	return nil
}

// Incoming buffer slots: from the region above, from the region below,
// and (moving window mode) right-edge injection.
const (
	FromAbove = 0
	FromBelow = 1
	Injected  = 2
)

// Store is one species' tiled particle storage within one region.
type Store struct {
	Species *Species

	T         int // tile edge length, power of two
	NTx, NTy  int // tiles per axis
	YLo, YHi  int // region's global row slab [YLo, YHi)
	NxGlobal  int // nx[0], needed for x-axis periodic wrap
	NyGlobal  int // total rows across all regions, for y wrap

	Main *Buffer

	// Scratch is a same-capacity buffer the sorter ping-pongs with Main
	// so that scatter is always a read-from-Main / write-to-Scratch pass
	// rather than an in-place overwrite that could clobber a
	// not-yet-read source slot.
	Scratch *Buffer

	// TileOffset is the exclusive prefix-sum offset table: entries for
	// tile t lie in [TileOffset[t], TileOffset[t+1]).
	TileOffset []int32

	// Incoming holds the three per-species transfer vectors described
	// above; Outgoing{Up,Down} point at the *adjacent* region's
	// Incoming[FromBelow]/Incoming[FromAbove] buffers respectively —
	// they are owned by the destination region, not by this one.
	Incoming    [3]*Buffer
	OutgoingUp   *Buffer
	OutgoingDown *Buffer
}

// NewStore allocates a Store with nTiles = (nx/T)*(ny/T) and the given
// initial main-buffer capacity. T must evenly divide both nx and ny per
// region, or a ConfigError is returned.
func NewStore(sp *Species, t, nx, ny, yLo, nyGlobal, cap int) (*Store, error) {
	if t <= 0 || nx%t != 0 || ny%t != 0 {
		return nil, picerr.Config("tile", "tile edge %d must evenly divide nx=%d and region ny=%d", t, nx, ny)
	}
	ntx, nty := nx/t, ny/t
	nTiles := ntx * nty
	s := &Store{
		Species:  sp,
		T:        t,
		NTx:      ntx,
		NTy:      nty,
		YLo:      yLo,
		YHi:      yLo + ny,
		NxGlobal: nx,
		NyGlobal: nyGlobal,
		Main:       NewBuffer(cap),
		Scratch:    NewBuffer(cap),
		TileOffset: make([]int32, nTiles+1),
	}
	return s, nil
}

// NTiles returns the number of tiles.
func (s *Store) NTiles() int { return s.NTx * s.NTy }

// TileIndex returns the row-major tile index for a global particle cell
// (ix,iy).
func (s *Store) TileIndex(ix, iy int32) int {
	tx := int(ix) / s.T
	ty := (int(iy) - s.YLo) / s.T
	return ty*s.NTx + tx
}

// TileCoords returns (tx,ty) for a tile index, the inverse of the
// row-major enumeration TileIndex uses.
func (s *Store) TileCoords(t int) (tx, ty int) {
	return t % s.NTx, t / s.NTx
}

// Grow reallocates the main buffer with extra headroom when N + incoming
// would exceed capacity, doubling and rounding up to a 64-particle
// alignment boundary so growth stays rare.
func (s *Store) Grow(minCap int) error {
	if minCap < 0 {
		return picerr.Alloc("main buffer", "negative requested capacity %d (corrupted tile offset sum)", minCap)
	}
	if minCap <= s.Main.cap {
		return nil
	}
	newCap := s.Main.cap * 2
	if newCap < minCap {
		newCap = minCap
	}
	// Round up to a multiple of 64 so tile-local accelerator kernels can
	// assume aligned chunk boundaries.
	if rem := newCap % 64; rem != 0 {
		newCap += 64 - rem
	}
	nb := NewBuffer(newCap)
	n := s.Main.Len()
	copy(nb.Ix[:n], s.Main.Ix[:n])
	copy(nb.Iy[:n], s.Main.Iy[:n])
	copy(nb.X[:n], s.Main.X[:n])
	copy(nb.Y[:n], s.Main.Y[:n])
	copy(nb.Ux[:n], s.Main.Ux[:n])
	copy(nb.Uy[:n], s.Main.Uy[:n])
	copy(nb.Uz[:n], s.Main.Uz[:n])
	copy(nb.Invalid[:n], s.Main.Invalid[:n])
	nb.size.Store(int64(n))
	s.Main = nb
	s.Scratch = NewBuffer(newCap)
	return nil
}
