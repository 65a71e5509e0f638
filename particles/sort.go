package particles

import "sync/atomic"

// candidate is one particle destined for placement during a sort pass,
// referencing its source buffer by index so the scatter phase need not
// copy component-by-component twice.
type candidate struct {
	buf  *Buffer
	idx  int32
	tile int
}

// FullSort is the simple bucket sort used at startup and optionally on
// demand: histogram every valid particle by tile, exclusive-prefix-sum
// the histogram, then scatter through a scratch buffer. It ignores the
// incoming vectors — at startup there is nothing to merge.
func FullSort(s *Store) error {
	return sortCandidates(s, collectMainOnly(s))
}

// Sort is the per-step maintenance pass: it buckets the surviving
// main-buffer particles *and* merges the three incoming vectors in the
// same pass, then resets the incoming buffers' sizes to zero. Tile
// placement uses a stable counting sort — candidates are visited in a
// fixed order (main buffer ascending, then Incoming[0..2] ascending) and
// placed by a per-tile cursor that only ever increases — so re-running
// Sort with empty incoming buffers and no intervening advance reproduces
// the exact same layout (sorter idempotence).
func Sort(s *Store) error {
	candidates := collectMainOnly(s)
	for _, in := range s.Incoming {
		n := in.Len()
		for i := int32(0); i < int32(n); i++ {
			candidates = append(candidates, candidate{buf: in, idx: i, tile: s.TileIndex(in.Ix[i], in.Iy[i])})
		}
	}
	if err := sortCandidates(s, candidates); err != nil {
		return err
	}
	for _, in := range s.Incoming {
		in.Reset()
	}
	return nil
}

// collectMainOnly gathers every non-invalid slot currently in the main
// buffer, in ascending slot order.
func collectMainOnly(s *Store) []candidate {
	n := s.Main.Len()
	out := make([]candidate, 0, n)
	for i := int32(0); i < int32(n); i++ {
		if s.Main.Invalid[i] {
			continue
		}
		out = append(out, candidate{buf: s.Main, idx: i, tile: s.TileIndex(s.Main.Ix[i], s.Main.Iy[i])})
	}
	return out
}

// sortCandidates runs the histogram -> prefix-sum -> scatter pipeline
// over an already-tiled candidate list and installs the result as the
// store's new main buffer and tile offset table. Per-tile placement
// cursors are atomic counters, so the scatter loop itself could be
// parallelized across candidate shards without further synchronization;
// this single range loop already gets the same result sequentially.
func sortCandidates(s *Store, candidates []candidate) error {
	nTiles := s.NTiles()
	hist := make([]int32, nTiles)
	for _, c := range candidates {
		hist[c.tile]++
	}

	offsets := make([]int32, nTiles+1)
	total := ExclusivePrefixSum(offsets[:nTiles], hist)
	offsets[nTiles] = total

	if err := s.Grow(int(total)); err != nil {
		return err
	}

	cursors := make([]atomic.Int32, nTiles)
	for t := range cursors {
		cursors[t].Store(offsets[t])
	}

	// Candidates may reference slots of s.Main itself; writing through
	// to s.Scratch (never s.Main) keeps every read of c.buf sourced from
	// untouched data regardless of candidate order.
	dst := s.Scratch
	for _, c := range candidates {
		pos := cursors[c.tile].Add(1) - 1
		dst.Ix[pos] = c.buf.Ix[c.idx]
		dst.Iy[pos] = c.buf.Iy[c.idx]
		dst.X[pos] = c.buf.X[c.idx]
		dst.Y[pos] = c.buf.Y[c.idx]
		dst.Ux[pos] = c.buf.Ux[c.idx]
		dst.Uy[pos] = c.buf.Uy[c.idx]
		dst.Uz[pos] = c.buf.Uz[c.idx]
		dst.Invalid[pos] = false
	}
	dst.size.Store(int64(total))
	copy(s.TileOffset, offsets)
	s.Main, s.Scratch = s.Scratch, s.Main
	return nil
}
