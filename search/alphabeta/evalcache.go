package alphabeta

import (
	"math"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/unit117/Gomoku/board"
)

const (
	entrySize = 24

	minCachePowerOf2 = 12
	maxCachePowerOf2 = 20
)

// 24 bytes (entrySize)
type cacheEntry struct {
	hash  uint64
	value float64
	side  board.Cell
}

// EvalCache remembers leaf evaluations by position key. A leaf's value only
// depends on the stones, the side to move and the searching side, so a hit
// returns exactly what a fresh evaluation would.
type EvalCache struct {
	table        []cacheEntry
	sizePowerOf2 int
	sizeMask     uint64

	created uint64
	lookups uint64
	hits    uint64
}

func (t *EvalCache) lookup(key uint64, side board.Cell) (float64, bool) {
	t.lookups++
	e := t.table[key&t.sizeMask]
	if e.hash != key || e.side != side {
		return 0, false
	}
	t.hits++
	return e.value, true
}

func (t *EvalCache) store(key uint64, side board.Cell, value float64) {
	t.table[key&t.sizeMask] = cacheEntry{hash: key, value: value, side: side}
	t.created++
}

// Reset sizes the cache to roughly the given fraction of system memory,
// bounded to a few megabytes either way, and empties it.
func (t *EvalCache) Reset(fractionOfMemory float64) {
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
	t.sizePowerOf2 = minCachePowerOf2
	if desiredNElems >= 1 {
		t.sizePowerOf2 = int(math.Log2(desiredNElems))
	}
	t.sizePowerOf2 = max(minCachePowerOf2, min(maxCachePowerOf2, t.sizePowerOf2))

	numElems := 1 << t.sizePowerOf2
	t.sizeMask = uint64(numElems - 1)
	reset := false
	if t.table != nil && len(t.table) == numElems {
		reset = true
		clear(t.table)
	} else {
		t.table = make([]cacheEntry, numElems)
	}
	log.Debug().Int("num-elems", numElems).
		Float64("desired-num-elems", desiredNElems).
		Int("estimated-total-memory-bytes", numElems*entrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Bool("reset", reset).
		Msg("eval-cache-size")

	t.created = 0
	t.lookups = 0
	t.hits = 0
}

// Stats returns the number of stored entries, lookups and hits since the
// last Reset.
func (t *EvalCache) Stats() (created, lookups, hits uint64) {
	return t.created, t.lookups, t.hits
}
