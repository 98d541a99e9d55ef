// Package search implements move ordering, static evaluation, the
// transposition table, and the iterative-deepening alpha-beta search
// that sits on top of the board package.
package search

import (
	"unsafe"

	"github.com/corvidchess/corvid/board"
)

// Bound classifies what a stored score means relative to the window
// it was searched with.
type Bound uint8

const (
	Exact Bound = iota
	LowerBound
	UpperBound
)

// ttEntry is one slot of the transposition table.
type ttEntry struct {
	lock  uint32
	move  board.Move
	score int16
	depth int8
	bound Bound
	valid bool
}

// TranspositionTable is a fixed-size, power-of-two-sized cache keyed
// by Zobrist hash. Each hash maps to two candidate slots (a simple
// two-way set-associative scheme); the replacement policy prefers
// keeping the deeper-searched entry and otherwise always replaces.
type TranspositionTable struct {
	table []ttEntry
	mask  uint32
}

// NewTranspositionTable allocates a table sized to approximately
// sizeMB megabytes, rounded down to a power of two entry count.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	if sizeMB < 1 {
		sizeMB = 1
	}
	entrySize := int(unsafe.Sizeof(ttEntry{}))
	numEntries := sizeMB * 1024 * 1024 / entrySize
	size := 1
	for size*2 <= numEntries {
		size *= 2
	}
	if size < 2 {
		size = 2
	}
	return &TranspositionTable{
		table: make([]ttEntry, size),
		mask:  uint32(size - 1),
	}
}

func (tt *TranspositionTable) split(hash uint64) (lock uint32, i0, i1 uint32) {
	lock = uint32(hash >> 32)
	i0 = uint32(hash) & tt.mask
	i1 = i0 ^ 1
	return lock, i0, i1
}

// Clear empties the table.
func (tt *TranspositionTable) Clear() {
	for i := range tt.table {
		tt.table[i] = ttEntry{}
	}
}

// Store records a search result. Replacement policy: overwrite a slot
// with the same lock, an empty slot, or a shallower-or-equal stored
// depth; otherwise fall through to the table's second slot for this
// hash and always replace there.
func (tt *TranspositionTable) Store(hash uint64, depth int, bound Bound, score int16, move board.Move) {
	lock, i0, i1 := tt.split(hash)
	e := &tt.table[i0]
	if !e.valid || e.lock == lock || int(e.depth) <= depth {
		tt.table[i0] = ttEntry{lock: lock, move: move, score: score, depth: int8(depth), bound: bound, valid: true}
		return
	}
	tt.table[i1] = ttEntry{lock: lock, move: move, score: score, depth: int8(depth), bound: bound, valid: true}
}

// Probe result.
type Probe struct {
	Found bool
	Score int16
	Depth int
	Bound Bound
	Move  board.Move
}

// Probe looks up hash, checking both candidate slots.
func (tt *TranspositionTable) Probe(hash uint64) Probe {
	lock, i0, i1 := tt.split(hash)
	if e := &tt.table[i0]; e.valid && e.lock == lock {
		return Probe{true, e.score, int(e.depth), e.bound, e.move}
	}
	if e := &tt.table[i1]; e.valid && e.lock == lock {
		return Probe{true, e.score, int(e.depth), e.bound, e.move}
	}
	return Probe{}
}
