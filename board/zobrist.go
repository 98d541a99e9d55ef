package board

import "math/rand"

// Zobrist key tables, seeded deterministically so hashes are
// reproducible across runs (and across processes comparing notes).
var (
	zobristPiece   [PieceArraySize][SquareArraySize]uint64
	zobristCastle  [AnyCastle + 1]uint64
	zobristEnPassant [SquareArraySize]uint64
	zobristColor   uint64
)

func rand64(r *rand.Rand) uint64 {
	return r.Uint64()
}

func init() {
	r := rand.New(rand.NewSource(1))

	for p := WhitePawn; p < PieceArraySize; p++ {
		for sq := Square(0); sq < 64; sq++ {
			zobristPiece[p][sq] = rand64(r)
		}
	}
	for c := Castle(0); c <= AnyCastle; c++ {
		zobristCastle[c] = rand64(r)
	}
	// En-passant keys are only ever indexed for squares on rank 3 or
	// rank 6 (the only ranks a capturable en-passant square can sit
	// on), but the table is sized for every square for simplicity.
	for r2 := Rank(0); r2 < 8; r2++ {
		if r2 != 2 && r2 != 5 {
			continue
		}
		for f := File(0); f < 8; f++ {
			zobristEnPassant[RankFile(r2, f)] = rand64(r)
		}
	}
	zobristColor = rand64(r)
}

// ZobristPiece returns the key for a piece standing on sq.
func ZobristPiece(p Piece, sq Square) uint64 { return zobristPiece[p][sq] }

// ZobristCastle returns the key for a given castling-rights mask.
func ZobristCastle(c Castle) uint64 { return zobristCastle[c] }

// ZobristEnPassant returns the key for an en-passant target square.
// sq must be SquareNone-checked by the caller; this table is only
// populated for rank-3/rank-6 squares.
func ZobristEnPassant(sq Square) uint64 { return zobristEnPassant[sq] }

// ZobristColor is XOR'd in whenever it is Black's turn to move.
func ZobristColor() uint64 { return zobristColor }
