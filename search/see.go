package search

import "github.com/corvidchess/corvid/board"

var seeValue = [board.FigureArraySize]int32{0, 100, 320, 330, 500, 900, 20000}

// seeSign reports whether the static exchange evaluation of a capture
// move is at worst break-even: a quick sign check used to prune
// clearly-losing captures out of quiescence search without computing
// the full swap value.
func seeSign(pos *board.Position, m board.Move) bool {
	if seeValue[m.Capture.Figure()] >= seeValue[m.Piece.Figure()] {
		return true
	}
	return see(pos, m) >= 0
}

// see computes the static exchange evaluation of the capture sequence
// starting with m on m.To: the net material gain assuming both sides
// recapture with their least valuable attacker, in order, for as long
// as doing so is profitable.
func see(pos *board.Position, m board.Move) int32 {
	to := m.To
	occ := pos.Occupancy().Clear(m.From)
	side := pos.SideToMove.Opposite()

	var gain [32]int32
	depth := 0
	gain[0] = seeValue[m.Capture.Figure()]
	attackerValue := seeValue[m.Piece.Figure()]

	for {
		depth++
		gain[depth] = attackerValue - gain[depth-1]
		if max32(-gain[depth-1], gain[depth]) < 0 {
			break
		}
		from, fig, ok := leastValuableAttacker(pos, to, side, occ)
		if !ok {
			break
		}
		occ = occ.Clear(from)
		attackerValue = seeValue[fig]
		side = side.Opposite()
		if depth >= len(gain)-1 {
			break
		}
	}

	for depth--; depth > 0; depth-- {
		gain[depth-1] = -max32(-gain[depth-1], gain[depth])
	}
	return gain[0]
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// leastValuableAttacker finds the cheapest piece of side attacking sq
// given occupancy occ (which may have pieces removed from a swap
// already in progress).
func leastValuableAttacker(pos *board.Position, sq board.Square, side board.Color, occ board.Bitboard) (board.Square, board.Figure, bool) {
	if bb := board.PawnAttacks(side.Opposite(), sq) & pos.ByPiece(side, board.Pawn) & occ; bb != 0 {
		return bb.AsSquare(), board.Pawn, true
	}
	if bb := board.KnightAttacks(sq) & pos.ByPiece(side, board.Knight) & occ; bb != 0 {
		return bb.AsSquare(), board.Knight, true
	}
	if bb := board.BishopAttacks(sq, occ) & pos.ByPiece(side, board.Bishop) & occ; bb != 0 {
		return bb.AsSquare(), board.Bishop, true
	}
	if bb := board.RookAttacks(sq, occ) & pos.ByPiece(side, board.Rook) & occ; bb != 0 {
		return bb.AsSquare(), board.Rook, true
	}
	if bb := board.QueenAttacks(sq, occ) & pos.ByPiece(side, board.Queen) & occ; bb != 0 {
		return bb.AsSquare(), board.Queen, true
	}
	if bb := board.KingAttacks(sq) & pos.ByPiece(side, board.King) & occ; bb != 0 {
		return bb.AsSquare(), board.King, true
	}
	return board.SquareNone, board.NoFigure, false
}
