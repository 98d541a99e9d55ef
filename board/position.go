package board

import "fmt"

// Position is a complete, self-contained chess position: piece
// placement, side to move, castling rights, en-passant target,
// halfmove/fullmove counters, and the running Zobrist hash.
//
// Position exclusively owns its bitboards, mailbox and state; it is
// mutated only through DoMove/UnmakeMove. Copying a Position by value
// yields an independent snapshot.
type Position struct {
	ByFigure [FigureArraySize]Bitboard
	ByColor  [ColorArraySize]Bitboard
	mailbox  [SquareArraySize]Piece

	SideToMove     Color
	Castling       Castle
	EnPassant      Square
	HalfMoveClock  int
	FullMoveNumber int
	Hash           uint64
}

// UndoState captures everything DoMove overwrote, so that UnmakeMove
// can restore the position bit-for-bit, including the hash.
type UndoState struct {
	Move           Move
	Castling       Castle
	EnPassant      Square
	HalfMoveClock  int
	FullMoveNumber int
	Hash           uint64
}

// NewPosition returns an empty position: no pieces, White to move, no
// castling rights, no en-passant, move one.
func NewPosition() *Position {
	pos := &Position{
		SideToMove:     White,
		Castling:       NoCastle,
		EnPassant:      SquareNone,
		FullMoveNumber: 1,
	}
	for sq := range pos.mailbox {
		pos.mailbox[sq] = NoPiece
	}
	return pos
}

// Occupancy is the union of both sides' pieces.
func (pos *Position) Occupancy() Bitboard {
	return pos.ByColor[White] | pos.ByColor[Black]
}

// ByPiece returns the bitboard for a specific (color, figure) pair.
func (pos *Position) ByPiece(c Color, f Figure) Bitboard {
	return pos.ByFigure[f] & pos.ByColor[c]
}

// Get returns the piece on sq, or NoPiece if empty.
func (pos *Position) Get(sq Square) Piece { return pos.mailbox[sq] }

// placePiece and removePiece update bitboards/mailbox only, without
// touching the hash. They are the low-level primitives UnmakeMove
// uses, since UnmakeMove restores the hash wholesale from UndoState
// rather than reversing each XOR individually.
func (pos *Position) placePiece(sq Square, p Piece) {
	pos.mailbox[sq] = p
	pos.ByFigure[p.Figure()] = pos.ByFigure[p.Figure()].Set(sq)
	pos.ByColor[p.Color()] = pos.ByColor[p.Color()].Set(sq)
}

func (pos *Position) removePiece(sq Square, p Piece) {
	pos.mailbox[sq] = NoPiece
	pos.ByFigure[p.Figure()] = pos.ByFigure[p.Figure()].Clear(sq)
	pos.ByColor[p.Color()] = pos.ByColor[p.Color()].Clear(sq)
}

// Put places p on sq and incorporates it into the hash. Used by
// DoMove; FEN parsing places pieces with placePiece and then computes
// the hash from scratch.
func (pos *Position) Put(sq Square, p Piece) {
	pos.placePiece(sq, p)
	pos.Hash ^= ZobristPiece(p, sq)
}

// Remove clears sq (which must hold p) and incorporates the removal
// into the hash.
func (pos *Position) Remove(sq Square, p Piece) {
	pos.removePiece(sq, p)
	pos.Hash ^= ZobristPiece(p, sq)
}

// computeHash recomputes the Zobrist hash from scratch. Used by FEN
// parsing and by tests asserting incremental/from-scratch agreement.
func (pos *Position) computeHash() uint64 {
	var h uint64
	for sq := Square(0); sq < 64; sq++ {
		if p := pos.Get(sq); p != NoPiece {
			h ^= ZobristPiece(p, sq)
		}
	}
	h ^= ZobristCastle(pos.Castling)
	if pos.EnPassant != SquareNone {
		h ^= ZobristEnPassant(pos.EnPassant)
	}
	if pos.SideToMove == Black {
		h ^= ZobristColor()
	}
	return h
}

// Verify checks the bitboard/mailbox/hash invariants, returning an
// error describing the first violation found. Intended for tests and
// debug builds, not the hot path.
func (pos *Position) Verify() error {
	var seen Bitboard
	for sq := Square(0); sq < 64; sq++ {
		p := pos.Get(sq)
		bit := sq.Bitboard()
		if p == NoPiece {
			if pos.Occupancy()&bit != 0 {
				return fmt.Errorf("board: square %v empty in mailbox but occupied in bitboards", sq)
			}
			continue
		}
		if seen&bit != 0 {
			return fmt.Errorf("board: square %v claimed by two pieces", sq)
		}
		seen |= bit
		if pos.ByPiece(p.Color(), p.Figure())&bit == 0 {
			return fmt.Errorf("board: mailbox/bitboard mismatch at %v", sq)
		}
	}
	if pos.ByPiece(White, King).Popcnt() != 1 || pos.ByPiece(Black, King).Popcnt() != 1 {
		return fmt.Errorf("board: expected exactly one king per side")
	}
	if h := pos.computeHash(); h != pos.Hash {
		return fmt.Errorf("board: hash mismatch, incremental=%#x recomputed=%#x", pos.Hash, h)
	}
	return nil
}

// IsSquareAttacked reports whether sq is attacked by any piece of
// color by. Computed by reverse-attack: treat sq as if it held each
// attacking piece type and intersect with that type's bitboard.
func (pos *Position) IsSquareAttacked(sq Square, by Color) bool {
	occ := pos.Occupancy()
	if PawnAttacks(by.Opposite(), sq)&pos.ByPiece(by, Pawn) != 0 {
		return true
	}
	if KnightAttacks(sq)&pos.ByPiece(by, Knight) != 0 {
		return true
	}
	if KingAttacks(sq)&pos.ByPiece(by, King) != 0 {
		return true
	}
	bishops := pos.ByPiece(by, Bishop) | pos.ByPiece(by, Queen)
	if BishopAttacks(sq, occ)&bishops != 0 {
		return true
	}
	rooks := pos.ByPiece(by, Rook) | pos.ByPiece(by, Queen)
	if RookAttacks(sq, occ)&rooks != 0 {
		return true
	}
	return false
}

// IsInCheck reports whether c's king is currently attacked.
func (pos *Position) IsInCheck(c Color) bool {
	kingSq := pos.ByPiece(c, King).AsSquare()
	return pos.IsSquareAttacked(kingSq, c.Opposite())
}

// AttackMap returns the union of every square attacked by color c.
func (pos *Position) AttackMap(c Color) Bitboard {
	occ := pos.Occupancy()
	var bb Bitboard
	bb |= KingAttacks(pos.ByPiece(c, King).AsSquare())
	for knights := pos.ByPiece(c, Knight); knights != 0; {
		bb |= KnightAttacks(knights.Pop())
	}
	for pawns := pos.ByPiece(c, Pawn); pawns != 0; {
		bb |= PawnAttacks(c, pawns.Pop())
	}
	for bishops := pos.ByPiece(c, Bishop) | pos.ByPiece(c, Queen); bishops != 0; {
		bb |= BishopAttacks(bishops.Pop(), occ)
	}
	for rooks := pos.ByPiece(c, Rook) | pos.ByPiece(c, Queen); rooks != 0; {
		bb |= RookAttacks(rooks.Pop(), occ)
	}
	return bb
}

// PinMap returns the bitboard of c's pieces that are pinned against
// c's king by an opposing sliding piece.
func (pos *Position) PinMap(c Color) Bitboard {
	occ := pos.Occupancy()
	kingSq := pos.ByPiece(c, King).AsSquare()
	them := c.Opposite()

	var pinned Bitboard
	consider := func(deltas [4][2]int, attackers Bitboard) {
		for _, d := range deltas {
			r, f := int(kingSq.Rank()), int(kingSq.File())
			var blocker Square = SquareNone
			for {
				r, f = r+d[0], f+d[1]
				if !onBoard(r, f) {
					break
				}
				sq := RankFile(Rank(r), File(f))
				if !occ.Has(sq) {
					continue
				}
				if blocker == SquareNone {
					if pos.ByColor[c].Has(sq) {
						blocker = sq
						continue
					}
					break // first piece on the ray is an enemy: nothing of c's is pinned along it
				}
				if attackers.Has(sq) {
					pinned = pinned.Set(blocker)
				}
				break
			}
		}
	}
	consider(rookDeltas, pos.ByPiece(them, Rook)|pos.ByPiece(them, Queen))
	consider(bishopDeltas, pos.ByPiece(them, Bishop)|pos.ByPiece(them, Queen))
	return pinned
}

// DoMove applies m, returning the UndoState needed to reverse it.
// See SPEC_FULL.md 4.3.2 for the step-by-step contract this follows.
func (pos *Position) DoMove(m Move) UndoState {
	undo := UndoState{
		Move:           m,
		Castling:       pos.Castling,
		EnPassant:      pos.EnPassant,
		HalfMoveClock:  pos.HalfMoveClock,
		FullMoveNumber: pos.FullMoveNumber,
		Hash:           pos.Hash,
	}

	us := pos.SideToMove

	if m.IsCapture() {
		pos.Remove(m.CaptureSquare(), m.Capture)
	}

	pos.Remove(m.From, m.Piece)
	placed := m.Piece
	if m.IsPromotion() {
		placed = m.Promotion
	}
	pos.Put(m.To, placed)

	if m.Kind == CastleKingside || m.Kind == CastleQueenside {
		rFrom, rTo := m.CastlingRookMove()
		rook := pos.Get(rFrom)
		pos.Remove(rFrom, rook)
		pos.Put(rTo, rook)
	}

	if pos.EnPassant != SquareNone {
		pos.Hash ^= ZobristEnPassant(pos.EnPassant)
	}
	if m.Kind == DoublePawnPush {
		epSq := m.From + 8
		if us == Black {
			epSq = m.From - 8
		}
		pos.EnPassant = epSq
		pos.Hash ^= ZobristEnPassant(epSq)
	} else {
		pos.EnPassant = SquareNone
	}

	if lost := lostCastleRights[m.From] | lostCastleRights[m.To]; lost != 0 {
		if newCastling := pos.Castling &^ lost; newCastling != pos.Castling {
			pos.Hash ^= ZobristCastle(pos.Castling)
			pos.Castling = newCastling
			pos.Hash ^= ZobristCastle(pos.Castling)
		}
	}

	if m.Piece.Figure() == Pawn || m.IsCapture() {
		pos.HalfMoveClock = 0
	} else {
		pos.HalfMoveClock++
	}
	if us == Black {
		pos.FullMoveNumber++
	}

	pos.SideToMove = us.Opposite()
	pos.Hash ^= ZobristColor()

	return undo
}

// UnmakeMove reverses a DoMove, restoring the position exactly
// (including the hash) from the given UndoState. undo must be the
// value DoMove(m) returned; calling with any other UndoState is
// undefined.
func (pos *Position) UnmakeMove(undo UndoState) {
	m := undo.Move
	pos.SideToMove = pos.SideToMove.Opposite()

	if m.Kind == CastleKingside || m.Kind == CastleQueenside {
		rFrom, rTo := m.CastlingRookMove()
		rook := pos.Get(rTo)
		pos.removePiece(rTo, rook)
		pos.placePiece(rFrom, rook)
	}

	moved := pos.Get(m.To)
	pos.removePiece(m.To, moved)
	pos.placePiece(m.From, m.Piece)

	if m.IsCapture() {
		pos.placePiece(m.CaptureSquare(), m.Capture)
	}

	pos.Castling = undo.Castling
	pos.EnPassant = undo.EnPassant
	pos.HalfMoveClock = undo.HalfMoveClock
	pos.FullMoveNumber = undo.FullMoveNumber
	pos.Hash = undo.Hash
}
