package board

// GameState wraps a Position with a Zobrist-keyed repetition table so
// that threefold repetition and the fifty-move rule can be queried
// without rescanning move history.
type GameState struct {
	Pos *Position

	repetition map[uint64]int
}

// NewGameState returns a GameState at the standard starting position.
func NewGameState() *GameState {
	gs, _ := GameStateFromFEN(FENStartPos)
	return gs
}

// GameStateFromFEN builds a GameState from a FEN string.
func GameStateFromFEN(fen string) (*GameState, error) {
	pos, err := FromFEN(fen)
	if err != nil {
		return nil, err
	}
	gs := &GameState{Pos: pos, repetition: make(map[uint64]int)}
	gs.repetition[pos.Hash] = 1
	return gs, nil
}

// MakeMove applies mv and records the resulting position in the
// repetition table.
func (gs *GameState) MakeMove(mv Move) UndoState {
	undo := gs.Pos.DoMove(mv)
	gs.repetition[gs.Pos.Hash]++
	return undo
}

// UnmakeMove reverses mv, decrementing the repetition count for the
// position being left before restoring the prior one.
func (gs *GameState) UnmakeMove(mv Move, undo UndoState) {
	gs.repetition[gs.Pos.Hash]--
	if gs.repetition[gs.Pos.Hash] == 0 {
		delete(gs.repetition, gs.Pos.Hash)
	}
	gs.Pos.UnmakeMove(undo)
}

// IsThreefold reports whether the current position has occurred
// three or more times since the repetition table was seeded.
func (gs *GameState) IsThreefold() bool {
	return gs.repetition[gs.Pos.Hash] >= 3
}

// RepetitionCount reports how many times the current position has
// occurred since the repetition table was seeded (always >= 1).
func (gs *GameState) RepetitionCount() int {
	return gs.repetition[gs.Pos.Hash]
}

// IsFiftyMoveDraw reports whether 50 full moves (100 plies) have
// passed without a pawn move or a capture.
func (gs *GameState) IsFiftyMoveDraw() bool {
	return gs.Pos.HalfMoveClock >= 100
}

// IsInsufficientMaterial reports whether neither side has enough
// material to deliver checkmate: bare kings, king + minor vs. king,
// or king + two knights vs. king.
func (gs *GameState) IsInsufficientMaterial() bool {
	pos := gs.Pos
	if pos.ByPiece(White, Pawn) != 0 || pos.ByPiece(Black, Pawn) != 0 {
		return false
	}
	if pos.ByPiece(White, Rook) != 0 || pos.ByPiece(Black, Rook) != 0 {
		return false
	}
	if pos.ByPiece(White, Queen) != 0 || pos.ByPiece(Black, Queen) != 0 {
		return false
	}
	minors := pos.ByPiece(White, Bishop).Popcnt() + pos.ByPiece(White, Knight).Popcnt() +
		pos.ByPiece(Black, Bishop).Popcnt() + pos.ByPiece(Black, Knight).Popcnt()
	return minors <= 1 || (minors == 2 && (pos.ByPiece(White, Knight).Popcnt() == 2 || pos.ByPiece(Black, Knight).Popcnt() == 2))
}

// IsCheckmate reports whether the side to move is in check with no
// legal reply.
func (gs *GameState) IsCheckmate() bool {
	return gs.Pos.IsInCheck(gs.Pos.SideToMove) && !gs.Pos.HasLegalMove()
}

// IsStalemate reports whether the side to move is not in check but
// has no legal move.
func (gs *GameState) IsStalemate() bool {
	return !gs.Pos.IsInCheck(gs.Pos.SideToMove) && !gs.Pos.HasLegalMove()
}

// IsGameOver reports whether the game has ended by checkmate,
// stalemate, threefold repetition, the fifty-move rule, or
// insufficient material.
func (gs *GameState) IsGameOver() bool {
	return gs.IsCheckmate() || gs.IsStalemate() || gs.IsThreefold() || gs.IsFiftyMoveDraw() || gs.IsInsufficientMaterial()
}
