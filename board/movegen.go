package board

// GenKind selects which subset of pseudo-legal moves to produce.
type GenKind int

const (
	Violent GenKind = 1 << iota // captures and promotions
	Quiet                       // everything else
	All     = Violent | Quiet
)

var promotionFigures = [4]Figure{Queen, Rook, Bishop, Knight}

// GeneratePseudoLegalMoves appends every pseudo-legal move for the
// side to move to moves. Pseudo-legal moves may leave the mover's own
// king in check; use GenerateLegalMoves or IsLegal to filter.
func (pos *Position) GeneratePseudoLegalMoves(moves *[]Move) {
	pos.GenerateMoves(All, moves)
}

// GenerateMoves appends pseudo-legal moves of the requested kind.
func (pos *Position) GenerateMoves(kind GenKind, moves *[]Move) {
	us := pos.SideToMove
	pos.genPawnMoves(us, kind, moves)
	pos.genKnightMoves(us, kind, moves)
	pos.genSlidingMoves(us, Bishop, kind, moves)
	pos.genSlidingMoves(us, Rook, kind, moves)
	pos.genSlidingMoves(us, Queen, kind, moves)
	pos.genKingMoves(us, kind, moves)
	if kind&Quiet != 0 {
		pos.genCastles(us, moves)
	}
}

func (pos *Position) genPawnMoves(us Color, kind GenKind, moves *[]Move) {
	them := us.Opposite()
	occ := pos.Occupancy()
	pawns := pos.ByPiece(us, Pawn)

	var forward func(Bitboard) Bitboard
	var startRank, promoRank Rank
	if us == White {
		forward = Bitboard.North
		startRank, promoRank = 1, 7
	} else {
		forward = Bitboard.South
		startRank, promoRank = 6, 0
	}

	emit := func(from, to Square, capture Piece, moveKind MoveKind) {
		if to.Rank() == promoRank {
			for _, f := range promotionFigures {
				*moves = append(*moves, Move{From: from, To: to, Piece: ColorFigure(us, Pawn), Capture: capture, Promotion: ColorFigure(us, f), Kind: moveKind})
			}
		} else {
			*moves = append(*moves, Move{From: from, To: to, Piece: ColorFigure(us, Pawn), Capture: capture, Kind: moveKind})
		}
	}

	if kind != 0 {
		for bb := pawns; bb != 0; {
			from := bb.Pop()
			one := forward(from.Bitboard())
			if one&occ != 0 {
				continue
			}
			to := one.AsSquare()
			if to.Rank() == promoRank {
				// A push onto the last rank is a promotion: violent.
				if kind&Violent != 0 {
					emit(from, to, NoPiece, Normal)
				}
				continue
			}
			if kind&Quiet == 0 {
				continue
			}
			emit(from, to, NoPiece, Normal)
			if from.Rank() == startRank {
				two := forward(one)
				if two&occ == 0 {
					emit(from, two.AsSquare(), NoPiece, DoublePawnPush)
				}
			}
		}
	}

	if kind&Violent != 0 {
		theirs := pos.ByColor[them]
		for bb := pawns; bb != 0; {
			from := bb.Pop()
			targets := PawnAttacks(us, from)
			for caps := targets & theirs; caps != 0; {
				to := caps.Pop()
				emit(from, to, pos.Get(to), Normal)
			}
			if pos.EnPassant != SquareNone && targets.Has(pos.EnPassant) {
				emit(from, pos.EnPassant, ColorFigure(them, Pawn), EnPassant)
			}
		}
	}
}

func (pos *Position) genKnightMoves(us Color, kind GenKind, moves *[]Move) {
	own := pos.ByColor[us]
	for bb := pos.ByPiece(us, Knight); bb != 0; {
		from := bb.Pop()
		pos.emitTargets(us, from, ColorFigure(us, Knight), KnightAttacks(from)&^own, kind, moves)
	}
}

func (pos *Position) genKingMoves(us Color, kind GenKind, moves *[]Move) {
	own := pos.ByColor[us]
	from := pos.ByPiece(us, King).AsSquare()
	pos.emitTargets(us, from, ColorFigure(us, King), KingAttacks(from)&^own, kind, moves)
}

func (pos *Position) genSlidingMoves(us Color, f Figure, kind GenKind, moves *[]Move) {
	own := pos.ByColor[us]
	occ := pos.Occupancy()
	for bb := pos.ByPiece(us, f); bb != 0; {
		from := bb.Pop()
		var attacks Bitboard
		switch f {
		case Bishop:
			attacks = BishopAttacks(from, occ)
		case Rook:
			attacks = RookAttacks(from, occ)
		case Queen:
			attacks = QueenAttacks(from, occ)
		}
		pos.emitTargets(us, from, ColorFigure(us, f), attacks&^own, kind, moves)
	}
}

func (pos *Position) emitTargets(us Color, from Square, piece Piece, targets Bitboard, kind GenKind, moves *[]Move) {
	them := us.Opposite()
	theirs := pos.ByColor[them]
	for targets != 0 {
		to := targets.Pop()
		if cap := theirs.Has(to); cap {
			if kind&Violent != 0 {
				*moves = append(*moves, Move{From: from, To: to, Piece: piece, Capture: pos.Get(to), Kind: Normal})
			}
		} else if kind&Quiet != 0 {
			*moves = append(*moves, Move{From: from, To: to, Piece: piece, Kind: Normal})
		}
	}
}

func (pos *Position) genCastles(us Color, moves *[]Move) {
	occ := pos.Occupancy()
	them := us.Opposite()

	type castleInfo struct {
		right               Castle
		kingFrom, kingTo    Square
		empty, safe         Bitboard // squares that must be empty / not attacked
		kind                MoveKind
	}
	var infos []castleInfo
	if us == White {
		infos = []castleInfo{
			{WhiteOO, SquareE1, SquareG1, SquareF1.Bitboard() | SquareG1.Bitboard(), SquareE1.Bitboard() | SquareF1.Bitboard() | SquareG1.Bitboard(), CastleKingside},
			{WhiteOOO, SquareE1, SquareC1, SquareB1.Bitboard() | SquareC1.Bitboard() | SquareD1.Bitboard(), SquareE1.Bitboard() | SquareD1.Bitboard() | SquareC1.Bitboard(), CastleQueenside},
		}
	} else {
		infos = []castleInfo{
			{BlackOO, SquareE8, SquareG8, SquareF8.Bitboard() | SquareG8.Bitboard(), SquareE8.Bitboard() | SquareF8.Bitboard() | SquareG8.Bitboard(), CastleKingside},
			{BlackOOO, SquareE8, SquareC8, SquareB8.Bitboard() | SquareC8.Bitboard() | SquareD8.Bitboard(), SquareE8.Bitboard() | SquareD8.Bitboard() | SquareC8.Bitboard(), CastleQueenside},
		}
	}

	for _, ci := range infos {
		if pos.Castling&ci.right == 0 {
			continue
		}
		if occ&ci.empty != 0 {
			continue
		}
		attacked := false
		for bb := ci.safe; bb != 0; {
			if pos.IsSquareAttacked(bb.Pop(), them) {
				attacked = true
				break
			}
		}
		if attacked {
			continue
		}
		*moves = append(*moves, Move{From: ci.kingFrom, To: ci.kingTo, Piece: ColorFigure(us, King), Kind: ci.kind})
	}
}

// IsPseudoLegal reports whether m is a pseudo-legal move in the
// current position: the piece m claims to move actually stands on
// From, belongs to the side to move, and reaches To by that piece's
// rule, and m's Capture/Kind fields match what's really on the board.
// It does not check whether making m leaves the mover's own king in
// check; pair it with IsLegal for that.
//
// This exists so a move cached outside the current node (a
// transposition-table hash move, a killer, a counter-move) can be
// validated cheaply before it is ever handed to DoMove, which trusts
// every field of m literally and will corrupt the position if m no
// longer applies: a later position sharing the same Zobrist lock bits
// by chance, or a killer recorded at a ply the game has since moved
// past, is enough to make a cached move stale.
func (pos *Position) IsPseudoLegal(m Move) bool {
	if m == NullMove || m.Piece == NoPiece {
		return false
	}
	if pos.Get(m.From) != m.Piece || m.Piece.Color() != pos.SideToMove {
		return false
	}

	us := pos.SideToMove
	them := us.Opposite()
	occ := pos.Occupancy()

	switch m.Kind {
	case CastleKingside, CastleQueenside:
		if m.Piece.Figure() != King || m.Capture != NoPiece {
			return false
		}
		var moves []Move
		pos.genCastles(us, &moves)
		for _, c := range moves {
			if c == m {
				return true
			}
		}
		return false

	case EnPassant:
		if m.Piece.Figure() != Pawn || pos.EnPassant == SquareNone || m.To != pos.EnPassant {
			return false
		}
		if m.Capture != ColorFigure(them, Pawn) {
			return false
		}
		return PawnAttacks(us, m.From).Has(m.To)

	case DoublePawnPush:
		if m.Piece.Figure() != Pawn || m.Capture != NoPiece {
			return false
		}
		var startRank Rank
		var forward func(Bitboard) Bitboard
		if us == White {
			startRank, forward = 1, Bitboard.North
		} else {
			startRank, forward = 6, Bitboard.South
		}
		if m.From.Rank() != startRank {
			return false
		}
		one := forward(m.From.Bitboard())
		two := forward(one)
		return two.AsSquare() == m.To && (one|two)&occ == 0

	default:
		if pos.Get(m.To) != m.Capture {
			return false
		}
		if m.Capture != NoPiece && m.Capture.Color() == us {
			return false
		}
		if m.IsPromotion() && (m.Piece.Figure() != Pawn || m.Promotion.Color() != us) {
			return false
		}

		switch m.Piece.Figure() {
		case Pawn:
			promoRank := Rank(7)
			if us == Black {
				promoRank = 0
			}
			if (m.To.Rank() == promoRank) != m.IsPromotion() {
				return false
			}
			if m.IsCapture() {
				return PawnAttacks(us, m.From).Has(m.To)
			}
			var forward func(Bitboard) Bitboard
			if us == White {
				forward = Bitboard.North
			} else {
				forward = Bitboard.South
			}
			return forward(m.From.Bitboard()).AsSquare() == m.To
		case Knight:
			return KnightAttacks(m.From).Has(m.To)
		case Bishop:
			return BishopAttacks(m.From, occ).Has(m.To)
		case Rook:
			return RookAttacks(m.From, occ).Has(m.To)
		case Queen:
			return QueenAttacks(m.From, occ).Has(m.To)
		case King:
			return KingAttacks(m.From).Has(m.To)
		}
		return false
	}
}

// IsLegal reports whether the pseudo-legal move m leaves the mover's
// own king safe. Applies and unmakes m to find out.
func (pos *Position) IsLegal(m Move) bool {
	us := pos.SideToMove
	undo := pos.DoMove(m)
	legal := !pos.IsInCheck(us)
	pos.UnmakeMove(undo)
	return legal
}

// GenerateLegalMoves appends every legal move for the side to move.
func (pos *Position) GenerateLegalMoves(moves *[]Move) {
	var pseudo []Move
	pos.GeneratePseudoLegalMoves(&pseudo)
	for _, m := range pseudo {
		if pos.IsLegal(m) {
			*moves = append(*moves, m)
		}
	}
}

// HasLegalMove reports whether the side to move has at least one
// legal move, without building the full list.
func (pos *Position) HasLegalMove() bool {
	var pseudo []Move
	pos.GeneratePseudoLegalMoves(&pseudo)
	for _, m := range pseudo {
		if pos.IsLegal(m) {
			return true
		}
	}
	return false
}
