package board

import "testing"

// TestIsPseudoLegalAgreesWithGenerator checks that every move
// GeneratePseudoLegalMoves produces is reported pseudo-legal, across a
// few representative
// positions (quiet start position, a position with captures and
// en-passant available, and kiwipete's castling rights).
func TestIsPseudoLegalAgreesWithGenerator(t *testing.T) {
	fens := []string{
		FENStartPos,
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	}
	for _, fen := range fens {
		pos, err := FromFEN(fen)
		if err != nil {
			t.Fatalf("FromFEN(%q): %v", fen, err)
		}
		var moves []Move
		pos.GeneratePseudoLegalMoves(&moves)
		for _, m := range moves {
			if !pos.IsPseudoLegal(m) {
				t.Errorf("%q: IsPseudoLegal(%v) = false, want true (generator produced it)", fen, m)
			}
		}
	}
}

func TestIsPseudoLegalRejectsStaleMoves(t *testing.T) {
	pos, err := FromFEN(FENStartPos)
	if err != nil {
		t.Fatal(err)
	}

	if pos.IsPseudoLegal(NullMove) {
		t.Errorf("NullMove must never be pseudo-legal")
	}

	// No piece stands on e4 yet.
	if m := (Move{From: SquareE4, To: SquareE5, Piece: WhitePawn}); pos.IsPseudoLegal(m) {
		t.Errorf("IsPseudoLegal(%v) = true, want false: no pawn on e4", m)
	}

	// e2-e4 is a double push, not a Normal move.
	if m := (Move{From: SquareE2, To: SquareE4, Piece: WhitePawn, Kind: Normal}); pos.IsPseudoLegal(m) {
		t.Errorf("IsPseudoLegal(%v) = true, want false: wrong MoveKind for a double push", m)
	}

	// Claiming a capture where the destination is empty.
	if m := (Move{From: SquareD1, To: SquareD4, Piece: WhiteQueen, Capture: BlackPawn}); pos.IsPseudoLegal(m) {
		t.Errorf("IsPseudoLegal(%v) = true, want false: d4 is empty", m)
	}

	// Black to move after 1.Nf3: a white piece move is never pseudo-legal here.
	pos.DoMove(Move{From: SquareG1, To: SquareF3, Piece: WhiteKnight})
	if m := (Move{From: SquareE2, To: SquareE3, Piece: WhitePawn}); pos.IsPseudoLegal(m) {
		t.Errorf("IsPseudoLegal(%v) = true, want false: not white's turn after a move", m)
	}
}

func TestIsPseudoLegalEnPassant(t *testing.T) {
	fen := "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3"
	pos, err := FromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	good := Move{From: SquareE5, To: SquareD6, Piece: WhitePawn, Capture: BlackPawn, Kind: EnPassant}
	if !pos.IsPseudoLegal(good) {
		t.Errorf("expected e5xd6 en-passant to be pseudo-legal")
	}
	bad := Move{From: SquareE5, To: SquareD6, Piece: WhitePawn, Capture: WhitePawn, Kind: EnPassant}
	if pos.IsPseudoLegal(bad) {
		t.Errorf("expected a wrong Capture field on an en-passant move to be rejected")
	}
}

func TestIsPseudoLegalCastling(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos, err := FromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	oo := Move{From: SquareE1, To: SquareG1, Piece: WhiteKing, Kind: CastleKingside}
	if !pos.IsPseudoLegal(oo) {
		t.Errorf("expected O-O to be pseudo-legal with both rook and king unmoved and f1/g1 empty")
	}

	pos.Castling &^= WhiteOO
	if pos.IsPseudoLegal(oo) {
		t.Errorf("expected O-O to be rejected once the kingside right is revoked")
	}
}
