package board

import "testing"

func TestFENRoundTrip(t *testing.T) {
	pos, err := FromFEN(FENStartPos)
	if err != nil {
		t.Fatalf("FromFEN(start): %v", err)
	}
	if got := pos.FEN(); got != FENStartPos {
		t.Errorf("FEN() = %q, want %q", got, FENStartPos)
	}
	if err := pos.Verify(); err != nil {
		t.Errorf("Verify(): %v", err)
	}
}

func TestFENKiwipete(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos, err := FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(kiwipete): %v", err)
	}
	if err := pos.Verify(); err != nil {
		t.Fatalf("Verify(): %v", err)
	}
	if pos.Castling != AnyCastle {
		t.Errorf("Castling = %v, want all four rights", pos.Castling)
	}
}

// makeUnmakeRoundTrip walks every legal move from pos one ply deep,
// checking that DoMove followed by UnmakeMove restores pos exactly.
func makeUnmakeRoundTrip(t *testing.T, pos *Position) {
	t.Helper()
	before := *pos
	var moves []Move
	pos.GeneratePseudoLegalMoves(&moves)
	for _, m := range moves {
		undo := pos.DoMove(m)
		if recomputed := pos.computeHash(); recomputed != pos.Hash {
			t.Errorf("move %v: hash mismatch after DoMove: incremental=%#x recomputed=%#x", m, pos.Hash, recomputed)
		}
		pos.UnmakeMove(undo)
		if *pos != before {
			t.Errorf("move %v: position not restored bit-for-bit by UnmakeMove", m)
		}
	}
}

func TestMakeUnmakeStartPos(t *testing.T) {
	pos, _ := FromFEN(FENStartPos)
	makeUnmakeRoundTrip(t, pos)
}

func TestMakeUnmakeKiwipete(t *testing.T) {
	pos, _ := FromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	makeUnmakeRoundTrip(t, pos)
}

func TestCastlingRevocation(t *testing.T) {
	pos, _ := FromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	hashBefore := pos.Hash

	m := Move{From: SquareE1, To: SquareE2, Piece: WhiteKing}
	undo := pos.DoMove(m)
	if pos.Castling&(WhiteOO|WhiteOOO) != 0 {
		t.Errorf("white castling rights should be gone after king move, got %v", pos.Castling)
	}
	if pos.Hash == hashBefore {
		t.Errorf("hash should change once castling rights are revoked")
	}
	pos.UnmakeMove(undo)
	if pos.Hash != hashBefore {
		t.Errorf("hash not restored after unmake: got %#x want %#x", pos.Hash, hashBefore)
	}
}

func TestEnPassantCapture(t *testing.T) {
	pos, _ := FromFEN("8/8/8/3pP3/8/8/8/4K2k w - d6 0 1")
	m, err := pos.ParseMove("e5d6")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if m.Kind != EnPassant {
		t.Fatalf("expected en-passant move, got kind %v", m.Kind)
	}
	undo := pos.DoMove(m)
	if pos.Get(SquareD5) != NoPiece {
		t.Errorf("captured pawn still present on d5")
	}
	pos.UnmakeMove(undo)
	if pos.Get(SquareD5) != BlackPawn {
		t.Errorf("captured pawn not restored on d5")
	}
}

func TestIsSquareAttacked(t *testing.T) {
	pos, _ := FromFEN(FENStartPos)
	if !pos.IsSquareAttacked(SquareE3, White) {
		t.Errorf("e3 should be attacked by white pawns at start")
	}
	if pos.IsSquareAttacked(SquareE5, White) {
		t.Errorf("e5 should not be attacked by white at start")
	}
}
