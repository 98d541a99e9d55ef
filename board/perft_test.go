package board

import "testing"

func TestPerftStartPos(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	want := []uint64{1, 20, 400, 8902, 197281, 4865609}
	pos, _ := FromFEN(FENStartPos)
	for depth, w := range want {
		if got := Perft(pos, depth); got != w {
			t.Errorf("perft(start, %d) = %d, want %d", depth, got, w)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	want := []uint64{1, 48, 2039, 97862, 4085603}
	pos, _ := FromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	for depth, w := range want {
		if got := Perft(pos, depth); got != w {
			t.Errorf("perft(kiwipete, %d) = %d, want %d", depth, got, w)
		}
	}
}

func TestPerftShallow(t *testing.T) {
	// Cheap depth-1/2 sanity checks that always run, even with -short.
	pos, _ := FromFEN(FENStartPos)
	if got := Perft(pos, 1); got != 20 {
		t.Errorf("perft(start, 1) = %d, want 20", got)
	}
	if got := Perft(pos, 2); got != 400 {
		t.Errorf("perft(start, 2) = %d, want 400", got)
	}
}

func TestMoveGenerationSymmetry(t *testing.T) {
	pos, _ := FromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	var pseudo []Move
	pos.GeneratePseudoLegalMoves(&pseudo)

	var legal []Move
	pos.GenerateLegalMoves(&legal)

	us := pos.SideToMove
	wantLegal := map[Move]bool{}
	for _, m := range pseudo {
		undo := pos.DoMove(m)
		if !pos.IsInCheck(us) {
			wantLegal[m] = true
		}
		pos.UnmakeMove(undo)
	}

	if len(wantLegal) != len(legal) {
		t.Fatalf("legal move count = %d, want %d", len(legal), len(wantLegal))
	}
	for _, m := range legal {
		if !wantLegal[m] {
			t.Errorf("GenerateLegalMoves produced %v which is not legal by direct check", m)
		}
	}
}
