package board

import "testing"

func TestThreefoldRepetition(t *testing.T) {
	gs := NewGameState()

	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"} // knights out and back
	var undos []UndoState
	var mvs []Move

	for round := 0; round < 2; round++ {
		for _, text := range shuffle {
			m, err := gs.Pos.ParseMove(text)
			if err != nil {
				t.Fatalf("round %d: ParseMove(%s): %v", round, text, err)
			}
			undos = append(undos, gs.MakeMove(m))
			mvs = append(mvs, m)
		}
	}
	if !gs.IsThreefold() {
		t.Fatalf("expected threefold repetition after two knight shuffles, count=%d", gs.repetition[gs.Pos.Hash])
	}

	// Unmake the last move; should no longer be threefold.
	last := len(mvs) - 1
	gs.UnmakeMove(mvs[last], undos[last])
	if gs.IsThreefold() {
		t.Fatalf("threefold should not hold after unmaking the repeating move")
	}
}

func TestFiftyMoveDraw(t *testing.T) {
	gs, _ := GameStateFromFEN("8/8/4k3/8/8/4K3/8/8 w - - 99 60")
	if gs.IsFiftyMoveDraw() {
		t.Fatalf("halfmove clock 99 should not yet be a fifty-move draw")
	}
	m, err := gs.Pos.ParseMove("e3d3")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	gs.MakeMove(m)
	if !gs.IsFiftyMoveDraw() {
		t.Fatalf("halfmove clock should have reached 100")
	}
}

func TestInsufficientMaterial(t *testing.T) {
	gs, _ := GameStateFromFEN("8/8/4k3/8/8/4K3/8/8 w - - 0 1")
	if !gs.IsInsufficientMaterial() {
		t.Fatalf("bare kings should be insufficient material")
	}

	gs2, _ := GameStateFromFEN("8/8/4k3/8/8/3NK3/8/8 w - - 0 1")
	if !gs2.IsInsufficientMaterial() {
		t.Fatalf("king+knight vs king should be insufficient material")
	}

	gs3, _ := GameStateFromFEN("8/8/4k3/8/8/3RK3/8/8 w - - 0 1")
	if gs3.IsInsufficientMaterial() {
		t.Fatalf("king+rook vs king should be sufficient material")
	}
}

func TestCheckmateDetection(t *testing.T) {
	// Fool's mate: 1.f3 e5 2.g4 Qh4#
	gs, _ := GameStateFromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if !gs.IsCheckmate() {
		t.Fatalf("expected checkmate")
	}
	if !gs.IsGameOver() {
		t.Fatalf("checkmate position should report game over")
	}
}
