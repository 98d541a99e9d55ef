// Package game is a thin outer shell over board.GameState: it adds
// coordinate-text move execution and command-pattern undo/redo, the
// two things a driver (console, UCI, WASM) needs that the core board
// package deliberately leaves out.
package game

import (
	"fmt"

	"github.com/corvidchess/corvid/board"
)

// record is one entry of the undo/redo stacks: a move plus everything
// needed to reverse it.
type record struct {
	move board.Move
	undo board.UndoState
}

// Game wraps a board.GameState with move-text execution and an
// undo/redo command log, per the driver-facing contract: fen(),
// execute(text), game_over(), undo(), redo().
type Game struct {
	state *board.GameState

	undoStack []record
	redoStack []record
}

// New returns a Game at the standard starting position.
func New() *Game {
	return &Game{state: board.NewGameState()}
}

// FromFEN returns a Game set to the position described by fen.
func FromFEN(fen string) (*Game, error) {
	state, err := board.GameStateFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Game{state: state}, nil
}

// FEN returns the current position in FEN notation.
func (g *Game) FEN() string { return g.state.Pos.FEN() }

// Position exposes the underlying board position, e.g. for a search
// engine to read (not to mutate: use Execute/Undo/Redo for that).
func (g *Game) Position() *board.Position { return g.state.Pos }

// Execute parses and applies a coordinate-notation move (e.g. "e2e4",
// "e7e8q"). It reports an error if the text does not resolve to a
// legal move in the current position. A successful execution clears
// the redo stack, matching the command-pattern contract: once you've
// made a fresh move, the old redo branch is gone.
func (g *Game) Execute(text string) error {
	m, err := g.state.Pos.ParseMove(text)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if !g.state.Pos.IsLegal(m) {
		return fmt.Errorf("game: illegal move %q", text)
	}

	undo := g.state.MakeMove(m)
	g.undoStack = append(g.undoStack, record{move: m, undo: undo})
	g.redoStack = nil
	return nil
}

// CanUndo reports whether Undo would succeed.
func (g *Game) CanUndo() bool { return len(g.undoStack) > 0 }

// CanRedo reports whether Redo would succeed.
func (g *Game) CanRedo() bool { return len(g.redoStack) > 0 }

// Undo reverses the last executed move, moving it onto the redo
// stack. It reports false if there is nothing to undo.
func (g *Game) Undo() bool {
	if !g.CanUndo() {
		return false
	}
	r := g.undoStack[len(g.undoStack)-1]
	g.undoStack = g.undoStack[:len(g.undoStack)-1]

	g.state.UnmakeMove(r.move, r.undo)
	g.redoStack = append(g.redoStack, r)
	return true
}

// Redo reapplies the most recently undone move. It reports false if
// there is nothing to redo.
func (g *Game) Redo() bool {
	if !g.CanRedo() {
		return false
	}
	r := g.redoStack[len(g.redoStack)-1]
	g.redoStack = g.redoStack[:len(g.redoStack)-1]

	undo := g.state.MakeMove(r.move)
	g.undoStack = append(g.undoStack, record{move: r.move, undo: undo})
	return true
}

// Outcome enumerates why a game ended, or OutcomeNone if it hasn't.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCheckmate
	OutcomeStalemate
	OutcomeThreefold
	OutcomeFiftyMove
	OutcomeInsufficientMaterial
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCheckmate:
		return "checkmate"
	case OutcomeStalemate:
		return "stalemate"
	case OutcomeThreefold:
		return "threefold repetition"
	case OutcomeFiftyMove:
		return "fifty-move rule"
	case OutcomeInsufficientMaterial:
		return "insufficient material"
	default:
		return "in progress"
	}
}

// GameOver reports whether the game has ended and why.
func (g *Game) GameOver() (Outcome, bool) {
	switch {
	case g.state.IsCheckmate():
		return OutcomeCheckmate, true
	case g.state.IsStalemate():
		return OutcomeStalemate, true
	case g.state.IsThreefold():
		return OutcomeThreefold, true
	case g.state.IsFiftyMoveDraw():
		return OutcomeFiftyMove, true
	case g.state.IsInsufficientMaterial():
		return OutcomeInsufficientMaterial, true
	default:
		return OutcomeNone, false
	}
}
