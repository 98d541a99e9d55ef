package game_test

import (
	"testing"

	"github.com/corvidchess/corvid/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteAndFEN(t *testing.T) {
	g := game.New()
	require.NoError(t, g.Execute("e2e4"))
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", g.FEN())
}

func TestExecuteRejectsIllegalMove(t *testing.T) {
	g := game.New()
	assert.Error(t, g.Execute("e2e5"))
}

func TestUndoRedo(t *testing.T) {
	g := game.New()
	start := g.FEN()

	require.NoError(t, g.Execute("e2e4"))
	afterMove := g.FEN()

	require.True(t, g.Undo())
	assert.Equal(t, start, g.FEN())
	assert.False(t, g.Undo(), "undo stack should be empty")

	require.True(t, g.Redo())
	assert.Equal(t, afterMove, g.FEN())
	assert.False(t, g.Redo(), "redo stack should be empty")
}

func TestExecuteClearsRedoStack(t *testing.T) {
	g := game.New()
	require.NoError(t, g.Execute("e2e4"))
	g.Undo()
	require.True(t, g.CanRedo())

	require.NoError(t, g.Execute("d2d4"))
	assert.False(t, g.CanRedo(), "a fresh move should clear the redo stack")
}

func TestGameOverCheckmate(t *testing.T) {
	g, err := game.FromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)

	outcome, over := g.GameOver()
	assert.True(t, over)
	assert.Equal(t, game.OutcomeCheckmate, outcome)
}

func TestGameOverInProgress(t *testing.T) {
	g := game.New()
	_, over := g.GameOver()
	assert.False(t, over)
}
