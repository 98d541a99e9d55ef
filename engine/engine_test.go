package engine_test

import (
	"context"
	"testing"

	"github.com/corvidchess/corvid/board"
	"github.com/corvidchess/corvid/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStartsAtStandardPosition(t *testing.T) {
	e := engine.New(context.Background())
	assert.Equal(t, board.FENStartPos, e.FEN())
}

func TestFromFEN(t *testing.T) {
	e := engine.New(context.Background())
	kiwipete := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	require.NoError(t, e.FromFEN(context.Background(), kiwipete))
	assert.Equal(t, kiwipete, e.FEN())
}

func TestMakeMoveRejectsIllegal(t *testing.T) {
	e := engine.New(context.Background())
	assert.False(t, e.MakeMove(context.Background(), "e2e5"))
	assert.True(t, e.MakeMove(context.Background(), "e2e4"))
}

func TestBestMoveFindsMateInOne(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx)
	require.NoError(t, e.FromFEN(ctx, "6k1/5ppp/8/8/8/8/8/R6K w - - 0 1"))

	m, ok := e.BestMove(ctx, 3)
	require.True(t, ok)
	assert.Equal(t, board.SquareA8, m.To)
}

func TestBestMoveNoLegalMoveOnCheckmate(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx)
	require.NoError(t, e.FromFEN(ctx, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"))

	_, ok := e.BestMove(ctx, 2)
	assert.False(t, ok)
}
