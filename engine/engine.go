// Package engine exposes the playing-strength facade over board and
// search: load a position, ask for the best move, apply moves, stop
// an in-flight search. It owns no protocol (console, UCI); those are
// separate cmd/ drivers built on top of it.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/corvidchess/corvid/board"
	"github.com/corvidchess/corvid/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

// Options are the engine's search parameters, set at construction.
type Options struct {
	// Hash is the transposition table size in MB.
	Hash int
}

func (o Options) String() string { return fmt.Sprintf("{hash=%vMB}", o.Hash) }

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithOptions sets the default search options.
func WithOptions(opts Options) Option {
	return func(e *Engine) { e.opts = opts }
}

// WithLogger installs a search progress logger (see search.Logger).
func WithLogger(log search.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// Engine wraps a board.GameState and a search.Searcher behind a
// small, synchronous API. Methods take an internal lock, except that a
// search runs unlocked; see BestMove for what may run concurrently with
// it. Using a GameState rather
// than a bare Position means moves applied through MakeMove and moves
// explored by the search share one repetition table, so a line that
// repeats (in play or mid-search) is recognized as a draw either way.
type Engine struct {
	opts Options
	log  search.Logger

	mu sync.Mutex
	gs *board.GameState
	s  *search.Searcher
	tc *search.TimeControl
}

// New returns an engine set to the standard starting position.
func New(ctx context.Context, opts ...Option) *Engine {
	e := &Engine{opts: Options{Hash: 32}}
	for _, fn := range opts {
		fn(e)
	}
	if err := e.reset(ctx, board.FENStartPos); err != nil {
		panic(fmt.Sprintf("engine: invalid initial position: %v", err))
	}
	logw.Infof(ctx, "Initialized engine %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version, in the UCI "id name" style.
func (e *Engine) Name() string { return fmt.Sprintf("corvid %v", version) }

// FromFEN resets the engine to the position described by fen.
func (e *Engine) FromFEN(ctx context.Context, fen string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reset(ctx, fen)
}

func (e *Engine) reset(ctx context.Context, fen string) error {
	gs, err := board.GameStateFromFEN(fen)
	if err != nil {
		return err
	}
	e.gs = gs
	e.s = search.NewSearcher(gs, e.log, e.opts.Hash)
	logw.Infof(ctx, "Reset to %v", fen)
	return nil
}

// FEN returns the current position in FEN notation.
func (e *Engine) FEN() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gs.Pos.FEN()
}

// MakeMove applies a coordinate-notation move (e.g. "e2e4", "e7e8q")
// to the current position. It reports false if the text does not
// resolve to a legal move.
func (e *Engine) MakeMove(ctx context.Context, text string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.gs.Pos.ParseMove(text)
	if err != nil || !e.gs.Pos.IsLegal(m) {
		logw.Errorf(ctx, "Illegal move %q in %v", text, e.gs.Pos.FEN())
		return false
	}
	e.gs.MakeMove(m)
	logw.Infof(ctx, "Move %v: %v", m, e.gs.Pos.FEN())
	return true
}

// BestMove searches the current position to a fixed depth and returns
// the best move found, or ok=false if there is no legal move. The
// search itself runs without holding the engine lock, so a concurrent
// Stop call can always get through; callers must not call FromFEN,
// MakeMove or another BestMove/BestMoveTimed concurrently with this one.
func (e *Engine) BestMove(ctx context.Context, depth int) (board.Move, bool) {
	return e.search(ctx, search.NewFixedDepthTimeControl(depth), fmt.Sprintf("depth=%v", depth))
}

// BestMoveTimed searches the current position until budget elapses
// (or 64 plies have been searched) and returns the best move found.
// Same concurrency contract as BestMove.
func (e *Engine) BestMoveTimed(ctx context.Context, budget time.Duration) (board.Move, bool) {
	return e.search(ctx, search.NewDeadlineTimeControl(budget), fmt.Sprintf("budget=%v", budget))
}

func (e *Engine) search(ctx context.Context, tc *search.TimeControl, label string) (board.Move, bool) {
	e.mu.Lock()
	e.tc = tc
	s := e.s
	e.mu.Unlock()

	pv := s.Play(tc)
	if len(pv) == 0 {
		return board.NullMove, false
	}
	logw.Infof(ctx, "BestMove %v: %v", label, pv[0])
	return pv[0], true
}

// Stop requests that an in-flight BestMove/BestMoveTimed search return
// as soon as possible. Safe to call from another goroutine.
func (e *Engine) Stop() {
	e.mu.Lock()
	tc := e.tc
	e.mu.Unlock()

	if tc != nil {
		tc.Stop()
	}
}
