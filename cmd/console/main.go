// Command console is a minimal interactive driver for manual play and
// debugging: it reads coordinate-notation moves (and a handful of
// control commands) from stdin and prints the board after each ply.
// It is not a protocol implementation (no UCI, no xboard) — just
// enough of a REPL to exercise the Game and Engine facades by hand.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/corvidchess/corvid/board"
	"github.com/corvidchess/corvid/engine"
	"github.com/corvidchess/corvid/game"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
	flag "github.com/spf13/pflag"
)

var (
	searchDepth = flag.Int("depth", 6, "search depth used by the 'go' command")
	thinkTime   = flag.Duration("movetime", 0, "if non-zero, 'go' searches for this long instead of to a fixed depth")
)

// driver owns the REPL loop: a Game for move history/undo-redo and an
// Engine kept in sync with it for "go" commands.
type driver struct {
	iox.AsyncCloser

	g *game.Game
	e *engine.Engine
}

func newDriver(ctx context.Context) *driver {
	return &driver{
		AsyncCloser: iox.NewAsyncCloser(),
		g:           game.New(),
		e:           engine.New(ctx),
	}
}

// sync pushes the Game's current position into the Engine, since the
// two facades do not share a Position directly.
func (d *driver) sync(ctx context.Context) {
	if err := d.e.FromFEN(ctx, d.g.FEN()); err != nil {
		logw.Errorf(ctx, "Failed to sync engine to %v: %v", d.g.FEN(), err)
	}
}

func (d *driver) bestMove(ctx context.Context) (board.Move, bool) {
	if *thinkTime > 0 {
		return d.e.BestMoveTimed(ctx, *thinkTime)
	}
	return d.e.BestMove(ctx, *searchDepth)
}

func main() {
	flag.Parse()
	ctx := context.Background()

	d := newDriver(ctx)
	defer d.Close()

	printHelp()
	printBoard(d)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !handle(ctx, d, line) {
			break
		}
	}
}

func printHelp() {
	fmt.Println("corvid console: enter moves as coordinate notation (e2e4, e7e8q),")
	fmt.Println("or a command: go, undo, redo, fen, reset [<fen>], quit")
}

func glyph(p board.Piece) string {
	if p == board.NoPiece {
		return "."
	}
	return p.String()
}

func printBoard(d *driver) {
	pos := d.g.Position()
	fmt.Println()
	for r := board.Rank(7); r >= 0; r-- {
		fmt.Printf("%d  ", r+1)
		for f := board.File(0); f < 8; f++ {
			fmt.Printf("%s ", glyph(pos.Get(board.RankFile(r, f))))
		}
		fmt.Println()
	}
	fmt.Println("   a b c d e f g h")
	fmt.Println(pos.FEN())
	if outcome, over := d.g.GameOver(); over {
		fmt.Printf("game over: %v\n", outcome)
	}
}

func handle(ctx context.Context, d *driver, line string) bool {
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return false

	case "fen":
		fmt.Println(d.g.FEN())

	case "reset":
		fen := board.FENStartPos
		if len(args) > 0 {
			fen = strings.Join(args, " ")
		}
		ng, err := game.FromFEN(fen)
		if err != nil {
			fmt.Printf("invalid fen: %v\n", err)
			break
		}
		d.g = ng
		d.sync(ctx)
		printBoard(d)

	case "undo":
		if !d.g.Undo() {
			fmt.Println("nothing to undo")
		}
		d.sync(ctx)
		printBoard(d)

	case "redo":
		if !d.g.Redo() {
			fmt.Println("nothing to redo")
		}
		d.sync(ctx)
		printBoard(d)

	case "go":
		d.sync(ctx)
		m, ok := d.bestMove(ctx)
		if !ok {
			fmt.Println("no legal move (mate or stalemate)")
			break
		}
		if err := d.g.Execute(m.UCI()); err != nil {
			fmt.Printf("engine produced illegal move %v: %v\n", m, err)
			break
		}
		fmt.Printf("engine plays %v\n", m.UCI())
		printBoard(d)

	default:
		if err := d.g.Execute(cmd); err != nil {
			fmt.Printf("illegal move %q: %v\n", cmd, err)
			break
		}
		d.sync(ctx)
		printBoard(d)
	}
	return true
}
