// Command perft counts leaf nodes of the legal move tree to a given
// depth, the standard correctness/benchmark harness for move
// generators. See https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/corvidchess/corvid/board"
	"github.com/seekerror/logw"
	flag "github.com/spf13/pflag"
)

var (
	fen      = flag.String("fen", "startpos", "position to search (FEN, or one of: startpos, kiwipete)")
	minDepth = flag.Int("min-depth", 1, "minimum depth to search, inclusive")
	maxDepth = flag.Int("max-depth", 5, "maximum depth to search, inclusive")
	depth    = flag.Int("depth", 0, "if non-zero, search only this depth")
	divide   = flag.Bool("divide", false, "print per-root-move leaf counts at max-depth")
)

var known = map[string]string{
	"startpos": board.FENStartPos,
	"kiwipete": "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
}

func main() {
	ctx := context.Background()
	flag.Parse()

	position := *fen
	if named, ok := known[position]; ok {
		position = named
	}
	if *depth != 0 {
		*minDepth, *maxDepth = *depth, *depth
	}

	pos, err := board.FromFEN(position)
	if err != nil {
		logw.Exitf(ctx, "Invalid --fen %q: %v", *fen, err)
	}
	logw.Infof(ctx, "Searching FEN %q", position)

	fmt.Printf("depth        nodes     elapsed\n")
	for d := *minDepth; d <= *maxDepth; d++ {
		start := time.Now()
		nodes := board.Perft(pos, d)
		elapsed := time.Since(start)
		fmt.Printf("%5d %12d %12v\n", d, nodes, elapsed)
	}

	if *divide {
		byMove := board.PerftDivide(pos, *maxDepth)
		moves := make([]string, 0, len(byMove))
		for m := range byMove {
			moves = append(moves, m)
		}
		sort.Strings(moves)
		fmt.Printf("\ndivide at depth %d:\n", *maxDepth)
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, byMove[m])
		}
	}
}
