package search

import "github.com/corvidchess/corvid/board"

// Score is a (middlegame, endgame) pair of centipawn values, summed
// across the whole position and blended by game phase at the end.
// Mirrors the accumulator pattern used throughout the teacher engine's
// evaluation, without reusing its tuned weight table: the tables below
// are conventional, hand-picked values, not Texel-tuned.
type Score struct {
	M, E int32
}

func (s Score) Add(o Score) Score  { return Score{s.M + o.M, s.E + o.E} }
func (s Score) Sub(o Score) Score  { return Score{s.M - o.M, s.E - o.E} }
func (s Score) Neg() Score         { return Score{-s.M, -s.E} }

// materialValue is the classical centipawn value, same in both phases
// except the king which never contributes to material score.
var materialValue = [board.FigureArraySize]Score{
	board.NoFigure: {0, 0},
	board.Pawn:     {100, 100},
	board.Knight:   {320, 320},
	board.Bishop:   {330, 330},
	board.Rook:     {500, 500},
	board.Queen:    {900, 900},
	board.King:     {0, 0},
}

// phaseWeight contributes to the 0(endgame)..totalPhase(middlegame) phase
// counter per non-pawn, non-king piece remaining on the board.
var phaseWeight = [board.FigureArraySize]int32{
	board.Knight: 1,
	board.Bishop: 1,
	board.Rook:   2,
	board.Queen:  4,
}

const totalPhase = 4*1 + 4*1 + 4*2 + 2*4 // starting-position non-pawn material

// pieceSquare[figure][square] is defined from White's point of view;
// Black looks up Relative(Black, sq).
var pieceSquare [board.FigureArraySize][64]Score

func sq(table [64]int32) (out [64]Score) {
	for i, v := range table {
		out[i] = Score{v, v}
	}
	return out
}

func init() {
	pieceSquare[board.Pawn] = sq([64]int32{
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -20, -20, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, 5, 10, 25, 25, 10, 5, 5,
		10, 10, 20, 30, 30, 20, 10, 10,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	})
	pieceSquare[board.Knight] = sq([64]int32{
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	})
	pieceSquare[board.Bishop] = sq([64]int32{
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	})
	pieceSquare[board.Rook] = sq([64]int32{
		0, 0, 0, 5, 5, 0, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	})
	pieceSquare[board.Queen] = sq([64]int32{
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-10, 5, 5, 5, 5, 5, 0, -10,
		0, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	})
	pieceSquare[board.King] = [64]Score{}
	kingMid := [64]int32{
		20, 30, 10, 0, 0, 10, 30, 20,
		20, 20, 0, 0, 0, 0, 20, 20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	}
	kingEnd := [64]int32{
		-50, -30, -30, -30, -30, -30, -30, -50,
		-30, -30, 0, 0, 0, 0, -30, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -20, -10, 0, 0, -10, -20, -30,
		-50, -40, -30, -20, -20, -30, -40, -50,
	}
	for i := range kingMid {
		pieceSquare[board.King][i] = Score{kingMid[i], kingEnd[i]}
	}
}

// Eval returns the static evaluation of pos from the side-to-move's
// point of view, in centipawns.
func Eval(pos *board.Position) int32 {
	var total Score
	var phase int32

	for c := board.White; c <= board.Black; c++ {
		sign := int32(1)
		if c == board.Black {
			sign = -1
		}
		var side Score
		for f := board.Pawn; f <= board.King; f++ {
			for bb := pos.ByPiece(c, f); bb != 0; {
				s := bb.Pop()
				side = side.Add(materialValue[f])
				side = side.Add(pieceSquare[f][s.Relative(c)])
				phase += phaseWeight[f]
			}
		}
		total = total.Add(Score{side.M * sign, side.E * sign})
	}

	total = total.Add(smallTerms(pos))

	if phase > totalPhase {
		phase = totalPhase
	}
	mix := (total.M*phase + total.E*(totalPhase-phase)) / totalPhase

	if pos.SideToMove == board.Black {
		mix = -mix
	}
	return mix
}

// smallTerms adds the bishop-pair bonus and pawn-structure/rook-file
// terms named in the evaluation contract, from White's perspective
// (Eval negates for Black as a whole).
func smallTerms(pos *board.Position) Score {
	var s Score

	if pos.ByPiece(board.White, board.Bishop).Popcnt() >= 2 {
		s = s.Add(Score{30, 40})
	}
	if pos.ByPiece(board.Black, board.Bishop).Popcnt() >= 2 {
		s = s.Sub(Score{30, 40})
	}

	s = s.Add(pawnStructure(pos, board.White)).Sub(pawnStructure(pos, board.Black))
	s = s.Add(rookFiles(pos, board.White)).Sub(rookFiles(pos, board.Black))
	return s
}

func pawnStructure(pos *board.Position, c board.Color) Score {
	pawns := pos.ByPiece(c, board.Pawn)
	var s Score
	for f := board.File(0); f < 8; f++ {
		file := board.FileBb(f)
		count := (pawns & file).Popcnt()
		if count > 1 {
			s = s.Add(Score{int32(-15 * (count - 1)), int32(-15 * (count - 1))}) // doubled
		}
		if count > 0 {
			isolated := true
			if f > 0 && pawns&board.FileBb(f-1) != 0 {
				isolated = false
			}
			if f < 7 && pawns&board.FileBb(f+1) != 0 {
				isolated = false
			}
			if isolated {
				s = s.Add(Score{-12, -20})
			}
		}
	}
	return s
}

func rookFiles(pos *board.Position, c board.Color) Score {
	pawns := pos.ByPiece(board.White, board.Pawn) | pos.ByPiece(board.Black, board.Pawn)
	ownPawns := pos.ByPiece(c, board.Pawn)
	var s Score
	for bb := pos.ByPiece(c, board.Rook); bb != 0; {
		r := bb.Pop()
		file := board.FileBb(r.File())
		if pawns&file == 0 {
			s = s.Add(Score{20, 10})
		} else if ownPawns&file == 0 {
			s = s.Add(Score{10, 5})
		}
	}
	return s
}
