package search

import "github.com/corvidchess/corvid/board"

// mvvlvaBonus values based on one pawn = 10, matching the teacher's scale.
var mvvlvaBonus = [...]int32{0, 10, 40, 45, 68, 145, 256}

func mvvlva(m board.Move) int32 {
	v := m.Capture.Figure()
	a := m.Piece.Figure()
	return mvvlvaBonus[v]*64 - mvvlvaBonus[a]
}

// killerSlots is the number of killer moves remembered per ply.
const killerSlots = 2

// historyTable is a [piece][to-square] score incremented whenever a
// quiet move causes a beta cutoff, used to order remaining quiet
// moves across the rest of the search.
type historyTable [board.PieceArraySize][64]int32

func (h *historyTable) add(m board.Move, depth int) {
	bonus := int32(depth * depth)
	h[m.Piece][m.To] += bonus
	// Halving at 1<<18 keeps every history score below the killer
	// scores in orderedMoves (1<<19 - 2 and up).
	if h[m.Piece][m.To] > 1<<18 {
		for p := range h {
			for s := range h[p] {
				h[p][s] /= 2
			}
		}
	}
}

func (h *historyTable) get(m board.Move) int32 { return h[m.Piece][m.To] }

// killerTable remembers up to killerSlots quiet moves per ply that
// previously caused a beta cutoff, plus one counter-move slot keyed
// by the opponent's last move.
type killerTable struct {
	killers [maxPly][killerSlots]board.Move
	counter map[board.Move]board.Move
}

func newKillerTable() *killerTable {
	return &killerTable{counter: make(map[board.Move]board.Move)}
}

func (k *killerTable) isKiller(ply int, m board.Move) bool {
	return m == k.killers[ply][0] || m == k.killers[ply][1]
}

func (k *killerTable) save(ply int, last, m board.Move) {
	if m.IsQuiet() {
		if m != k.killers[ply][0] {
			k.killers[ply][1] = k.killers[ply][0]
			k.killers[ply][0] = m
		}
		if last != board.NullMove {
			k.counter[last] = m
		}
	}
}

// orderedMoves sorts pseudo-legal moves in place for the given node:
// hash move first, then violent moves by MVV-LVA, then killers/
// counter-move, then quiet moves by history score.
func orderedMoves(moves []board.Move, hash board.Move, ply int, last board.Move, kt *killerTable, h *historyTable) {
	score := make([]int32, len(moves))
	for i, m := range moves {
		switch {
		case m == hash:
			score[i] = 1 << 30
		case m.IsViolent():
			score[i] = 1<<20 + mvvlva(m)
		case kt.killers[ply][0] == m:
			score[i] = 1 << 19
		case kt.killers[ply][1] == m:
			score[i] = 1<<19 - 1
		case last != board.NullMove && kt.counter[last] == m:
			score[i] = 1<<19 - 2
		default:
			score[i] = h.get(m)
		}
	}
	// Insertion sort: move lists are short (<= 256) and mostly
	// pre-ordered by generation phase, matching the teacher's choice
	// of Shellsort over a general-purpose sort for the same reason.
	for i := 1; i < len(moves); i++ {
		mv, sc := moves[i], score[i]
		j := i - 1
		for j >= 0 && score[j] < sc {
			moves[j+1] = moves[j]
			score[j+1] = score[j]
			j--
		}
		moves[j+1] = mv
		score[j+1] = sc
	}
}
