package search

import "github.com/corvidchess/corvid/board"

const (
	maxPly = 128

	Infinity       int32 = 32000
	MateScore      int32 = 30000
	KnownWinScore  int32 = 25000
	KnownLossScore int32 = -25000

	checkDepthExtension = 1
	nullMoveDepthLimit  = 3
	nullMoveReduction   = 2
	checkpointNodes     = 2048
)

// Logger receives search progress. The zero value of NulLogger is a
// safe no-op default, matching the teacher engine's Logger/NulLogger pair.
type Logger interface {
	BeginSearch()
	EndSearch()
	PrintPV(stats Stats, score int32, pv []board.Move)
}

// NulLogger discards everything.
type NulLogger struct{}

func (NulLogger) BeginSearch()                       {}
func (NulLogger) EndSearch()                         {}
func (NulLogger) PrintPV(Stats, int32, []board.Move) {}

// Stats accumulates counters for the most recent search.
type Stats struct {
	Nodes     uint64
	CacheHit  uint64
	CacheMiss uint64
	Depth     int
}

// Searcher runs alpha-beta search over a board.GameState. It owns the
// transposition table, move-ordering heuristics, and per-ply scratch
// state; it does not own the GameState itself (the caller supplies one
// at construction and keeps playing moves through it between searches
// if it wants repetition detection to carry across calls to Play).
type Searcher struct {
	Log Logger
	TT  *TranspositionTable

	gs      *board.GameState
	history *historyTable
	killers *killerTable

	stats    Stats
	tc       *TimeControl
	lastMove [maxPly]board.Move
}

// NewSearcher builds a Searcher over gs with its own transposition
// table of the given size in megabytes. gs's repetition table is
// consulted (and extended, for the moves the search itself plays) so
// that threefold repetition is detected mid-search, not just at nodes
// matching the pre-search game history.
func NewSearcher(gs *board.GameState, log Logger, hashMB int) *Searcher {
	if log == nil {
		log = NulLogger{}
	}
	return &Searcher{
		Log:     log,
		TT:      NewTranspositionTable(hashMB),
		gs:      gs,
		history: &historyTable{},
		killers: newKillerTable(),
	}
}

// Play runs iterative deepening up to tc.MaxDepth (or until tc signals
// a stop), returning the principal variation found at the last fully
// completed depth. An empty pv means no legal move exists (mate or
// stalemate).
func (s *Searcher) Play(tc *TimeControl) []board.Move {
	s.tc = tc
	s.stats = Stats{}
	s.Log.BeginSearch()
	defer s.Log.EndSearch()

	var pv []board.Move
	score := int32(0)
	for depth := 1; tc.NextDepth(depth); depth++ {
		score = s.searchRoot(depth, score)
		if tc.Stopped() && depth > 2 {
			break
		}
		s.stats.Depth = depth
		pv = s.extractPV(depth)
		s.Log.PrintPV(s.stats, score, pv)
	}
	return pv
}

// searchRoot runs one iterative-deepening pass, widening a narrow
// aspiration window around the previous score on failure.
func (s *Searcher) searchRoot(depth int, estimate int32) int32 {
	window := int32(25)
	alpha, beta := estimate-window, estimate+window
	if depth <= 2 {
		alpha, beta = -Infinity, Infinity
	}
	for {
		score := s.negamax(depth, alpha, beta, 0)
		if s.tc.Stopped() {
			return score
		}
		if score <= alpha {
			alpha -= window
			window *= 2
			continue
		}
		if score >= beta {
			beta += window
			window *= 2
			continue
		}
		return score
	}
}

// adjustMateForStore / adjustMateForRead convert between a
// ply-independent mate score (as stored in the TT) and the
// ply-relative score the search actually compares against.
func adjustMateForStore(score int32, ply int) int32 {
	if score >= KnownWinScore {
		return score + int32(ply)
	}
	if score <= KnownLossScore {
		return score - int32(ply)
	}
	return score
}

func adjustMateForRead(score int32, ply int) int32 {
	if score >= KnownWinScore {
		return score - int32(ply)
	}
	if score <= KnownLossScore {
		return score + int32(ply)
	}
	return score
}

// negamax implements SPEC_FULL.md 4.8's negamax(pos, depth, alpha,
// beta, ply) exactly, plus the named enrichments (null-move pruning,
// check extension, mate-distance pruning, staged move ordering).
func (s *Searcher) negamax(depth int, alpha, beta int32, ply int) int32 {
	s.stats.Nodes++
	if s.stats.Nodes%checkpointNodes == 0 && s.tc.Stopped() {
		return 0
	}

	gs := s.gs
	pos := gs.Pos

	if ply > 0 {
		if s.isDraw(ply) {
			return 0
		}
		// Mate-distance pruning: no line through this node can beat
		// a mate already found closer to the root.
		if r := MateScore - int32(ply); beta > r {
			beta = r
			if alpha >= r {
				return r
			}
		}
		if r := -MateScore + int32(ply); alpha < r {
			alpha = r
			if beta <= r {
				return r
			}
		}
	}

	probe := s.TT.Probe(pos.Hash)
	var hashMove board.Move
	if probe.Found {
		s.stats.CacheHit++
		hashMove = probe.Move
		if probe.Depth >= depth {
			score := adjustMateForRead(int32(probe.Score), ply)
			switch probe.Bound {
			case Exact:
				return score
			case LowerBound:
				if score >= beta {
					return score
				}
				if score > alpha {
					alpha = score
				}
			case UpperBound:
				if score <= alpha {
					return score
				}
				if score < beta {
					beta = score
				}
			}
		}
	} else {
		s.stats.CacheMiss++
	}

	if depth <= 0 {
		return s.quiescence(alpha, beta)
	}

	us := pos.SideToMove
	inCheck := pos.IsInCheck(us)
	if inCheck {
		depth += checkDepthExtension
	}

	if !inCheck && depth >= nullMoveDepthLimit && alpha == beta-1 && hasNonPawnMaterial(pos, us) {
		if s.tryNullMove(depth, beta, ply) {
			return beta
		}
	}

	var last board.Move
	if ply > 0 {
		last = s.lastMove[ply-1]
	}

	bestScore := -Infinity
	bestMove := board.NullMove
	legalMoves := 0
	nodeBound := UpperBound

	// tryMove applies m, searches the reply, and folds the result into
	// the running alpha/bestScore/nodeBound state. cutoff reports a
	// beta cutoff, which the caller must act on immediately: stop
	// trying further moves and, for the violent/quiet phases below,
	// skip generating whatever phase hasn't run yet.
	tryMove := func(m board.Move) (legal, cutoff bool) {
		undo := gs.MakeMove(m)
		if pos.IsInCheck(us) {
			gs.UnmakeMove(m, undo)
			return false, false
		}
		legalMoves++
		s.lastMove[ply] = m
		score := -s.negamax(depth-1, -beta, -alpha, ply+1)
		gs.UnmakeMove(m, undo)

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score >= beta {
			s.TT.Store(pos.Hash, depth, LowerBound, int16(adjustMateForStore(bestScore, ply)), bestMove)
			if m.IsQuiet() {
				s.killers.save(ply%maxPly, last, m)
				s.history.add(m, depth)
			}
			return true, true
		}
		if score > alpha {
			alpha = score
			nodeBound = Exact
		}
		return true, false
	}

	// Stage 1: the transposition-table move, validated against the
	// live position and tried before anything else is generated at
	// all, so a cutoff here never touches move generation.
	if hashMove != board.NullMove && pos.IsPseudoLegal(hashMove) {
		if _, cutoff := tryMove(hashMove); cutoff {
			return beta
		}
	}

	// Stage 2: captures and promotions, ordered by MVV-LVA. Generated
	// unconditionally since a tactical reply is usually what refutes
	// or justifies a line.
	var violent []board.Move
	pos.GenerateMoves(board.Violent, &violent)
	orderedMoves(violent, hashMove, ply%maxPly, last, s.killers, s.history)
	for _, m := range violent {
		if m == hashMove {
			continue
		}
		if _, cutoff := tryMove(m); cutoff {
			return beta
		}
	}

	// Stage 3: everything else, ordered by killer/counter-move/history.
	// Only generated once the first two phases fail to cut off, so a
	// beta cutoff on the hash move or a capture never pays for it.
	var quiet []board.Move
	pos.GenerateMoves(board.Quiet, &quiet)
	orderedMoves(quiet, hashMove, ply%maxPly, last, s.killers, s.history)
	for _, m := range quiet {
		if m == hashMove {
			continue
		}
		if _, cutoff := tryMove(m); cutoff {
			return beta
		}
	}

	if legalMoves == 0 {
		if inCheck {
			return -(MateScore - int32(ply))
		}
		return 0
	}

	s.TT.Store(pos.Hash, depth, nodeBound, int16(adjustMateForStore(alpha, ply)), bestMove)
	return alpha
}

// tryNullMove performs the "pass" half of null-move pruning: flip the
// side to move with no other change, search a reduced, zero-width
// window, and report whether the opponent's best reply already fails
// high (meaning our actual move is very likely to as well).
func (s *Searcher) tryNullMove(depth int, beta int32, ply int) bool {
	pos := s.gs.Pos
	undo := doNullMove(pos)
	score := -s.negamax(depth-1-nullMoveReduction, -beta, -beta+1, ply+1)
	undoNullMove(pos, undo)
	return score >= beta
}

// nullUndo is the minimal state a null move needs to restore: side to
// move and en-passant target (a null move always clears en-passant).
type nullUndo struct {
	enPassant board.Square
	hash      uint64
}

func doNullMove(pos *board.Position) nullUndo {
	u := nullUndo{enPassant: pos.EnPassant, hash: pos.Hash}
	if pos.EnPassant != board.SquareNone {
		pos.Hash ^= board.ZobristEnPassant(pos.EnPassant)
		pos.EnPassant = board.SquareNone
	}
	pos.SideToMove = pos.SideToMove.Opposite()
	pos.Hash ^= board.ZobristColor()
	return u
}

func undoNullMove(pos *board.Position, u nullUndo) {
	pos.SideToMove = pos.SideToMove.Opposite()
	pos.EnPassant = u.enPassant
	pos.Hash = u.hash
}

func hasNonPawnMaterial(pos *board.Position, c board.Color) bool {
	return pos.ByPiece(c, board.Knight) != 0 ||
		pos.ByPiece(c, board.Bishop) != 0 ||
		pos.ByPiece(c, board.Rook) != 0 ||
		pos.ByPiece(c, board.Queen) != 0
}

// isDraw reports whether the position at ply should be scored as a
// draw by the fifty-move rule or repetition. The repetition count
// comes from gs, whose table is extended by the moves this very
// search plays (via gs.MakeMove/gs.UnmakeMove in the move loop above),
// so a line that repeats purely within the search tree is caught, not
// just one that repeats a position from the game history before the
// search started. Matching the teacher's endPosition: a second
// occurrence already proves a draw is forceable below the root, so it
// is cut there; at the root itself a third occurrence is required,
// since the root position's first two occurrences happened before
// this search began and searching on is still meaningful.
func (s *Searcher) isDraw(ply int) bool {
	if s.gs.Pos.HalfMoveClock >= 100 {
		return true
	}
	r := s.gs.RepetitionCount()
	return r >= 3 || (ply > 0 && r >= 2)
}

// quiescence resolves tactical noise past the nominal search depth:
// stand pat, then captures and promotions only, pruned by static
// exchange evaluation.
func (s *Searcher) quiescence(alpha, beta int32) int32 {
	s.stats.Nodes++
	pos := s.gs.Pos

	standPat := Eval(pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	var moves []board.Move
	pos.GenerateMoves(board.Violent, &moves)
	orderedMoves(moves, board.NullMove, 0, board.NullMove, s.killers, s.history)

	us := pos.SideToMove
	for _, m := range moves {
		if m.IsCapture() && !m.IsPromotion() && !seeSign(pos, m) {
			continue
		}
		undo := pos.DoMove(m)
		if pos.IsInCheck(us) {
			pos.UnmakeMove(undo)
			continue
		}
		score := -s.quiescence(-beta, -alpha)
		pos.UnmakeMove(undo)

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// extractPV replays the TT's best moves from the root, up to depth
// plies or until a hash miss, collecting the line and then unwinding
// back to the original position.
func (s *Searcher) extractPV(depth int) []board.Move {
	pos := s.gs.Pos
	var pv []board.Move
	var undos []board.UndoState

	for i := 0; i < depth; i++ {
		probe := s.TT.Probe(pos.Hash)
		if !probe.Found || probe.Move == board.NullMove {
			break
		}
		if !pos.IsPseudoLegal(probe.Move) || !pos.IsLegal(probe.Move) {
			break
		}
		pv = append(pv, probe.Move)
		undos = append(undos, pos.DoMove(probe.Move))
	}
	for i := len(undos) - 1; i >= 0; i-- {
		pos.UnmakeMove(undos[i])
	}
	return pv
}
