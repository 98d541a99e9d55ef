package board

import (
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the canonical starting position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FromFEN parses the six standard FEN fields into a Position. The
// hash is computed from scratch on success.
func FromFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fmt.Errorf("board: fen %q: expected 6 fields, got %d", fen, len(fields))
	}

	pos := NewPosition()
	if err := parsePiecePlacement(fields[0], pos); err != nil {
		return nil, fmt.Errorf("board: fen %q: %w", fen, err)
	}
	switch fields[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fmt.Errorf("board: fen %q: bad side to move %q", fen, fields[1])
	}
	castling, err := parseCastling(fields[2])
	if err != nil {
		return nil, fmt.Errorf("board: fen %q: %w", fen, err)
	}
	pos.Castling = castling

	ep, err := SquareFromString(fields[3])
	if err != nil {
		return nil, fmt.Errorf("board: fen %q: bad en-passant square %q", fen, fields[3])
	}
	pos.EnPassant = ep

	half, err := strconv.Atoi(fields[4])
	if err != nil || half < 0 {
		return nil, fmt.Errorf("board: fen %q: bad halfmove clock %q", fen, fields[4])
	}
	pos.HalfMoveClock = half

	full, err := strconv.Atoi(fields[5])
	if err != nil || full < 1 {
		return nil, fmt.Errorf("board: fen %q: bad fullmove number %q", fen, fields[5])
	}
	pos.FullMoveNumber = full

	pos.Hash = pos.computeHash()
	return pos, nil
}

func parsePiecePlacement(s string, pos *Position) error {
	ranks := strings.Split(s, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		r := Rank(7 - i) // FEN lists rank 8 first
		f := File(0)
		for _, c := range rankStr {
			if c >= '1' && c <= '8' {
				f += File(c - '0')
				continue
			}
			p, ok := pieceFromSymbol[byte(c)]
			if !ok {
				return fmt.Errorf("unknown piece symbol %q", c)
			}
			if f > 7 {
				return fmt.Errorf("rank %d overflows 8 files", i)
			}
			pos.placePiece(RankFile(r, f), p)
			f++
		}
		if f != 8 {
			return fmt.Errorf("rank %d has %d files, want 8", i, f)
		}
	}
	return nil
}

func parseCastling(s string) (Castle, error) {
	if s == "-" {
		return NoCastle, nil
	}
	var c Castle
	for _, ch := range s {
		switch ch {
		case 'K':
			c |= WhiteOO
		case 'Q':
			c |= WhiteOOO
		case 'k':
			c |= BlackOO
		case 'q':
			c |= BlackOOO
		default:
			return NoCastle, fmt.Errorf("bad castling rights %q", s)
		}
	}
	return c, nil
}

// FEN serializes pos back to the canonical six-field form.
func (pos *Position) FEN() string {
	var b strings.Builder
	for r := Rank(7); r >= 0; r-- {
		empty := 0
		for f := File(0); f < 8; f++ {
			p := pos.Get(RankFile(r, f))
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			b.WriteString(p.String())
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
		if r != 0 {
			b.WriteByte('/')
		}
	}
	b.WriteByte(' ')
	b.WriteString(pos.SideToMove.String())
	b.WriteByte(' ')
	b.WriteString(pos.Castling.String())
	b.WriteByte(' ')
	b.WriteString(pos.EnPassant.String())
	fmt.Fprintf(&b, " %d %d", pos.HalfMoveClock, pos.FullMoveNumber)
	return b.String()
}

func (pos *Position) String() string { return pos.FEN() }

// ParseMove parses coordinate notation ("e2e4", "e7e8q", "e1g1" for
// castling) against the pseudo-legal moves of pos, returning the
// fully-formed Move (with Capture/Promotion/Kind resolved) so callers
// never have to guess move flags themselves.
func (pos *Position) ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NullMove, fmt.Errorf("board: bad move text %q", s)
	}
	from, err := SquareFromString(s[0:2])
	if err != nil {
		return NullMove, fmt.Errorf("board: bad move text %q: %w", s, err)
	}
	to, err := SquareFromString(s[2:4])
	if err != nil {
		return NullMove, fmt.Errorf("board: bad move text %q: %w", s, err)
	}
	var promo Figure
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			promo = Queen
		case 'r':
			promo = Rook
		case 'b':
			promo = Bishop
		case 'n':
			promo = Knight
		default:
			return NullMove, fmt.Errorf("board: bad promotion letter %q", s[4])
		}
	}

	var moves []Move
	pos.GeneratePseudoLegalMoves(&moves)
	for _, m := range moves {
		if m.From != from || m.To != to {
			continue
		}
		if promo != NoFigure && m.Promotion.Figure() != promo {
			continue
		}
		if promo == NoFigure && m.IsPromotion() {
			continue
		}
		return m, nil
	}
	return NullMove, fmt.Errorf("board: %q is not a pseudo-legal move in this position", s)
}
