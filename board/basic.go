// Package board implements bitboard position representation, attack
// tables, Zobrist hashing, FEN parsing, and legal move generation for
// standard chess.
package board

import (
	"fmt"
	"strings"
)

// Color is one of the two sides.
type Color int8

const (
	White Color = iota
	Black
	ColorArraySize
	NoColor = ColorArraySize
)

// Opposite returns the other color.
func (c Color) Opposite() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "w"
	}
	return "b"
}

// Figure identifies a piece type, independent of color.
type Figure int8

const (
	NoFigure Figure = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	FigureArraySize
)

var figureSymbol = [FigureArraySize]byte{0, 'p', 'n', 'b', 'r', 'q', 'k'}

func (f Figure) String() string {
	if f == NoFigure {
		return "-"
	}
	return string(figureSymbol[f])
}

// Piece is a (Color, Figure) pair packed into a single byte-sized value.
// NoPiece is used where optionality is needed.
type Piece int8

const (
	NoPiece Piece = iota
	_               // reserve so White/Black pieces align on 2-wide boundary
	WhitePawn
	BlackPawn
	WhiteKnight
	BlackKnight
	WhiteBishop
	BlackBishop
	WhiteRook
	BlackRook
	WhiteQueen
	BlackQueen
	WhiteKing
	BlackKing
	PieceArraySize
)

// ColorFigure builds the Piece for a given color and figure. NoFigure
// or NoColor yields NoPiece.
func ColorFigure(c Color, f Figure) Piece {
	if f == NoFigure || c == NoColor {
		return NoPiece
	}
	return Piece(2*int8(f) + int8(c))
}

// Color returns the piece's color. Undefined for NoPiece.
func (p Piece) Color() Color {
	return Color((p - 2) & 1)
}

// Figure returns the piece's figure. NoPiece yields NoFigure.
func (p Piece) Figure() Figure {
	if p == NoPiece {
		return NoFigure
	}
	return Figure(p >> 1)
}

func (p Piece) String() string {
	if p == NoPiece {
		return "."
	}
	s := p.Figure().String()
	if p.Color() == White {
		return strings.ToUpper(s)
	}
	return s
}

var pieceFromSymbol = map[byte]Piece{
	'P': WhitePawn, 'N': WhiteKnight, 'B': WhiteBishop, 'R': WhiteRook, 'Q': WhiteQueen, 'K': WhiteKing,
	'p': BlackPawn, 'n': BlackKnight, 'b': BlackBishop, 'r': BlackRook, 'q': BlackQueen, 'k': BlackKing,
}

// File is a board column, 0 (a-file) through 7 (h-file).
type File int8

// Rank is a board row, 0 (rank 1) through 7 (rank 8).
type Rank int8

// Square is a board square, 0 (a1) through 63 (h8).
type Square int8

const (
	SquareArraySize = 64
	SquareNone      = Square(-1)
)

// RankFile builds a Square from a rank and file, both 0..7.
func RankFile(r Rank, f File) Square {
	return Square(int8(r)*8 + int8(f))
}

func (sq Square) File() File { return File(sq & 7) }
func (sq Square) Rank() Rank { return Rank(sq >> 3) }

// Relative mirrors the square for the given color: White sees the
// board as-is, Black sees it rank-flipped. Useful for piece-square
// tables defined from White's perspective.
func (sq Square) Relative(c Color) Square {
	if c == White {
		return sq
	}
	return sq ^ 56
}

func (sq Square) Bitboard() Bitboard { return Bitboard(1) << uint(sq) }

func (sq Square) String() string {
	if sq == SquareNone {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// SquareFromString parses a two-character square such as "e4".
func SquareFromString(s string) (Square, error) {
	if s == "-" {
		return SquareNone, nil
	}
	if len(s) != 2 {
		return SquareNone, fmt.Errorf("board: bad square %q", s)
	}
	f := File(s[0] - 'a')
	r := Rank(s[1] - '1')
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return SquareNone, fmt.Errorf("board: bad square %q", s)
	}
	return RankFile(r, f), nil
}

// Castle is a bitmask of the four castling rights.
type Castle uint8

const (
	WhiteOO Castle = 1 << iota
	WhiteOOO
	BlackOO
	BlackOOO

	NoCastle  Castle = 0
	AnyCastle        = WhiteOO | WhiteOOO | BlackOO | BlackOOO
)

func (c Castle) String() string {
	if c == NoCastle {
		return "-"
	}
	var b strings.Builder
	if c&WhiteOO != 0 {
		b.WriteByte('K')
	}
	if c&WhiteOOO != 0 {
		b.WriteByte('Q')
	}
	if c&BlackOO != 0 {
		b.WriteByte('k')
	}
	if c&BlackOOO != 0 {
		b.WriteByte('q')
	}
	return b.String()
}

// lostCastleRights[sq] is the set of castling rights lost when a piece
// moves from, or is captured on, sq (king/rook home squares).
var lostCastleRights [SquareArraySize]Castle

func init() {
	lostCastleRights[SquareA1] = WhiteOOO
	lostCastleRights[SquareE1] = WhiteOO | WhiteOOO
	lostCastleRights[SquareH1] = WhiteOO
	lostCastleRights[SquareA8] = BlackOOO
	lostCastleRights[SquareE8] = BlackOO | BlackOOO
	lostCastleRights[SquareH8] = BlackOO
}

// Named squares used internally for castling and pawn-rank logic.
const (
	SquareA1 = Square(iota)
	SquareB1
	SquareC1
	SquareD1
	SquareE1
	SquareF1
	SquareG1
	SquareH1
	SquareA2
	SquareB2
	SquareC2
	SquareD2
	SquareE2
	SquareF2
	SquareG2
	SquareH2
	SquareA3
	SquareB3
	SquareC3
	SquareD3
	SquareE3
	SquareF3
	SquareG3
	SquareH3
	SquareA4
	SquareB4
	SquareC4
	SquareD4
	SquareE4
	SquareF4
	SquareG4
	SquareH4
	SquareA5
	SquareB5
	SquareC5
	SquareD5
	SquareE5
	SquareF5
	SquareG5
	SquareH5
	SquareA6
	SquareB6
	SquareC6
	SquareD6
	SquareE6
	SquareF6
	SquareG6
	SquareH6
	SquareA7
	SquareB7
	SquareC7
	SquareD7
	SquareE7
	SquareF7
	SquareG7
	SquareH7
	SquareA8
	SquareB8
	SquareC8
	SquareD8
	SquareE8
	SquareF8
	SquareG8
	SquareH8
)

// MoveKind distinguishes the small set of moves that need special
// make/unmake handling beyond a plain piece relocation.
type MoveKind uint8

const (
	Normal MoveKind = iota
	DoublePawnPush
	EnPassant
	CastleKingside
	CastleQueenside
)

// Move is a single ply: a piece moving from one square to another,
// carrying enough information to be applied, displayed and ordered
// without consulting the Position it was generated from.
type Move struct {
	From, To  Square
	Piece     Piece // the moving piece, before promotion
	Capture   Piece // captured piece, NoPiece if none
	Promotion Piece // promotion piece, NoPiece if this isn't a promotion
	Kind      MoveKind
}

// NullMove is the zero Move, used as a sentinel ("no move").
var NullMove = Move{}

func (m Move) IsCapture() bool   { return m.Capture != NoPiece }
func (m Move) IsPromotion() bool { return m.Promotion != NoPiece }

// IsViolent reports whether m is a capture or promotion: the set of
// moves considered in quiescence search.
func (m Move) IsViolent() bool { return m.IsCapture() || m.IsPromotion() }

func (m Move) IsQuiet() bool { return !m.IsViolent() }

// CaptureSquare returns the square the captured piece stood on. For
// en-passant this differs from To.
func (m Move) CaptureSquare() Square {
	if m.Kind == EnPassant {
		if m.Piece.Color() == White {
			return m.To - 8
		}
		return m.To + 8
	}
	return m.To
}

// UCI renders the move in coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) UCI() string {
	if m == NullMove {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.Promotion != NoPiece {
		s += strings.ToLower(m.Promotion.Figure().String())
	}
	return s
}

func (m Move) String() string { return m.UCI() }

// CastlingRookMove returns the rook's source and destination squares
// for a castling move. Only valid when m.Kind is CastleKingside or
// CastleQueenside.
func (m Move) CastlingRookMove() (from, to Square) {
	switch m.Kind {
	case CastleKingside:
		if m.Piece.Color() == White {
			return SquareH1, SquareF1
		}
		return SquareH8, SquareF8
	case CastleQueenside:
		if m.Piece.Color() == White {
			return SquareA1, SquareD1
		}
		return SquareA8, SquareD8
	}
	return SquareNone, SquareNone
}
