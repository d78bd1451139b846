package chess

import (
	"strconv"
	"strings"
)

// MoveKind selects the variant of a Move.
type MoveKind int

const (
	Normal MoveKind = iota
	Castling
	EnPassant
	Promotion
)

// String returns the string representation of a move kind.
func (k MoveKind) String() string {
	switch k {
	case Castling:
		return "Castling"
	case EnPassant:
		return "EnPassant"
	case Promotion:
		return "Promotion"
	}
	return "Normal"
}

// Move is a single ply. Kind selects the variant; Kingside is meaningful
// only for Castling and PromoteTo only for Promotion.
type Move struct {
	Ply  int    // 1-based
	Text string // move text as written, without the annotation suffix
	Side Side
	Kind MoveKind

	// Piece is the kind named by the notation (Pawn when no letter).
	Piece PieceKind

	Dest       Square
	SourceFile File // NoFile until known
	SourceRank Rank // NoRank until known

	Capture   bool
	Check     bool
	Checkmate bool

	Kingside  bool
	PromoteTo PieceKind

	Annotation string   // traditional suffix such as "!?"
	NAGs       []string // "$n" glyphs following the move
	Comments   []string
	Variations []string // opaque recursive-variation text

	// Captured is set by execution and cleared by undo.
	Captured *Piece
}

// NewMove creates a normal move with an unknown source square.
func NewMove(text string, ply int, side Side) *Move {
	return &Move{
		Text:       text,
		Ply:        ply,
		Side:       side,
		Piece:      Pawn,
		SourceFile: NoFile,
		SourceRank: NoRank,
	}
}

// MoveNumber returns the full-turn number of the move.
func (m *Move) MoveNumber() int {
	return (m.Ply + 1) / 2
}

// Source returns the source square once it is fully known.
func (m *Move) Source() (Square, bool) {
	if m.SourceFile == NoFile || m.SourceRank == NoRank {
		return Square{}, false
	}
	return Sq(m.SourceFile, m.SourceRank), true
}

// SetSource records a resolved source square.
func (m *Move) SetSource(sq Square) {
	m.SourceFile = sq.File
	m.SourceRank = sq.Rank
}

// IsCastling reports whether the move is a castling move.
func (m *Move) IsCastling() bool {
	return m.Kind == Castling
}

// Prefix returns the move-number prefix: "N." for White, "N..." for Black.
func (m *Move) Prefix() string {
	n := strconv.Itoa(m.MoveNumber())
	if m.Side == Black {
		return n + "..."
	}
	return n + "."
}

// String returns the move with its number and annotation.
func (m *Move) String() string {
	return m.Prefix() + " " + m.Text + m.Annotation
}

// FullText returns the display text of the move: number, text, annotations,
// then each comment and variation on its own line.
func (m *Move) FullText() string {
	var sb strings.Builder
	sb.WriteString(m.String())
	for _, nag := range m.NAGs {
		sb.WriteByte(' ')
		sb.WriteString(nag)
	}
	for _, c := range m.Comments {
		sb.WriteByte('\n')
		sb.WriteString(c)
	}
	for _, v := range m.Variations {
		sb.WriteByte('\n')
		sb.WriteString(v)
	}
	return sb.String()
}

// CastlingSquares returns the king and rook squares of a castling move.
func CastlingSquares(side Side, kingside bool) (kingFrom, kingTo, rookFrom, rookTo Square) {
	r := side.HomeRank()
	if kingside {
		return Sq(FileE, r), Sq(FileG, r), Sq(FileH, r), Sq(FileF, r)
	}
	return Sq(FileE, r), Sq(FileC, r), Sq(FileA, r), Sq(FileD, r)
}
