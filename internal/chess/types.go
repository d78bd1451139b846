// Package chess provides the core value types used to replay a game.
package chess

// Side represents the colour of a piece or player.
type Side int

const (
	White Side = iota
	Black
)

// String returns the string representation of a side.
func (s Side) String() string {
	if s == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite side.
func (s Side) Opposite() Side {
	if s == White {
		return Black
	}
	return White
}

// Forward returns +1 for White, -1 for Black (pawn direction).
func (s Side) Forward() int {
	if s == White {
		return 1
	}
	return -1
}

// HomeRank returns the rank the side's pieces start on.
func (s Side) HomeRank() Rank {
	if s == White {
		return Rank1
	}
	return Rank8
}

// PawnRank returns the rank the side's pawns start on.
func (s Side) PawnRank() Rank {
	if s == White {
		return Rank2
	}
	return Rank7
}

// PromotionRank returns the far rank for the side's pawns.
func (s Side) PromotionRank() Rank {
	if s == White {
		return Rank8
	}
	return Rank1
}

// PieceKind represents a chess piece type.
type PieceKind int

const (
	NoPiece PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a piece kind.
func (k PieceKind) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single uppercase letter of a piece kind.
func (k PieceKind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// KindFromLetter converts an uppercase piece letter to its kind.
func KindFromLetter(c byte) (PieceKind, bool) {
	switch c {
	case 'P':
		return Pawn, true
	case 'N':
		return Knight, true
	case 'B':
		return Bishop, true
	case 'R':
		return Rook, true
	case 'Q':
		return Queen, true
	case 'K':
		return King, true
	}
	return NoPiece, false
}

// File represents a chess file (column), FileA..FileH.
type File int8

// Rank represents a chess rank (row), Rank1..Rank8.
type Rank int8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH

	NoFile File = -1
)

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8

	NoRank Rank = -1
)

// BoardSize is the number of files and ranks.
const BoardSize = 8

// String returns the file letter.
func (f File) String() string {
	if f < FileA || f > FileH {
		return "-"
	}
	return string(rune('a' + f))
}

// String returns the rank digit.
func (r Rank) String() string {
	if r < Rank1 || r > Rank8 {
		return "-"
	}
	return string(rune('1' + r))
}

// ParseFile converts a lowercase file letter.
func ParseFile(c byte) (File, bool) {
	if c >= 'a' && c <= 'h' {
		return File(c - 'a'), true
	}
	return NoFile, false
}

// ParseRank converts a rank digit.
func ParseRank(c byte) (Rank, bool) {
	if c >= '1' && c <= '8' {
		return Rank(c - '1'), true
	}
	return NoRank, false
}

// Square is a board coordinate.
type Square struct {
	File File
	Rank Rank
}

// Sq builds a square.
func Sq(f File, r Rank) Square {
	return Square{File: f, Rank: r}
}

// ParseSquare parses algebraic coordinates such as "e4".
func ParseSquare(s string) (Square, bool) {
	if len(s) != 2 {
		return Square{}, false
	}
	f, okf := ParseFile(s[0])
	r, okr := ParseRank(s[1])
	if !okf || !okr {
		return Square{}, false
	}
	return Sq(f, r), true
}

// MustSquare parses coordinates and panics on failure. Intended for tables and tests.
func MustSquare(s string) Square {
	sq, ok := ParseSquare(s)
	if !ok {
		panic("chess: bad square " + s)
	}
	return sq
}

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return s.File >= FileA && s.File <= FileH && s.Rank >= Rank1 && s.Rank <= Rank8
}

// Index returns the 0..63 cell index (a1=0, h8=63).
func (s Square) Index() int {
	return int(s.Rank)*BoardSize + int(s.File)
}

// SquareAt is the inverse of Index.
func SquareAt(idx int) Square {
	return Sq(File(idx%BoardSize), Rank(idx/BoardSize))
}

// Offset returns the square shifted by df files and dr ranks.
func (s Square) Offset(df, dr int) (Square, bool) {
	n := Sq(s.File+File(df), s.Rank+Rank(dr))
	return n, n.Valid()
}

// String returns algebraic coordinates.
func (s Square) String() string {
	return s.File.String() + s.Rank.String()
}

// Result is the game termination.
type Result int

const (
	Unfinished Result = iota
	WhiteWins
	BlackWins
	Draw
)

// String returns the PGN termination literal.
func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	}
	return "*"
}

// ParseResult converts a termination literal.
func ParseResult(s string) (Result, bool) {
	switch s {
	case "1-0":
		return WhiteWins, true
	case "0-1":
		return BlackWins, true
	case "1/2-1/2":
		return Draw, true
	case "*":
		return Unfinished, true
	}
	return Unfinished, false
}
