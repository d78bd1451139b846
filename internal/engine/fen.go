// Package engine provides chess move validation, execution and undo over
// a chess.Board.
package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/chess-replay-go/internal/chess"
	"github.com/lgbarn/chess-replay-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewBoard creates a board with the standard starting position.
func NewBoard() *chess.Board {
	board, err := NewBoardFromFEN(InitialFEN)
	if err != nil {
		panic(err)
	}
	return board
}

// NewBoardFromFEN creates a board from the placement field of a FEN
// string. When the castling field is present, rooks whose right is missing
// are marked as moved, and a king without any right is marked as moved.
// Other fields are ignored.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	board := chess.NewEmptyBoard()
	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, err
	}
	for _, side := range []chess.Side{chess.White, chess.Black} {
		if len(board.Find(side, chess.King)) != 1 {
			return nil, fmt.Errorf("%s must have exactly one king: %w", side, errors.ErrInvalidFEN)
		}
	}
	if len(parts) >= 3 {
		applyCastlingRights(board, parts[2])
	}
	return board, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	rank := chess.Rank8
	file := chess.FileA

	for _, c := range positions {
		switch {
		case c == '/':
			rank--
			file = chess.FileA
		case c >= '1' && c <= '8':
			file += chess.File(c - '0')
		default:
			kind, ok := chess.KindFromLetter(byte(unicode.ToUpper(c)))
			if !ok {
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			sq := chess.Sq(file, rank)
			if !sq.Valid() {
				return fmt.Errorf("position out of bounds: %w", errors.ErrInvalidFEN)
			}
			side := chess.White
			if unicode.IsLower(c) {
				side = chess.Black
			}
			board.Add(side, kind, sq)
			file++
		}
	}
	return nil
}

// applyCastlingRights marks rooks and kings that have lost their rights.
func applyCastlingRights(board *chess.Board, rights string) {
	type corner struct {
		letter rune
		side   chess.Side
		file   chess.File
	}
	corners := []corner{
		{'K', chess.White, chess.FileH},
		{'Q', chess.White, chess.FileA},
		{'k', chess.Black, chess.FileH},
		{'q', chess.Black, chess.FileA},
	}
	lost := map[chess.Side]int{}
	for _, c := range corners {
		if strings.ContainsRune(rights, c.letter) {
			continue
		}
		lost[c.side]++
		markMoved(board.At(chess.Sq(c.file, c.side.HomeRank())))
	}
	for side, n := range lost {
		if n == 2 {
			if sq, ok := board.King(side); ok {
				markMoved(board.At(sq))
			}
		}
	}
}

// markMoved flags a rook or king as having moved before the game started.
func markMoved(p *chess.Piece) {
	if p == nil {
		return
	}
	if ms := p.Mover(); ms != nil {
		ms.HasMoved = true
	}
}

// Placement returns the FEN placement field of the board.
func Placement(board *chess.Board) string {
	var sb strings.Builder
	for rank := chess.Rank8; rank >= chess.Rank1; rank-- {
		emptyCount := 0
		for file := chess.FileA; file <= chess.FileH; file++ {
			p := board.At(chess.Sq(file, rank))
			if p == nil {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(p.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > chess.Rank1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// EPD returns the first four FEN fields for the position reached after
// ply plies: placement, side to move, castling availability and the en
// passant target square.
func EPD(board *chess.Board, ply int) string {
	toMove := chess.White
	if ply%2 == 1 {
		toMove = chess.Black
	}
	side := "w"
	if toMove == chess.Black {
		side = "b"
	}
	return strings.Join([]string{
		Placement(board),
		side,
		castlingRights(board),
		enPassantTarget(board, toMove, ply),
	}, " ")
}

// castlingRights derives the castling field from the moved markers.
func castlingRights(board *chess.Board) string {
	var sb strings.Builder
	for _, side := range []chess.Side{chess.White, chess.Black} {
		home := side.HomeRank()
		king := board.At(chess.Sq(chess.FileE, home))
		if king == nil || king.Side != side || king.Kind != chess.King || king.HasMoved() {
			continue
		}
		for _, c := range []struct {
			file   chess.File
			letter byte
		}{{chess.FileH, 'K'}, {chess.FileA, 'Q'}} {
			rook := board.At(chess.Sq(c.file, home))
			if rook == nil || rook.Side != side || rook.Kind != chess.Rook || rook.HasMoved() {
				continue
			}
			letter := c.letter
			if side == chess.Black {
				letter += 'a' - 'A'
			}
			sb.WriteByte(letter)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// enPassantTarget returns the square behind a pawn that advanced two
// squares on ply, or "-".
func enPassantTarget(board *chess.Board, toMove chess.Side, ply int) string {
	mover := toMove.Opposite()
	rank := mover.PawnRank() + chess.Rank(2*mover.Forward())
	for file := chess.FileA; file <= chess.FileH; file++ {
		p := board.At(chess.Sq(file, rank))
		if p == nil || p.Side != mover || p.EffectiveKind() != chess.Pawn {
			continue
		}
		if ps := p.Pawn(); ps != nil && ps.FirstMovedPly == ply && ply > 0 {
			return chess.Sq(file, rank-chess.Rank(mover.Forward())).String()
		}
	}
	return "-"
}
