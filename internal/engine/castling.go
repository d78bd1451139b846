package engine

import (
	"github.com/lgbarn/chess-replay-go/internal/chess"
	"github.com/lgbarn/chess-replay-go/internal/errors"
)

// validateCastle checks that the king and rook stand unmoved on their
// starting squares, that the squares between them are empty and that the
// king neither starts, passes through nor lands on an attacked square.
func validateCastle(board *chess.Board, move *chess.Move) error {
	invalid := errors.InvalidMove(move.MoveNumber(), move.Text, "is not a valid move")
	side := move.Side
	kingFrom, kingTo, rookFrom, _ := chess.CastlingSquares(side, move.Kingside)

	king := board.At(kingFrom)
	if king == nil || king.Side != side || king.Kind != chess.King || king.HasMoved() {
		return invalid
	}
	rook := board.At(rookFrom)
	if rook == nil || rook.Side != side || rook.Kind != chess.Rook || rook.HasMoved() {
		return invalid
	}

	for _, sq := range castlingEmptySquares(side, move.Kingside) {
		if !board.IsEmpty(sq) {
			return invalid
		}
	}
	for _, sq := range castlingKingPath(side, move.Kingside) {
		if IsThreatened(board, sq, side) {
			return invalid
		}
	}

	move.SetSource(kingFrom)
	move.Dest = kingTo
	return nil
}

// castlingEmptySquares returns the squares between king and rook.
func castlingEmptySquares(side chess.Side, kingside bool) []chess.Square {
	r := side.HomeRank()
	if kingside {
		return []chess.Square{chess.Sq(chess.FileF, r), chess.Sq(chess.FileG, r)}
	}
	return []chess.Square{chess.Sq(chess.FileB, r), chess.Sq(chess.FileC, r), chess.Sq(chess.FileD, r)}
}

// castlingKingPath returns the squares the king occupies or crosses.
func castlingKingPath(side chess.Side, kingside bool) []chess.Square {
	r := side.HomeRank()
	if kingside {
		return []chess.Square{chess.Sq(chess.FileE, r), chess.Sq(chess.FileF, r), chess.Sq(chess.FileG, r)}
	}
	return []chess.Square{chess.Sq(chess.FileC, r), chess.Sq(chess.FileD, r), chess.Sq(chess.FileE, r)}
}

// executeCastle relocates king and rook by their fixed offsets.
func executeCastle(board *chess.Board, move *chess.Move) error {
	kingFrom, kingTo, rookFrom, rookTo := chess.CastlingSquares(move.Side, move.Kingside)
	king, rook := board.At(kingFrom), board.At(rookFrom)
	if king == nil || rook == nil {
		return errors.InvalidMove(move.MoveNumber(), move.Text, "has no king or rook to castle with")
	}

	board.Relocate(kingFrom, kingTo)
	board.Relocate(rookFrom, rookTo)
	markFirstMove(king, move.Ply)
	markFirstMove(rook, move.Ply)
	return nil
}

// undoCastle returns king and rook to their starting squares.
func undoCastle(board *chess.Board, move *chess.Move) error {
	kingFrom, kingTo, rookFrom, rookTo := chess.CastlingSquares(move.Side, move.Kingside)
	king, rook := board.At(kingTo), board.At(rookTo)
	if king == nil || rook == nil {
		return errors.InvalidMove(move.MoveNumber(), move.Text, "has no castled king or rook to take back")
	}

	board.Relocate(kingTo, kingFrom)
	board.Relocate(rookTo, rookFrom)
	clearFirstMove(king, move.Ply)
	clearFirstMove(rook, move.Ply)
	return nil
}
