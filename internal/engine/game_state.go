package engine

import "github.com/lgbarn/chess-replay-go/internal/chess"

// IsCheckmate returns true if side, to play ply, is in check with no legal moves.
func IsCheckmate(board *chess.Board, side chess.Side, ply int) bool {
	return InCheck(board, side) && !HasLegalMoves(board, side, ply)
}

// IsStalemate returns true if side, to play ply, is not in check but has no legal moves.
func IsStalemate(board *chess.Board, side chess.Side, ply int) bool {
	return !InCheck(board, side) && !HasLegalMoves(board, side, ply)
}
