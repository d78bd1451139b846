package engine

import "github.com/lgbarn/chess-replay-go/internal/chess"

// HasLegalMoves returns true if side has at least one legal move when it is
// to play ply. Castling is not tried: whenever castling is legal the king
// also has a legal step towards the rook.
func HasLegalMoves(board *chess.Board, side chess.Side, ply int) bool {
	for idx := 0; idx < chess.BoardSize*chess.BoardSize; idx++ {
		from := chess.SquareAt(idx)
		piece := board.At(from)
		if piece == nil || piece.Side != side {
			continue
		}
		if hasLegalMovesForPiece(board, piece, from, ply) {
			return true
		}
	}
	return false
}

// hasLegalMovesForPiece tries every destination square for one piece.
func hasLegalMovesForPiece(board *chess.Board, piece *chess.Piece, from chess.Square, ply int) bool {
	for idx := 0; idx < chess.BoardSize*chess.BoardSize; idx++ {
		to := chess.SquareAt(idx)
		if to == from {
			continue
		}
		if tryMove(board, piece, from, to, ply) {
			return true
		}
	}
	return false
}

// tryMove reports whether moving piece from from to to is legal.
func tryMove(board *chess.Board, piece *chess.Piece, from, to chess.Square, ply int) bool {
	target := board.At(to)
	if target != nil && target.Side == piece.Side {
		return false
	}

	probe := chess.NewMove("", ply, piece.Side)
	probe.Piece = piece.EffectiveKind()
	probe.Dest = to
	probe.Capture = target != nil
	if probe.Piece == chess.Pawn {
		if to.File != from.File {
			probe.Capture = true
		}
		if to.Rank == piece.Side.PromotionRank() {
			probe.Kind = chess.Promotion
			probe.PromoteTo = chess.Queen
		}
	}

	ok, enPassant := canReach(board, probe, from)
	if !ok {
		return false
	}
	exposes, err := exposesKing(board, probe, from, enPassant)
	return err == nil && !exposes
}
