package engine

import "github.com/lgbarn/chess-replay-go/internal/chess"

// pawnCanReach checks the geometry of a pawn move from from. A capture onto
// an empty square is accepted only as en passant, which is reported by the
// second result.
func pawnCanReach(board *chess.Board, move *chess.Move, from chess.Square) (ok, enPassant bool) {
	side := move.Side
	df, dr := delta(from, move.Dest)
	forward := dr * side.Forward()

	if move.Capture {
		if abs(df) != 1 || forward != 1 {
			return false, false
		}
		if target := board.At(move.Dest); target != nil {
			return target.Side != side, false
		}
		return canCaptureEnPassant(board, move, from), true
	}

	if df != 0 || !board.IsEmpty(move.Dest) {
		return false, false
	}
	switch forward {
	case 1:
		return true, false
	case 2:
		between, _ := from.Offset(0, side.Forward())
		return from.Rank == side.PawnRank() && board.IsEmpty(between), false
	}
	return false, false
}

// canCaptureEnPassant checks that the pawn beside from on the destination
// file belongs to the opponent and made its double advance on the ply
// immediately before move.
func canCaptureEnPassant(board *chess.Board, move *chess.Move, from chess.Square) bool {
	side := move.Side
	fifth := side.PawnRank() + chess.Rank(3*side.Forward())
	if from.Rank != fifth {
		return false
	}
	victim := board.At(chess.Sq(move.Dest.File, from.Rank))
	if victim == nil || victim.Side == side || victim.EffectiveKind() != chess.Pawn {
		return false
	}
	ps := victim.Pawn()
	return ps != nil && ps.FirstMovedPly == move.Ply-1
}
