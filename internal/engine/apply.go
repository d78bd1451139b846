package engine

import (
	"fmt"

	"github.com/lgbarn/chess-replay-go/internal/chess"
	"github.com/lgbarn/chess-replay-go/internal/errors"
)

// Execute applies a validated move to the board. Captured pieces move to
// the board's captured collection and are recorded on the move.
func Execute(board *chess.Board, move *chess.Move) error {
	if move.IsCastling() {
		return executeCastle(board, move)
	}

	from, ok := move.Source()
	if !ok {
		return errors.InvalidMove(move.MoveNumber(), move.Text, "has no resolved source square")
	}
	piece := board.At(from)
	if piece == nil {
		return errors.InvalidMove(move.MoveNumber(), move.Text, "has no piece on "+from.String())
	}

	if move.Kind == chess.Promotion {
		if err := canPromote(piece, move.PromoteTo); err != nil {
			return withMove(err, move)
		}
	}

	if target := captureSquare(move, from); !board.IsEmpty(target) {
		move.Captured = board.Capture(target)
	}
	board.Relocate(from, move.Dest)

	if ps := piece.Pawn(); ps != nil && ps.FirstMovedPly == 0 {
		ps.FirstMovedPly = move.Ply
	}
	markFirstMove(piece, move.Ply)

	if move.Kind == chess.Promotion {
		piece.Pawn().Promoted = move.PromoteTo
	}
	return nil
}

// Undo reverts a move previously applied by Execute, restoring captured
// pieces, promotion state and the first-moved markers set on its ply.
func Undo(board *chess.Board, move *chess.Move) error {
	if move.IsCastling() {
		return undoCastle(board, move)
	}

	from, ok := move.Source()
	if !ok {
		return errors.InvalidMove(move.MoveNumber(), move.Text, "has no resolved source square")
	}
	piece := board.At(move.Dest)
	if piece == nil {
		return errors.InvalidMove(move.MoveNumber(), move.Text, "has no piece on "+move.Dest.String())
	}

	if move.Kind == chess.Promotion {
		if err := Demote(piece); err != nil {
			return withMove(err, move)
		}
	}
	board.Relocate(move.Dest, from)

	if ps := piece.Pawn(); ps != nil && ps.FirstMovedPly == move.Ply {
		ps.FirstMovedPly = 0
	}
	clearFirstMove(piece, move.Ply)

	if move.Captured != nil {
		board.Restore(move.Captured)
		move.Captured = nil
	}
	return nil
}

// Promote gives a pawn its promoted kind. Promoting to pawn or king, or
// promoting anything but an unpromoted pawn, fails.
func Promote(piece *chess.Piece, kind chess.PieceKind) error {
	if err := canPromote(piece, kind); err != nil {
		return err
	}
	piece.Pawn().Promoted = kind
	return nil
}

// canPromote checks Promote's preconditions without changing the piece.
func canPromote(piece *chess.Piece, kind chess.PieceKind) error {
	switch kind {
	case chess.Knight, chess.Bishop, chess.Rook, chess.Queen:
	default:
		return &errors.MoveError{Err: errors.ErrIllegalPromotion, Reason: "cannot promote to " + kind.String()}
	}
	ps := piece.Pawn()
	if ps == nil {
		return &errors.MoveError{Err: errors.ErrIllegalPromotion, Reason: "only pawns promote, not " + piece.Kind.String()}
	}
	if ps.Promoted != chess.NoPiece {
		return &errors.MoveError{Err: errors.ErrIllegalPromotion, Reason: "pawn already promoted"}
	}
	return nil
}

// Demote reverts a promotion. It fails for a piece that is not a promoted pawn.
func Demote(piece *chess.Piece) error {
	ps := piece.Pawn()
	if ps == nil || ps.Promoted == chess.NoPiece {
		return &errors.MoveError{Err: errors.ErrIllegalPromotion, Reason: "piece was not promoted"}
	}
	ps.Promoted = chess.NoPiece
	return nil
}

// captureSquare returns the square whose occupant a move captures: the
// destination, or for en passant the square beside the source.
func captureSquare(move *chess.Move, from chess.Square) chess.Square {
	if move.Kind == chess.EnPassant {
		return chess.Sq(move.Dest.File, from.Rank)
	}
	return move.Dest
}

// markFirstMove records the first move of a rook or king.
func markFirstMove(piece *chess.Piece, ply int) {
	if ms := piece.Mover(); ms != nil && !ms.HasMoved {
		ms.HasMoved = true
		ms.FirstMovedPly = ply
	}
}

// clearFirstMove reverts markFirstMove for the same ply.
func clearFirstMove(piece *chess.Piece, ply int) {
	if ms := piece.Mover(); ms != nil && ms.HasMoved && ms.FirstMovedPly == ply {
		ms.HasMoved = false
		ms.FirstMovedPly = 0
	}
}

// withMove fills in the move context of a MoveError.
func withMove(err error, move *chess.Move) error {
	var me *errors.MoveError
	if errors.As(err, &me) {
		me.MoveNumber = move.MoveNumber()
		me.MoveText = move.Text
		return me
	}
	return fmt.Errorf("move %d. %s: %w", move.MoveNumber(), move.Text, err)
}
