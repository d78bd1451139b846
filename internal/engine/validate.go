package engine

import (
	"github.com/lgbarn/chess-replay-go/internal/chess"
	"github.com/lgbarn/chess-replay-go/internal/errors"
)

// Validate resolves a decoded move against the board. On success the move
// names exactly one legal source square, and a pawn capture onto an empty
// square has been reclassified as en passant. The board is left unchanged.
func Validate(board *chess.Board, move *chess.Move) error {
	if move.IsCastling() {
		return validateCastle(board, move)
	}

	if move.Kind == chess.Promotion {
		if move.Piece != chess.Pawn {
			return errors.InvalidMove(move.MoveNumber(), move.Text, "promotes a piece that is not a pawn")
		}
		switch move.PromoteTo {
		case chess.Knight, chess.Bishop, chess.Rook, chess.Queen:
		default:
			return errors.IllegalPromotion(move.MoveNumber(), move.Text, "cannot promote to "+move.PromoteTo.String())
		}
		if move.Dest.Rank != move.Side.PromotionRank() {
			return errors.InvalidMove(move.MoveNumber(), move.Text, "promotes before the last rank")
		}
	} else if move.Piece == chess.Pawn && move.Dest.Rank == move.Side.PromotionRank() {
		return errors.InvalidMove(move.MoveNumber(), move.Text, "reaches the last rank without promoting")
	}

	invalid := errors.InvalidMove(move.MoveNumber(), move.Text, "is not a valid move")

	if target := board.At(move.Dest); target != nil && target.Side == move.Side {
		return invalid
	}

	type candidate struct {
		from      chess.Square
		enPassant bool
	}
	var candidates []candidate
	for _, from := range candidateSquares(board, move) {
		ok, ep := canReach(board, move, from)
		if ok {
			candidates = append(candidates, candidate{from: from, enPassant: ep})
		}
	}

	var legal []candidate
	for _, c := range candidates {
		exposes, err := exposesKing(board, move, c.from, c.enPassant)
		if err != nil {
			return err
		}
		if !exposes {
			legal = append(legal, c)
		}
	}

	switch len(legal) {
	case 0:
		return invalid
	case 1:
		move.SetSource(legal[0].from)
		if legal[0].enPassant {
			move.Kind = chess.EnPassant
		}
		return nil
	default:
		return errors.InvalidMove(move.MoveNumber(), move.Text, "is ambiguous")
	}
}

// candidateSquares returns the squares holding a piece of the moving side
// and kind that agree with any source file or rank given by the notation.
func candidateSquares(board *chess.Board, move *chess.Move) []chess.Square {
	var squares []chess.Square
	for _, sq := range board.Find(move.Side, move.Piece) {
		if move.SourceFile != chess.NoFile && sq.File != move.SourceFile {
			continue
		}
		if move.SourceRank != chess.NoRank && sq.Rank != move.SourceRank {
			continue
		}
		squares = append(squares, sq)
	}
	return squares
}

// canReach applies the kind-specific geometry of a move from from. For
// pieces other than pawns the capture flag must agree with the occupancy
// of the destination.
func canReach(board *chess.Board, move *chess.Move, from chess.Square) (ok, enPassant bool) {
	if move.Piece == chess.Pawn {
		return pawnCanReach(board, move, from)
	}
	if move.Capture == board.IsEmpty(move.Dest) {
		return false, false
	}
	return canPieceReach(board, move.Piece, from, move.Dest), false
}

// exposesKing applies the move from from, tests whether the mover's king
// is attacked and reverts it.
func exposesKing(board *chess.Board, move *chess.Move, from chess.Square, enPassant bool) (bool, error) {
	saved := *move
	move.SetSource(from)
	if enPassant {
		move.Kind = chess.EnPassant
	}
	defer func() {
		move.SourceFile, move.SourceRank, move.Kind = saved.SourceFile, saved.SourceRank, saved.Kind
	}()

	if err := Execute(board, move); err != nil {
		return false, err
	}
	attacked := InCheck(board, move.Side)
	if err := Undo(board, move); err != nil {
		return false, err
	}
	return attacked, nil
}
