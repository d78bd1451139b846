package engine

import "github.com/lgbarn/chess-replay-go/internal/chess"

var (
	diagonalDirs = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	knightJumps  = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
)

// InCheck returns true if the given side's king is attacked.
func InCheck(board *chess.Board, side chess.Side) bool {
	king, ok := board.King(side)
	if !ok {
		return false
	}
	return IsThreatened(board, king, side)
}

// IsThreatened returns true if a piece of side standing on sq would be
// attacked by the opponent. Each ray stops at the first piece it meets.
func IsThreatened(board *chess.Board, sq chess.Square, side chess.Side) bool {
	return IsAttacked(board, sq, side.Opposite())
}

// IsAttacked returns true if sq is attacked by a piece of side by.
func IsAttacked(board *chess.Board, sq chess.Square, by chess.Side) bool {
	for _, dir := range diagonalDirs {
		p, dist := firstPiece(board, sq, dir)
		if p == nil || p.Side != by {
			continue
		}
		switch p.EffectiveKind() {
		case chess.Bishop, chess.Queen:
			return true
		case chess.King:
			if dist == 1 {
				return true
			}
		case chess.Pawn:
			// A pawn attacks forward diagonally, so it stands one rank behind sq.
			if dist == 1 && dir[1] == -by.Forward() {
				return true
			}
		}
	}

	for _, dir := range straightDirs {
		p, dist := firstPiece(board, sq, dir)
		if p == nil || p.Side != by {
			continue
		}
		switch p.EffectiveKind() {
		case chess.Rook, chess.Queen:
			return true
		case chess.King:
			if dist == 1 {
				return true
			}
		}
	}

	for _, jump := range knightJumps {
		from, ok := sq.Offset(jump[0], jump[1])
		if !ok {
			continue
		}
		if p := board.At(from); p != nil && p.Side == by && p.EffectiveKind() == chess.Knight {
			return true
		}
	}

	return false
}

// firstPiece walks from sq along dir and returns the first piece met and
// its distance in steps.
func firstPiece(board *chess.Board, sq chess.Square, dir [2]int) (*chess.Piece, int) {
	cur := sq
	for dist := 1; ; dist++ {
		next, ok := cur.Offset(dir[0], dir[1])
		if !ok {
			return nil, 0
		}
		if p := board.At(next); p != nil {
			return p, dist
		}
		cur = next
	}
}
