package engine

import "github.com/lgbarn/chess-replay-go/internal/chess"

// canPieceReach checks the geometry of a knight, bishop, rook, queen or king
// move, with every interleaving square of a sliding move empty.
func canPieceReach(board *chess.Board, kind chess.PieceKind, from, to chess.Square) bool {
	df, dr := delta(from, to)
	fileDiff, rankDiff := abs(df), abs(dr)

	switch kind {
	case chess.Knight:
		return (fileDiff == 1 && rankDiff == 2) || (fileDiff == 2 && rankDiff == 1)

	case chess.Bishop:
		return isDiagonal(from, to) && isPathClear(board, from, to)

	case chess.Rook:
		return isStraight(from, to) && isPathClear(board, from, to)

	case chess.Queen:
		return (isDiagonal(from, to) || isStraight(from, to)) && isPathClear(board, from, to)

	case chess.King:
		return max(fileDiff, rankDiff) == 1
	}

	return false
}

// isDiagonal reports a move with equal, non-zero file and rank displacement.
func isDiagonal(from, to chess.Square) bool {
	df, dr := delta(from, to)
	return df != 0 && abs(df) == abs(dr)
}

// isStraight reports a move along exactly one of file or rank.
func isStraight(from, to chess.Square) bool {
	df, dr := delta(from, to)
	return (df == 0) != (dr == 0)
}

// isPathClear checks that every square strictly between from and to is empty.
// from and to must share a file, rank or diagonal.
func isPathClear(board *chess.Board, from, to chess.Square) bool {
	df, dr := delta(from, to)
	fileDir, rankDir := sign(df), sign(dr)

	sq, _ := from.Offset(fileDir, rankDir)
	for sq != to {
		if !board.IsEmpty(sq) {
			return false
		}
		sq, _ = sq.Offset(fileDir, rankDir)
	}
	return true
}
