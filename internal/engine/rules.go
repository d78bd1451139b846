package engine

import "github.com/lgbarn/chess-replay-go/internal/chess"

// HasInsufficientMaterial reports whether neither side can deliver mate.
// Insufficient material includes:
// - K vs K
// - K+B vs K
// - K+N vs K
// - K+B vs K+B (same color bishops)
func HasInsufficientMaterial(board *chess.Board) bool {
	minor := map[chess.Side][]chess.PieceKind{}
	bishopOnLight := map[chess.Side]bool{}

	for _, p := range board.Live() {
		kind := p.EffectiveKind()
		switch kind {
		case chess.King:
			continue
		case chess.Pawn, chess.Rook, chess.Queen:
			return false
		}
		minor[p.Side] = append(minor[p.Side], kind)
		if kind == chess.Bishop {
			sq, _ := board.SquareOf(p)
			bishopOnLight[p.Side] = isLightSquare(sq)
		}
	}

	white, black := minor[chess.White], minor[chess.Black]
	switch {
	case len(white) == 0 && len(black) == 0:
		return true
	case len(white) == 0 && len(black) == 1:
		return true
	case len(black) == 0 && len(white) == 1:
		return true
	case len(white) == 1 && len(black) == 1:
		return white[0] == chess.Bishop && black[0] == chess.Bishop &&
			bishopOnLight[chess.White] == bishopOnLight[chess.Black]
	}
	return false
}

// isLightSquare returns true if the given square is a light square.
func isLightSquare(sq chess.Square) bool {
	return (int(sq.File)+int(sq.Rank))%2 == 1
}
