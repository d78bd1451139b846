package engine

import (
	"testing"

	"github.com/lgbarn/chess-replay-go/internal/chess"
	"github.com/lgbarn/chess-replay-go/internal/testutil"
)

func mustBoard(t *testing.T, fen string) *chess.Board {
	t.Helper()
	board, err := NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(%q) failed: %v", fen, err)
	}
	return board
}

// play validates and executes texts from ply 1 and returns the moves.
func play(t *testing.T, board *chess.Board, texts ...string) []*chess.Move {
	t.Helper()
	moves := make([]*chess.Move, 0, len(texts))
	for i, text := range texts {
		m := testutil.MustDecode(t, text, i+1)
		if err := Validate(board, m); err != nil {
			t.Fatalf("Validate(%s) failed: %v", text, err)
		}
		if err := Execute(board, m); err != nil {
			t.Fatalf("Execute(%s) failed: %v", text, err)
		}
		moves = append(moves, m)
	}
	return moves
}

func pieceAt(t *testing.T, board *chess.Board, sq string) *chess.Piece {
	t.Helper()
	p := board.At(chess.MustSquare(sq))
	if p == nil {
		t.Fatalf("no piece on %s", sq)
	}
	return p
}
