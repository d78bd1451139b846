// Package testutil provides shared test utilities for the chess-replay-go project.
// These utilities reduce code duplication across test files and provide
// consistent test setup helpers.
package testutil

import (
	"testing"

	"github.com/lgbarn/chess-replay-go/internal/chess"
	"github.com/lgbarn/chess-replay-go/internal/parser"
)

// ParseTestGame parses a PGN string and returns the game, or nil if
// parsing fails. Use this for tests where parse failure is an acceptable
// outcome.
func ParseTestGame(pgn string) *chess.Game {
	game, err := parser.ParseString(pgn)
	if err != nil {
		return nil
	}
	return game
}

// MustParseGame parses a PGN string and returns the game.
// It calls t.Fatal if parsing fails.
func MustParseGame(t *testing.T, pgn string) *chess.Game {
	t.Helper()
	game, err := parser.ParseString(pgn)
	if err != nil {
		t.Fatalf("failed to parse test game: %v\n%s", err, pgn)
	}
	return game
}

// MustDecode decodes a single move text for the given ply. The side is
// derived from the ply's parity. It calls t.Fatal on a syntax error.
func MustDecode(t *testing.T, text string, ply int) *chess.Move {
	t.Helper()
	side := chess.White
	if ply%2 == 0 {
		side = chess.Black
	}
	m, err := parser.DecodeMove(text, ply, side)
	if err != nil {
		t.Fatalf("DecodeMove(%q, %d) failed: %v", text, ply, err)
	}
	return m
}

// PieceRecord is a comparable copy of a piece and its square.
type PieceRecord struct {
	Piece  chess.Piece
	Square string // "" when captured
}

// BoardState is a comparable copy of everything a move may change:
// placement, per-piece history and the captured collection.
type BoardState struct {
	Snapshot chess.Snapshot
	Pieces   []PieceRecord
	Captured []int
}

// CaptureState copies the state of a board for later comparison with
// AssertEqual.
func CaptureState(b *chess.Board) BoardState {
	var st BoardState
	st.Snapshot = b.Snapshot()
	for _, p := range b.Live() {
		sq, _ := b.SquareOf(p)
		st.Pieces = append(st.Pieces, PieceRecord{Piece: *p.Clone(), Square: sq.String()})
	}
	for _, p := range b.Captured() {
		st.Pieces = append(st.Pieces, PieceRecord{Piece: *p.Clone()})
		st.Captured = append(st.Captured, p.ID)
	}
	return st
}
