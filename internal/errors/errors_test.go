package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors_Typed verifies each structured error unwraps to its sentinel.
func TestSentinelErrors_Typed(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"lexical", &LexicalError{Msg: "bad", Line: 1, Column: 2}, ErrLexical},
		{"grammar", &GrammarError{Msg: "bad"}, ErrGrammar},
		{"grammarf", Grammarf("empty turn %d", 3), ErrGrammar},
		{"invalid move", InvalidMove(2, "Qxh5", "is not a valid move"), ErrInvalidMove},
		{"illegal promotion", IllegalPromotion(40, "e8=K", "cannot promote to King"), ErrIllegalPromotion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

// TestSentinelErrors_Distinct verifies that the four kinds never match each other.
func TestSentinelErrors_Distinct(t *testing.T) {
	err := InvalidMove(1, "e5", "is not a valid move")
	for _, other := range []error{ErrLexical, ErrGrammar, ErrIllegalPromotion} {
		if errors.Is(err, other) {
			t.Errorf("errors.Is(%v, %v) = true, want false", err, other)
		}
	}
}

func TestLexicalError_Error(t *testing.T) {
	err := &LexicalError{Msg: "invalid token after e4", Line: 3, Column: 7}
	if got, want := err.Error(), "3:7: invalid token after e4"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	noLoc := &LexicalError{Msg: "unterminated string"}
	if got := noLoc.Error(); got != "unterminated string" {
		t.Errorf("Error() = %q, want %q", got, "unterminated string")
	}
}

func TestGrammarError_Error(t *testing.T) {
	err := &GrammarError{Msg: "unmatched right parenthesis", After: "Nf3"}
	if got, want := err.Error(), "unmatched right parenthesis after Nf3"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestMoveError_Error(t *testing.T) {
	err := InvalidMove(2, "Qxh5", "is not a valid move")
	msg := err.Error()
	for _, s := range []string{"invalid move", "2. Qxh5", "not a valid move"} {
		if !strings.Contains(msg, s) {
			t.Errorf("MoveError.Error() = %q, should contain %q", msg, s)
		}
	}
}

// TestGameError_As verifies that errors.As reaches the move error through a GameError.
func TestGameError_As(t *testing.T) {
	gameErr := &GameError{
		Err:   InvalidMove(3, "Bb5", "is ambiguous"),
		File:  "game.pgn",
		Ply:   5,
		Stage: "validate",
	}
	wrapped := fmt.Errorf("load failed: %w", gameErr)

	var moveErr *MoveError
	if !errors.As(wrapped, &moveErr) {
		t.Fatal("errors.As(wrapped, &MoveError) = false, want true")
	}
	if moveErr.MoveText != "Bb5" {
		t.Errorf("MoveText = %q, want %q", moveErr.MoveText, "Bb5")
	}
	if !errors.Is(wrapped, ErrInvalidMove) {
		t.Error("errors.Is(wrapped, ErrInvalidMove) = false, want true")
	}
	for _, s := range []string{"game.pgn", "validate", "ply 5"} {
		if !strings.Contains(gameErr.Error(), s) {
			t.Errorf("GameError.Error() = %q, should contain %q", gameErr.Error(), s)
		}
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	err := Wrapf(ErrNoGame, "play %d", 4)
	if !errors.Is(err, ErrNoGame) {
		t.Error("errors.Is(Wrapf(ErrNoGame)) = false, want true")
	}
	if got, want := err.Error(), "play 4: no game loaded"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
