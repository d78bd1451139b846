// Package errors provides sentinel errors and error types for chess-replay.
// Every failure raised while loading a game belongs to one of four kinds:
// lexical, grammar, invalid move or illegal promotion. Each kind has a
// sentinel usable with errors.Is() and a structured type carrying context
// usable with errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
var (
	// ErrLexical indicates a character stream that cannot be tokenized.
	ErrLexical = errors.New("lexical error")

	// ErrGrammar indicates a token sequence that violates the PGN grammar.
	ErrGrammar = errors.New("grammar error")

	// ErrInvalidMove indicates an illegal or ambiguous move in the current position.
	ErrInvalidMove = errors.New("invalid move")

	// ErrIllegalPromotion indicates promotion to pawn or king, or undoing
	// a promotion on a pawn that was never promoted.
	ErrIllegalPromotion = errors.New("illegal promotion")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoGame indicates an operation that needs a loaded game.
	ErrNoGame = errors.New("no game loaded")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return errors.As(err, target) }

// New returns an error that formats as the given text.
func New(text string) error { return errors.New(text) }

// LexicalError is raised by the lexer. Line and Column are 1-based and
// locate the offending character.
type LexicalError struct {
	Msg    string
	Line   int
	Column int
}

// Error returns the message with its location.
func (e *LexicalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
	}
	return e.Msg
}

// Unwrap returns ErrLexical.
func (e *LexicalError) Unwrap() error {
	return ErrLexical
}

// GrammarError is raised by the tree builder, the extractor and the
// notation decoder. After is the text of the token preceding the
// violation, when one exists.
type GrammarError struct {
	Msg   string
	After string
}

// Error returns the message with the preceding-token context.
func (e *GrammarError) Error() string {
	if e.After != "" {
		return fmt.Sprintf("%s after %s", e.Msg, e.After)
	}
	return e.Msg
}

// Unwrap returns ErrGrammar.
func (e *GrammarError) Unwrap() error {
	return ErrGrammar
}

// Grammarf builds a GrammarError without preceding-token context.
func Grammarf(format string, args ...interface{}) error {
	return &GrammarError{Msg: fmt.Sprintf(format, args...)}
}

// MoveError reports a move the board rejected. Err is ErrInvalidMove or
// ErrIllegalPromotion.
type MoveError struct {
	Err        error
	MoveNumber int
	MoveText   string
	Reason     string
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %d. %s", e.MoveNumber, e.MoveText))
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}
	context := strings.Join(parts, " ")
	if e.Err != nil && context != "" {
		return fmt.Sprintf("%v: %s", e.Err, context)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return context
}

// Unwrap returns the underlying sentinel.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// InvalidMove builds a MoveError wrapping ErrInvalidMove.
func InvalidMove(moveNumber int, text, reason string) error {
	return &MoveError{Err: ErrInvalidMove, MoveNumber: moveNumber, MoveText: text, Reason: reason}
}

// IllegalPromotion builds a MoveError wrapping ErrIllegalPromotion.
func IllegalPromotion(moveNumber int, text, reason string) error {
	return &MoveError{Err: ErrIllegalPromotion, MoveNumber: moveNumber, MoveText: text, Reason: reason}
}

// GameError wraps a load failure with its source file and ply.
type GameError struct {
	Err   error  // The underlying error
	File  string // Source file name (if known)
	Ply   int    // Ply where the error occurred (0 if not applicable)
	Stage string // Pipeline stage: "lex", "parse", "validate"
}

// Error returns a formatted error message including all available context.
func (e *GameError) Error() string {
	var parts []string
	if e.File != "" {
		parts = append(parts, e.File)
	}
	if e.Stage != "" {
		parts = append(parts, e.Stage)
	}
	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	context := strings.Join(parts, ", ")
	if context == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", context, e.Err)
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the GameError wrapper.
func (e *GameError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
