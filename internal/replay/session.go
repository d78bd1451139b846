// Package replay steps through a validated game one ply at a time and
// coordinates autoplay over it.
package replay

import (
	"fmt"

	"golang.org/x/exp/maps"

	"github.com/lgbarn/chess-replay-go/internal/chess"
	"github.com/lgbarn/chess-replay-go/internal/engine"
	"github.com/lgbarn/chess-replay-go/internal/errors"
)

// Status describes the position at the cursor.
type Status int

const (
	InProgress Status = iota
	Check
	Checkmate
	Stalemate
	InsufficientMaterial
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient material"
	}
	return "in progress"
}

// Session holds one validated game and a live board positioned after
// Cursor plies.
type Session struct {
	board  *chess.Board
	game   *chess.Game
	cursor int
}

// NewSession validates every move of the game from the initial position
// and returns a session with the cursor at the start.
func NewSession(game *chess.Game) (*Session, error) {
	if err := validateMoves(game.Moves); err != nil {
		return nil, err
	}
	return &Session{board: engine.NewBoard(), game: game}, nil
}

// validateMoves resolves and plays every move on a scratch board. The
// moves keep their resolved sources; capture records made on the scratch
// board are dropped.
func validateMoves(moves []*chess.Move) error {
	scratch := engine.NewBoard()
	for _, m := range moves {
		if err := engine.Validate(scratch, m); err != nil {
			return &errors.GameError{Err: err, Ply: m.Ply, Stage: "validate"}
		}
		if err := engine.Execute(scratch, m); err != nil {
			return &errors.GameError{Err: err, Ply: m.Ply, Stage: "validate"}
		}
	}
	for _, m := range moves {
		m.Captured = nil
	}
	return nil
}

// PlayTurn executes the move at the cursor and advances it. It does
// nothing once the game has ended.
func (s *Session) PlayTurn() error {
	if s.HasEnded() {
		return nil
	}
	m := s.game.Moves[s.cursor]
	if err := engine.Execute(s.board, m); err != nil {
		return fmt.Errorf("replay: play ply %d: %w", m.Ply, err)
	}
	s.cursor++
	return nil
}

// TakeBackTurn undoes the move before the cursor. It does nothing at the
// start of the game.
func (s *Session) TakeBackTurn() error {
	if !s.HasStarted() {
		return nil
	}
	m := s.game.Moves[s.cursor-1]
	if err := engine.Undo(s.board, m); err != nil {
		return fmt.Errorf("replay: take back ply %d: %w", m.Ply, err)
	}
	s.cursor--
	return nil
}

// Seek plays or takes back moves until the cursor equals n, clamped to
// the length of the game.
func (s *Session) Seek(n int) error {
	n = max(0, min(n, s.Len()))
	for s.cursor < n {
		if err := s.PlayTurn(); err != nil {
			return err
		}
	}
	for s.cursor > n {
		if err := s.TakeBackTurn(); err != nil {
			return err
		}
	}
	return nil
}

// HasStarted reports whether at least one move has been played.
func (s *Session) HasStarted() bool { return s.cursor > 0 }

// HasEnded reports whether every move has been played.
func (s *Session) HasEnded() bool { return s.cursor == len(s.game.Moves) }

// Cursor returns the number of plies played.
func (s *Session) Cursor() int { return s.cursor }

// Len returns the number of plies in the game.
func (s *Session) Len() int { return len(s.game.Moves) }

// Moves returns the validated moves. Callers must not modify them.
func (s *Session) Moves() []*chess.Move { return s.game.Moves }

// LastMove returns the squares of the most recently played move. Castling
// reports the king's squares.
func (s *Session) LastMove() (from, to chess.Square, ok bool) {
	if !s.HasStarted() {
		return chess.Square{}, chess.Square{}, false
	}
	m := s.game.Moves[s.cursor-1]
	if m.IsCastling() {
		kingFrom, kingTo, _, _ := chess.CastlingSquares(m.Side, m.Kingside)
		return kingFrom, kingTo, true
	}
	from, ok = m.Source()
	return from, m.Dest, ok
}

// Tags returns a copy of the game's tag pairs.
func (s *Session) Tags() map[string]string {
	tags := make(map[string]string, len(s.game.Tags))
	maps.Copy(tags, s.game.Tags)
	return tags
}

// Result returns the game termination.
func (s *Session) Result() chess.Result { return s.game.Result }

// TrailingComments returns the comments after the termination marker.
func (s *Session) TrailingComments() []string {
	return append([]string(nil), s.game.TrailingComments...)
}

// FullTextList returns the display text of every move in order.
func (s *Session) FullTextList() []string {
	list := make([]string, len(s.game.Moves))
	for i, m := range s.game.Moves {
		list[i] = m.FullText()
	}
	return list
}

// Snapshot returns the placement at the cursor.
func (s *Session) Snapshot() chess.Snapshot { return s.board.Snapshot() }

// Captured returns the pieces captured up to the cursor, in capture order.
func (s *Session) Captured() []chess.Cell {
	captured := s.board.Captured()
	cells := make([]chess.Cell, len(captured))
	for i, p := range captured {
		cells[i] = chess.Cell{Side: p.Side, Kind: p.EffectiveKind()}
	}
	return cells
}

// SideToMove returns the side whose move follows the cursor.
func (s *Session) SideToMove() chess.Side {
	if s.cursor%2 == 1 {
		return chess.Black
	}
	return chess.White
}

// Position returns the EPD of the position at the cursor.
func (s *Session) Position() string { return engine.EPD(s.board, s.cursor) }

// Status classifies the position at the cursor for the side to move.
func (s *Session) Status() Status {
	side, ply := s.SideToMove(), s.cursor+1
	switch {
	case engine.IsCheckmate(s.board, side, ply):
		return Checkmate
	case engine.IsStalemate(s.board, side, ply):
		return Stalemate
	case engine.InCheck(s.board, side):
		return Check
	case engine.HasInsufficientMaterial(s.board):
		return InsufficientMaterial
	}
	return InProgress
}
