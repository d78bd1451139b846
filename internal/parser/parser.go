package parser

import (
	"io"
	"strings"

	"github.com/lgbarn/chess-replay-go/internal/chess"
)

// Parse reads exactly one game from r. The returned moves are decoded
// but not yet checked against a board.
func Parse(r io.Reader) (*chess.Game, error) {
	tokens, err := Tokenize(r)
	if err != nil {
		return nil, err
	}
	root, err := Build(tokens)
	if err != nil {
		return nil, err
	}
	return Extract(root)
}

// ParseString parses a game held in a string.
func ParseString(pgn string) (*chess.Game, error) {
	return Parse(strings.NewReader(pgn))
}

// Extract walks a PGN_GAME tree into a game.
func Extract(root *Node) (*chess.Game, error) {
	moves, err := ExtractMoves(root)
	if err != nil {
		return nil, err
	}
	return &chess.Game{
		Tags:             ExtractTags(root),
		Moves:            moves,
		Result:           ExtractResult(root),
		TrailingComments: ExtractTrailingComments(root),
	}, nil
}
