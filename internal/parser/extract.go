package parser

import (
	"strconv"
	"strings"

	"github.com/lgbarn/chess-replay-go/internal/chess"
	"github.com/lgbarn/chess-replay-go/internal/errors"
)

// ExtractTags returns the tag pairs of a PGN_GAME tree. Values are
// unquoted and unescaped; a repeated name keeps its last value.
func ExtractTags(root *Node) map[string]string {
	tags := make(map[string]string)
	for _, pair := range root.Child(0).Children {
		name := pair.Child(1).Text()
		tags[name] = unquote(pair.Child(2).Text())
	}
	return tags
}

// ExtractMoves decodes the moves of a PGN_GAME tree in order. Annotations,
// comments and variations attach to the move before them. Every explicit
// move number is checked against the ply it precedes.
func ExtractMoves(root *Node) ([]*chess.Move, error) {
	sequence := root.Child(1).Child(0)

	var moves []*chess.Move
	var current *chess.Move
	ply := 1

	for _, turn := range sequence.Children {
		for _, n := range turn.Children {
			switch n.Kind {
			case SANMove:
				side := chess.White
				if ply%2 == 0 {
					side = chess.Black
				}
				m, err := DecodeMove(n.Text(), ply, side)
				if err != nil {
					return nil, err
				}
				moves = append(moves, m)
				current = m
				ply++

			case MoveNumber:
				want := (ply + 1) / 2
				got, err := strconv.Atoi(n.Child(0).Text())
				if err != nil {
					return nil, errors.Grammarf("non-integer move number indication at %s", turn.Text())
				}
				if got != want {
					return nil, errors.Grammarf("wrong move number at move number indication %s, it should be %d", n.Text(), want)
				}

			case NAGToken:
				if current == nil {
					return nil, errors.Grammarf("NAG token before first move: %s", n.Text())
				}
				current.NAGs = append(current.NAGs, n.Text())

			case Variation:
				if current == nil {
					return nil, errors.Grammarf("recursive variation before first move: %s", n.Text())
				}
				current.Variations = append(current.Variations, n.Text())

			default:
				if current == nil {
					return nil, errors.Grammarf("comment before first move: %s", n.Text())
				}
				current.Comments = append(current.Comments, n.Text())
			}
		}
	}
	return moves, nil
}

// ExtractResult returns the game termination.
func ExtractResult(root *Node) chess.Result {
	result, _ := chess.ParseResult(root.Child(1).Child(1).Text())
	return result
}

// ExtractTrailingComments returns the comments following the termination.
func ExtractTrailingComments(root *Node) []string {
	movetext := root.Child(1)
	var comments []string
	for _, n := range movetext.Children[2:] {
		comments = append(comments, n.Text())
	}
	return comments
}

// unquote strips the surrounding quotes of a string token and resolves
// backslash escapes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	escaped := false
	for _, r := range s {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		sb.WriteRune(r)
	}
	return sb.String()
}
