package parser

import (
	"regexp"

	"github.com/lgbarn/chess-replay-go/internal/chess"
	"github.com/lgbarn/chess-replay-go/internal/errors"
)

var (
	annotationSuffix = regexp.MustCompile(`[!?]{1,2}$`)
	checkSuffix      = regexp.MustCompile(`[+#]$`)
	promotionPattern = regexp.MustCompile(`^P?[a-h]?[1-8]?x?[a-h][1-8]=[KQRBN]$`)
)

const (
	kingsideCastling  = "O-O"
	queensideCastling = "O-O-O"
)

// DecodeMove converts the text of one move into a Move for the given ply
// and side. It performs no board lookups: the source square is filled in
// only as far as the notation states it.
func DecodeMove(text string, ply int, side chess.Side) (*chess.Move, error) {
	rest := text
	annotation := ""
	if loc := annotationSuffix.FindStringIndex(rest); loc != nil {
		annotation = rest[loc[0]:]
		rest = rest[:loc[0]]
	}

	m := chess.NewMove(rest, ply, side)
	m.Annotation = annotation

	if loc := checkSuffix.FindStringIndex(rest); loc != nil {
		switch rest[loc[0]] {
		case '+':
			m.Check = true
		case '#':
			m.Checkmate = true
		}
		rest = rest[:loc[0]]
	}

	switch rest {
	case queensideCastling, kingsideCastling:
		m.Kind = chess.Castling
		m.Piece = chess.King
		m.Kingside = rest == kingsideCastling
		_, m.Dest, _, _ = chess.CastlingSquares(side, m.Kingside)
		return m, nil
	}

	syntaxErr := errors.Grammarf("syntax error on move %s at turn %d", text, m.MoveNumber())

	i := len(rest) - 1
	if promotionPattern.MatchString(rest) {
		if len(rest) < 4 {
			return nil, syntaxErr
		}
		target, _ := chess.KindFromLetter(rest[i])
		m.Kind = chess.Promotion
		m.PromoteTo = target
		i -= 2 // promotion letter and '='
	} else if len(rest) < 2 {
		return nil, syntaxErr
	}

	rank, okRank := chess.ParseRank(rest[i])
	file, okFile := chess.ParseFile(rest[i-1])
	if !okRank || !okFile {
		return nil, syntaxErr
	}
	m.Dest = chess.Sq(file, rank)
	i -= 2

	if i >= 0 && rest[i] == 'x' {
		m.Capture = true
		i--
	}
	if i >= 0 {
		if r, ok := chess.ParseRank(rest[i]); ok {
			m.SourceRank = r
			i--
		}
	}
	if i >= 0 {
		if f, ok := chess.ParseFile(rest[i]); ok {
			m.SourceFile = f
			i--
		}
	}

	switch i {
	case -1:
		m.Piece = chess.Pawn
	case 0:
		kind, ok := chess.KindFromLetter(rest[0])
		if !ok {
			return nil, syntaxErr
		}
		m.Piece = kind
	default:
		return nil, syntaxErr
	}
	return m, nil
}
