package parser

import (
	"regexp"

	"github.com/lgbarn/chess-replay-go/internal/errors"
)

// sanPattern matches a complete standard algebraic notation move.
var sanPattern = regexp.MustCompile(
	`^(?:[KQRBN][a-h]?[1-8]?x?[a-h][1-8]` +
		`|P?[a-h]?[1-8]?x?[a-h][1-8](?:=[KQRBN])?` +
		`|O-O|O-O-O)` +
		`[+#]?[!?]{0,2}$`)

// IsTerminationText reports whether s is a game termination literal.
func IsTerminationText(s string) bool {
	switch s {
	case "1-0", "0-1", "1/2-1/2", "*":
		return true
	}
	return false
}

// Build reduces a token sequence bottom-up into a single PGN_GAME tree.
// The shape of the result is
//
//	PGN_GAME
//	  TAG_SECTION (TAG_PAIR...)
//	  MOVETEXT_SECTION
//	    ELEMENT_SEQUENCE (FULL_TURN...)
//	    GAME_TERMINATION
//	    trailing comments...
func Build(tokens []Token) (*Node, error) {
	nodes := make([]*Node, len(tokens))
	for i, tok := range tokens {
		nodes[i] = Leaf(tok)
	}

	passes := []func([]*Node) ([]*Node, error){
		splitTagsAndTermination,
		foldVariations,
		buildMoves,
		groupTurns,
	}
	for _, pass := range passes {
		var err error
		if nodes, err = pass(nodes); err != nil {
			return nil, err
		}
	}
	return finalize(nodes), nil
}

// splitTagsAndTermination greedily collects leading tag pairs into a
// TAG_SECTION and wraps the game termination, found by scanning backwards
// over trailing comments, in a GAME_TERMINATION node.
func splitTagsAndTermination(nodes []*Node) ([]*Node, error) {
	tagSection := Internal(TagSection)
	i := 0
	for i+3 < len(nodes) &&
		nodes[i].Kind == LeftBracket &&
		nodes[i+1].Kind == SymbolToken &&
		nodes[i+2].Kind == StringToken &&
		nodes[i+3].Kind == RightBracket {
		tagSection.Add(Internal(TagPair, nodes[i], nodes[i+1], nodes[i+2], nodes[i+3]))
		i += 4
	}

	term := -1
	for j := len(nodes) - 1; j >= i; j-- {
		if IsTerminationText(nodes[j].Text()) {
			term = j
			break
		}
		if !nodes[j].Kind.IsComment() {
			break
		}
	}
	if term == -1 {
		return nil, errors.Grammarf("failed to find game termination token")
	}

	out := make([]*Node, 0, len(nodes)-i+1)
	out = append(out, tagSection)
	for j := i; j < len(nodes); j++ {
		if j == term {
			out = append(out, Internal(Termination, nodes[j]))
			continue
		}
		out = append(out, nodes[j])
	}
	return out, nil
}

// foldVariations collapses every outermost balanced parenthesis run into
// one opaque RECURSIVE_VARIATION node.
func foldVariations(nodes []*Node) ([]*Node, error) {
	out := []*Node{nodes[0]}
	depth := 0
	var variation *Node

	i := 1
	for ; nodes[i].Kind != Termination; i++ {
		n := nodes[i]
		switch n.Kind {
		case LeftParen:
			if depth == 0 {
				variation = Internal(Variation)
			}
			variation.Add(n)
			depth++
		case RightParen:
			if depth == 0 {
				return nil, grammarAfter(out, "unmatched right parenthesis")
			}
			variation.Add(n)
			depth--
			if depth == 0 {
				out = append(out, variation)
				variation = nil
			}
		case Period, NAGToken, IntegerToken, SymbolToken, BraceComment, LineComment:
			if depth > 0 {
				variation.Add(n)
			} else {
				out = append(out, n)
			}
		default:
			return nil, grammarAfter(out, "unexpected "+n.Kind.String()+" token")
		}
	}
	if depth > 0 {
		return nil, grammarAfter(out, "unmatched left parenthesis")
	}
	return append(out, nodes[i:]...), nil
}

// buildMoves turns integers into MOVE_NUMBER_INDICATION nodes that absorb
// their trailing periods, and symbols into SAN_MOVE nodes.
func buildMoves(nodes []*Node) ([]*Node, error) {
	out := []*Node{nodes[0]}

	i := 1
	for ; nodes[i].Kind != Termination; i++ {
		n := nodes[i]
		switch n.Kind {
		case SymbolToken:
			if !sanPattern.MatchString(n.Text()) {
				return nil, grammarAfter(out, "syntax error on SAN move token "+n.Text())
			}
			out = append(out, Internal(SANMove, n))
		case IntegerToken:
			number := Internal(MoveNumber, n)
			for nodes[i+1].Kind == Period {
				number.Add(nodes[i+1])
				i++
			}
			out = append(out, number)
		case Period:
			return nil, grammarAfter(out, "unexpected "+Period.String()+" token")
		default:
			out = append(out, n)
		}
	}
	return append(out, nodes[i:]...), nil
}

// groupTurns collects moves into FULL_TURN nodes of at most two moves.
// Annotations, comments and variations stay with the open turn; a move
// number or move arriving after two moves starts the next turn.
func groupTurns(nodes []*Node) ([]*Node, error) {
	out := []*Node{nodes[0]}
	sequence := Internal(ElementSequence)
	turn := Internal(FullTurn)
	moves := 0

	lastContext := func() []*Node {
		if len(sequence.Children) == 0 {
			return out
		}
		return sequence.Children
	}

	i := 1
	for ; nodes[i].Kind != Termination; i++ {
		n := nodes[i]
		if moves < 2 {
			turn.Add(n)
		} else {
			switch n.Kind {
			case NAGToken, BraceComment, LineComment, Variation:
				turn.Add(n)
			case MoveNumber, SANMove:
				sequence.Add(turn)
				turn = Internal(FullTurn, n)
				moves = 0
			default:
				return nil, grammarAfter(lastContext(), "unexpected "+n.Kind.String()+" token")
			}
		}
		if n.Kind == SANMove {
			moves++
		}
	}

	if moves > 0 {
		sequence.Add(turn)
	} else if len(turn.Children) > 0 {
		return nil, grammarAfter(lastContext(), "empty turn")
	}

	out = append(out, sequence)
	return append(out, nodes[i:]...), nil
}

// finalize wraps the reduced sequence under the PGN_GAME root.
func finalize(nodes []*Node) *Node {
	movetext := Internal(MovetextSection, nodes[1:]...)
	return Internal(PGNGame, nodes[0], movetext)
}

// grammarAfter builds a GrammarError naming the text of the last node.
func grammarAfter(preceding []*Node, msg string) error {
	after := ""
	if n := len(preceding); n > 0 {
		after = contextText(preceding[n-1])
	}
	return &errors.GrammarError{Msg: msg, After: after}
}

// contextText returns the text used to locate an error after n. For the
// tag section it is the last tag pair.
func contextText(n *Node) string {
	if n.Kind == TagSection {
		if len(n.Children) == 0 {
			return ""
		}
		return n.Children[len(n.Children)-1].Text()
	}
	return n.Text()
}
