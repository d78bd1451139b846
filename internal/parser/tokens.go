// Package parser turns PGN text into a chess.Game: a finite-state lexer,
// a four-pass bottom-up tree builder, a tree extractor and a per-move
// notation decoder.
package parser

// Kind labels both lexical tokens and grammar nodes.
type Kind int

const (
	// Lexical tokens
	Period Kind = iota
	Asterisk
	LeftBracket
	RightBracket
	LeftParen
	RightParen
	LeftAngle
	RightAngle
	StringToken
	IntegerToken
	SymbolToken
	NAGToken
	BraceComment
	LineComment

	// Grammar nodes
	PGNGame
	TagSection
	TagPair
	MovetextSection
	ElementSequence
	FullTurn
	MoveNumber
	SANMove
	Variation
	Termination
)

// kindNames maps kinds to their string representations.
var kindNames = [...]string{
	Period:          "PERIOD",
	Asterisk:        "ASTERISK",
	LeftBracket:     "LEFT_BRACKET",
	RightBracket:    "RIGHT_BRACKET",
	LeftParen:       "LEFT_PARENTHESIS",
	RightParen:      "RIGHT_PARENTHESIS",
	LeftAngle:       "LEFT_ANGLE_BRACKET",
	RightAngle:      "RIGHT_ANGLE_BRACKET",
	StringToken:     "STRING",
	IntegerToken:    "INTEGER",
	SymbolToken:     "SYMBOL",
	NAGToken:        "NAG",
	BraceComment:    "BRACE_COMMENT",
	LineComment:     "REST_OF_LINE_COMMENT",
	PGNGame:         "PGN_GAME",
	TagSection:      "TAG_SECTION",
	TagPair:         "TAG_PAIR",
	MovetextSection: "MOVETEXT_SECTION",
	ElementSequence: "ELEMENT_SEQUENCE",
	FullTurn:        "FULL_TURN",
	MoveNumber:      "MOVE_NUMBER_INDICATION",
	SANMove:         "SAN_MOVE",
	Variation:       "RECURSIVE_VARIATION",
	Termination:     "GAME_TERMINATION",
}

// String returns the string representation of a kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// IsComment reports whether k is either comment token.
func (k Kind) IsComment() bool {
	return k == BraceComment || k == LineComment
}

// Token is a lexical token with the 1-based position of its first character.
type Token struct {
	Kind   Kind
	Text   string
	Line   int
	Column int
}

// singletons maps single-character punctuation to its token kind.
var singletons = map[rune]Kind{
	'.': Period,
	'*': Asterisk,
	'[': LeftBracket,
	']': RightBracket,
	'(': LeftParen,
	')': RightParen,
	'<': LeftAngle,
	'>': RightAngle,
}
