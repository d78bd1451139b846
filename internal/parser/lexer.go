package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/lgbarn/chess-replay-go/internal/errors"
)

// lexState is the state of the lexer's finite-state machine.
type lexState int

const (
	stateStart lexState = iota
	stateString
	stateInteger
	stateSymbol
	stateNAG
	stateBraceComment
	stateLineComment
)

// Lexer tokenizes PGN input encoded as ISO-8859-1.
type Lexer struct {
	reader *bufio.Reader
	state  lexState
	buf    strings.Builder
	tokens []Token

	escaped bool // previous string character was a backslash

	line, col           int // position of the current character
	startLine, startCol int // position of the current token's first character
}

// NewLexer creates a new lexer for the given reader.
func NewLexer(r io.Reader) *Lexer {
	decoded := transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	return &Lexer{
		reader: bufio.NewReader(decoded),
		line:   1,
	}
}

// Tokenize is a convenience wrapper returning the tokens of r.
func Tokenize(r io.Reader) ([]Token, error) {
	return NewLexer(r).Tokens()
}

// Tokens runs the lexer to end of input.
func (l *Lexer) Tokens() ([]Token, error) {
	for {
		ch, _, err := l.reader.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading input")
		}
		l.col++
		for {
			reconsume, err := l.step(ch)
			if err != nil {
				return nil, err
			}
			if !reconsume {
				break
			}
		}
		if ch == '\n' {
			l.line++
			l.col = 0
		}
	}
	if err := l.finish(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

// step feeds one character to the state machine. It returns true when the
// character ended the current token without belonging to it, so it must
// be evaluated again as the start of a new token.
func (l *Lexer) step(ch rune) (bool, error) {
	switch l.state {
	case stateStart:
		return false, l.start(ch)

	case stateString:
		switch {
		case l.escaped:
			l.escaped = false
			l.buf.WriteRune(ch)
		case ch == '\\':
			l.escaped = true
			l.buf.WriteRune(ch)
		case ch == '"':
			l.buf.WriteRune(ch)
			l.emit(StringToken)
		case unicode.IsPrint(ch):
			l.buf.WriteRune(ch)
		default:
			return false, l.invalid()
		}
		return false, nil

	case stateInteger:
		switch {
		case isDigit(ch):
			l.buf.WriteRune(ch)
		case isSymbolContinuation(ch):
			l.state = stateSymbol
			l.buf.WriteRune(ch)
		default:
			l.emit(IntegerToken)
			return true, nil
		}
		return false, nil

	case stateSymbol:
		if isSymbolContinuation(ch) {
			l.buf.WriteRune(ch)
			return false, nil
		}
		l.emit(SymbolToken)
		return true, nil

	case stateNAG:
		if isDigit(ch) {
			l.buf.WriteRune(ch)
			return false, nil
		}
		l.emit(NAGToken)
		return true, nil

	case stateBraceComment:
		l.buf.WriteRune(ch)
		if ch == '}' {
			l.emit(BraceComment)
		}
		return false, nil

	case stateLineComment:
		switch ch {
		case '\n':
			l.emit(LineComment)
		case '\r':
		default:
			l.buf.WriteRune(ch)
		}
		return false, nil
	}
	return false, fmt.Errorf("lexer in unknown state %d", l.state)
}

// start handles a character outside any token.
func (l *Lexer) start(ch rune) error {
	if kind, ok := singletons[ch]; ok {
		l.begin(stateStart, ch)
		l.emit(kind)
		return nil
	}
	switch {
	case ch == '"':
		l.begin(stateString, ch)
	case ch == '$':
		l.begin(stateNAG, ch)
	case ch == '{':
		l.begin(stateBraceComment, ch)
	case ch == ';':
		l.begin(stateLineComment, ch)
	case isDigit(ch):
		l.begin(stateInteger, ch)
	case unicode.IsLetter(ch):
		l.begin(stateSymbol, ch)
	case unicode.IsSpace(ch):
	default:
		return l.invalid()
	}
	return nil
}

// begin starts a new token with its first character.
func (l *Lexer) begin(state lexState, ch rune) {
	l.state = state
	l.startLine, l.startCol = l.line, l.col
	l.buf.Reset()
	l.buf.WriteRune(ch)
}

// emit closes the current token.
func (l *Lexer) emit(kind Kind) {
	l.tokens = append(l.tokens, Token{
		Kind:   kind,
		Text:   l.buf.String(),
		Line:   l.startLine,
		Column: l.startCol,
	})
	l.buf.Reset()
	l.state = stateStart
	l.escaped = false
}

// finish flushes a token still open at end of input. Strings and brace
// comments have mandatory closers and fail instead.
func (l *Lexer) finish() error {
	switch l.state {
	case stateString, stateBraceComment:
		return l.invalid()
	case stateInteger:
		l.emit(IntegerToken)
	case stateSymbol:
		l.emit(SymbolToken)
	case stateNAG:
		l.emit(NAGToken)
	case stateLineComment:
		l.emit(LineComment)
	}
	return nil
}

// invalid builds a LexicalError naming the last complete token.
func (l *Lexer) invalid() error {
	msg := "invalid token at the beginning of the file"
	if n := len(l.tokens); n > 0 {
		msg = "invalid token after " + l.tokens[n-1].Text
	}
	return &errors.LexicalError{Msg: msg, Line: l.line, Column: l.col}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// isSymbolContinuation reports whether ch may extend a symbol token.
// '!' and '?' are admitted so that annotation suffixes stay on the move.
func isSymbolContinuation(ch rune) bool {
	switch ch {
	case '_', '+', '#', '=', ':', '-', '/', '!', '?':
		return true
	}
	return unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
