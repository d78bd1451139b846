// Package output writes reports of loaded games as text or JSON.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chess-replay-go/internal/chess"
	"github.com/lgbarn/chess-replay-go/internal/config"
	"github.com/lgbarn/chess-replay-go/internal/replay"
)

// DefaultLineLength is the movetext wrap column.
const DefaultLineLength = 80

// OutputWriter handles formatted output with line length control. It
// keeps the first write error.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
	err           error
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = DefaultLineLength
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

func (o *OutputWriter) print(s string) {
	if o.err != nil {
		return
	}
	_, o.err = io.WriteString(o.w, s)
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			o.print("\n")
			o.lineLength = 0
		} else {
			o.print(" ")
			o.lineLength++
		}
	}

	o.print(s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	o.print("\n")
	o.lineLength = 0
	o.needsSpace = false
}

// Err returns the first write error.
func (o *OutputWriter) Err() error {
	return o.err
}

// WriteText writes the game as PGN: tags, a blank line, the wrapped
// movetext and a trailing blank line.
func WriteText(w io.Writer, s *replay.Session, cfg *config.OutputConfig) error {
	ow := NewOutputWriter(w, DefaultLineLength)
	tags := reportTags(s, cfg.TagFormat)
	if len(tags) > 0 {
		for _, name := range chess.OrderedTagNames(tags) {
			ow.print(fmt.Sprintf("[%s \"%s\"]\n", name, escapeTagValue(tags[name])))
		}
		ow.NewLine()
	}
	writeMoves(ow, s, cfg)
	ow.NewLine()
	ow.NewLine()
	return ow.Err()
}

// reportTags returns the tags to print for the given form. The roster
// tags are always present, with "?" for missing values, unless form is
// NoTags.
func reportTags(s *replay.Session, form config.TagOutputForm) map[string]string {
	if form == config.NoTags {
		return nil
	}
	all := s.Tags()
	tags := make(map[string]string, len(all)+len(chess.SevenTagRoster))
	for _, name := range chess.SevenTagRoster {
		tags[name] = "?"
	}
	tags[chess.ResultTag] = s.Result().String()
	for name, value := range all {
		if form == config.SevenTagRoster && !chess.IsSevenTagRosterTag(name) {
			continue
		}
		tags[name] = value
	}
	return tags
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// writeMoves writes the movetext. A black move is numbered when it opens
// the game or follows a comment or variation.
func writeMoves(ow *OutputWriter, s *replay.Session, cfg *config.OutputConfig) {
	numberNext := true
	for _, m := range s.Moves() {
		switch {
		case m.Side == chess.White:
			ow.Write(fmt.Sprintf("%d.", m.MoveNumber()))
		case numberNext:
			ow.Write(fmt.Sprintf("%d...", m.MoveNumber()))
		}
		numberNext = false

		ow.Write(m.Text + m.Annotation)
		if cfg.KeepNAGs {
			for _, nag := range m.NAGs {
				ow.Write(nag)
			}
		}
		if cfg.KeepComments {
			for _, c := range m.Comments {
				ow.Write(braceComment(c))
				numberNext = true
			}
		}
		if cfg.KeepVariations {
			for _, v := range m.Variations {
				ow.Write(v)
				numberNext = true
			}
		}
	}

	ow.Write(s.Result().String())
	if cfg.KeepComments {
		for _, c := range s.TrailingComments() {
			ow.Write(braceComment(c))
		}
	}
}

// braceComment rewrites a rest-of-line comment in brace form so it can be
// followed by more movetext on the same line.
func braceComment(c string) string {
	if !strings.HasPrefix(c, ";") {
		return c
	}
	return "{" + strings.TrimSpace(c[1:]) + "}"
}
