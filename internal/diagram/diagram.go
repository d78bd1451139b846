// Package diagram renders board positions as text or SVG.
package diagram

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/lgbarn/chess-replay-go/internal/chess"
	"github.com/lgbarn/chess-replay-go/internal/replay"
)

// Frame is one position to draw.
type Frame struct {
	Snapshot chess.Snapshot
	From, To chess.Square // last move, valid when HasLast
	HasLast  bool
	Captured []chess.Cell
}

// FromSession captures the position at the session's cursor.
func FromSession(s *replay.Session) Frame {
	f := Frame{Snapshot: s.Snapshot(), Captured: s.Captured()}
	f.From, f.To, f.HasLast = s.LastMove()
	return f
}

func (f *Frame) highlighted(sq chess.Square) bool {
	return f.HasLast && (sq == f.From || sq == f.To)
}

// Letter returns the FEN letter of a cell, or '.' for an empty one.
func Letter(c chess.Cell) byte {
	if c.Kind == chess.NoPiece {
		return '.'
	}
	l := c.Kind.Letter()
	if c.Side == chess.Black {
		l += 'a' - 'A'
	}
	return l
}

var glyphs = [2][7]string{
	{"", "♙", "♘", "♗", "♖", "♕", "♔"},
	{"", "♟", "♞", "♝", "♜", "♛", "♚"},
}

// Glyph returns the Unicode chess symbol of a cell, or "" for an empty one.
func Glyph(c chess.Cell) string {
	side := 0
	if c.Side == chess.Black {
		side = 1
	}
	return glyphs[side][c.Kind]
}

// ASCII writes the frame as eight ranks of letters, rank 8 first. The
// squares of the last move are bracketed.
func ASCII(w io.Writer, f Frame) error {
	var sb strings.Builder
	for rank := chess.Rank8; rank >= chess.Rank1; rank-- {
		sb.WriteString(rank.String())
		sb.WriteByte(' ')
		for file := chess.FileA; file <= chess.FileH; file++ {
			sq := chess.Sq(file, rank)
			l := Letter(f.Snapshot.At(sq))
			if f.highlighted(sq) {
				fmt.Fprintf(&sb, "[%c]", l)
			} else {
				fmt.Fprintf(&sb, " %c ", l)
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  ")
	for file := chess.FileA; file <= chess.FileH; file++ {
		fmt.Fprintf(&sb, " %s ", file)
	}
	sb.WriteByte('\n')
	if len(f.Captured) > 0 {
		sb.WriteString("captured:")
		for _, c := range f.Captured {
			sb.WriteByte(' ')
			sb.WriteByte(Letter(c))
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// SVG geometry and colours.
const (
	squareSize = 45
	margin     = 20
	boardSize  = 8 * squareSize

	lightFill     = "fill:#f0d9b5"
	darkFill      = "fill:#b58863"
	lightHighFill = "fill:#cdd26a"
	darkHighFill  = "fill:#aaa23a"
	pieceStyle    = "font-size:36px;text-anchor:middle;dominant-baseline:central;font-family:serif"
	labelStyle    = "font-size:12px;text-anchor:middle;dominant-baseline:central;font-family:sans-serif;fill:#333"
)

// SVG writes the frame as a standalone SVG document with rank and file
// labels. The squares of the last move are tinted.
func SVG(w io.Writer, f Frame) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	size := boardSize + 2*margin
	canvas.Start(size, size)
	canvas.Rect(0, 0, size, size, "fill:#ffffff")

	for rank := chess.Rank8; rank >= chess.Rank1; rank-- {
		y := margin + int(chess.Rank8-rank)*squareSize
		for file := chess.FileA; file <= chess.FileH; file++ {
			x := margin + int(file)*squareSize
			sq := chess.Sq(file, rank)
			canvas.Rect(x, y, squareSize, squareSize, squareFill(sq, f.highlighted(sq)))
			if g := Glyph(f.Snapshot.At(sq)); g != "" {
				canvas.Text(x+squareSize/2, y+squareSize/2, g, pieceStyle)
			}
		}
		canvas.Text(margin/2, y+squareSize/2, rank.String(), labelStyle)
	}
	for file := chess.FileA; file <= chess.FileH; file++ {
		x := margin + int(file)*squareSize + squareSize/2
		canvas.Text(x, margin+boardSize+margin/2, file.String(), labelStyle)
	}
	canvas.End()
	return ew.err
}

func squareFill(sq chess.Square, high bool) string {
	light := (int(sq.File)+int(sq.Rank))%2 == 1
	switch {
	case light && high:
		return lightHighFill
	case light:
		return lightFill
	case high:
		return darkHighFill
	}
	return darkFill
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
