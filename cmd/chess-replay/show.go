package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lgbarn/chess-replay-go/internal/config"
	"github.com/lgbarn/chess-replay-go/internal/diagram"
	"github.com/lgbarn/chess-replay-go/internal/output"
	"github.com/lgbarn/chess-replay-go/internal/replay"
)

func newShowCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show FILE...",
		Short: "Print each game and its position after a given ply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runShow(args)
		},
	}
	f := cmd.Flags()
	f.IntVarP(&a.ply, "ply", "p", -1, "show the position after this many plies (-1: end of game)")
	f.StringVarP(&a.format, "format", "f", string(config.FormatText), "report format: text or json")
	f.StringVar(&a.tags, "tags", "all", "tags to print: all, roster or none")
	f.BoolVar(&a.noComments, "no-comments", false, "omit comments")
	f.BoolVar(&a.noNAGs, "no-nags", false, "omit numeric annotation glyphs")
	f.BoolVar(&a.noVariations, "no-variations", false, "omit variations")
	a.addDisplayFlags(cmd)
	return cmd
}

func (a *app) runShow(paths []string) error {
	out := a.cfg.OutputFile
	w := output.NewWriter(out, a.cfg.Output)
	for _, path := range paths {
		s, err := replay.Load(path)
		if err != nil {
			return err
		}
		target := a.ply
		if target < 0 {
			target = s.Len()
		}
		if err := s.Seek(target); err != nil {
			return err
		}
		if err := w.WriteGame(s); err != nil {
			return err
		}
		if a.cfg.Output.Format == config.FormatText {
			if err := writePosition(out, s, a.cfg.Diagram); err != nil {
				return err
			}
		}
		a.logger.Debug().Str("file", path).Int("cursor", s.Cursor()).Int("plies", s.Len()).Msg("game shown")
	}
	return w.Close()
}

// writePosition prints the status line, the EPD and the diagram of the
// position at the session's cursor.
func writePosition(w io.Writer, s *replay.Session, style config.DiagramStyle) error {
	if _, err := fmt.Fprintf(w, "After ply %d of %d (%s to move): %s\nEPD: %s\n",
		s.Cursor(), s.Len(), s.SideToMove(), s.Status(), s.Position()); err != nil {
		return err
	}
	return drawBoard(w, diagram.FromSession(s), style)
}

func drawBoard(w io.Writer, f diagram.Frame, style config.DiagramStyle) error {
	switch style {
	case config.DiagramASCII:
		return diagram.ASCII(w, f)
	case config.DiagramSVG:
		return diagram.SVG(w, f)
	}
	return nil
}
