package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/lgbarn/chess-replay-go/internal/config"
	"github.com/lgbarn/chess-replay-go/internal/diagram"
	"github.com/lgbarn/chess-replay-go/internal/replay"
)

func newReplayCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay FILE",
		Short: "Autoplay a game, drawing the board after every move",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReplay(cmd.Context(), args[0])
		},
	}
	cmd.Flags().DurationVarP(&a.turnTime, "turn-time", "t", config.DefaultTurnTime, "delay between moves")
	a.addDisplayFlags(cmd)
	return cmd
}

// boardPrinter draws the board after each autoplay move.
type boardPrinter struct {
	a *app
	c *replay.Controller

	mu  sync.Mutex
	err error
}

func (p *boardPrinter) OnMove(e replay.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if e.Err != nil {
		p.err = e.Err
		return
	}
	out := p.a.cfg.OutputFile
	fmt.Fprintf(out, "\n%s\n", e.Move)
	err := p.c.View(func(s *replay.Session) {
		p.err = drawBoard(out, diagram.FromSession(s), p.a.cfg.Diagram)
	})
	if err != nil && p.err == nil {
		p.err = err
	}
}

func (p *boardPrinter) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (a *app) runReplay(ctx context.Context, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	printer := &boardPrinter{a: a}
	c := replay.NewController(replay.WithLogger(a.logger), replay.WithListener(printer))
	printer.c = c

	sum, err := c.Load(path)
	if err != nil {
		return err
	}
	out := a.cfg.OutputFile
	fmt.Fprintf(out, "%s - %s (%d plies)\n", tagOr(sum.Tags, "White"), tagOr(sum.Tags, "Black"), len(sum.Moves))
	var drawErr error
	if err := c.View(func(s *replay.Session) {
		drawErr = drawBoard(out, diagram.FromSession(s), a.cfg.Diagram)
	}); err != nil {
		return err
	}
	if drawErr != nil {
		return drawErr
	}

	if err := c.StartAutoplay(a.cfg.TurnTime); err != nil {
		return err
	}
	done := make(chan struct{})
	go func() {
		c.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		c.StopAutoplay()
		<-done
		fmt.Fprintln(out, "\nstopped")
		a.logger.Info().Str("session", sum.ID).Msg("replay interrupted")
		return printer.Err()
	case <-done:
	}

	if err := printer.Err(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s\n", sum.Result)
	return nil
}

func tagOr(tags map[string]string, name string) string {
	if v := tags[name]; v != "" {
		return v
	}
	return "?"
}
