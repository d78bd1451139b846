package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lgbarn/chess-replay-go/internal/config"
	"github.com/lgbarn/chess-replay-go/internal/logx"
)

// app holds the state shared by all commands: flag values, the resolved
// configuration and the logger.
type app struct {
	out, errOut io.Writer

	// Persistent flags
	configFile string
	logLevel   string
	logFile    string

	// Command flags
	workers      int
	turnTime     time.Duration
	diagram      string
	format       string
	tags         string
	noComments   bool
	noNAGs       bool
	noVariations bool
	ply          int

	cfg     *config.Config
	logger  zerolog.Logger
	closers []io.Closer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, logger: logx.Nop()}

	cmd := &cobra.Command{
		Use:   "chess-replay",
		Short: "Validate and replay single-game PGN files",
		Long: `chess-replay loads a PGN file holding one game, checks every move
against the rules of chess and replays the game on a board.`,
		Version:           programVersion,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.configFile, "config", "c", "", "YAML configuration file")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	pf.StringVar(&a.logFile, "log-file", "", "append log output to this file (default: stderr)")

	cmd.AddCommand(newCheckCmd(a), newShowCmd(a), newReplayCmd(a))
	return cmd
}

// setup resolves the configuration: defaults, then the configuration file,
// then any flag given on the command line.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	base := config.NewConfig()
	if a.configFile != "" {
		loaded, err := config.LoadFile(a.configFile)
		if err != nil {
			return err
		}
		base = loaded
	}

	b := config.NewConfigBuilder().From(base).WithOutput(a.out).WithLogFile(a.errOut)
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		b.WithLogLevel(a.logLevel)
	}
	if flags.Changed("workers") {
		b.WithWorkers(a.workers)
	}
	if flags.Changed("turn-time") {
		b.WithTurnTime(a.turnTime)
	}
	if flags.Changed("diagram") {
		b.WithDiagram(config.DiagramStyle(a.diagram))
	}
	if flags.Changed("format") {
		switch config.OutputFormat(a.format) {
		case config.FormatJSON:
			b.WithJSONOutput(true)
		case config.FormatText:
			b.WithJSONOutput(false)
		default:
			return fmt.Errorf("unknown format %q", a.format)
		}
	}
	if flags.Changed("tags") {
		form, err := config.ParseTagOutputForm(a.tags)
		if err != nil {
			return err
		}
		b.WithTagFormat(form)
	}
	if flags.Changed("no-comments") {
		b.KeepComments(!a.noComments)
	}
	if flags.Changed("no-nags") {
		b.KeepNAGs(!a.noNAGs)
	}
	if flags.Changed("no-variations") {
		b.KeepVariations(!a.noVariations)
	}

	if a.logFile != "" {
		f, err := os.OpenFile(a.logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G302: user-created log file
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.closers = append(a.closers, f)
		b.WithLogFile(f)
	}

	cfg, err := b.Build()
	if err != nil {
		a.close()
		return err
	}
	logger, err := logx.NewLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		a.close()
		return err
	}
	a.cfg, a.logger = cfg, logger
	a.logger.Debug().
		Str("config", a.configFile).
		Dur("turn_time", cfg.TurnTime).
		Int("workers", cfg.Workers).
		Str("diagram", string(cfg.Diagram)).
		Msg("configuration resolved")
	return nil
}

func (a *app) close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// addDisplayFlags registers the flags shared by show and replay.
func (a *app) addDisplayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&a.diagram, "diagram", string(config.DiagramASCII), "board diagram: ascii, svg or none")
}
