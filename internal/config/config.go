// Package config provides configuration for chess-replay.
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/chess-replay-go/internal/errors"
)

// DiagramStyle selects how the board is drawn after each move.
type DiagramStyle string

const (
	DiagramASCII DiagramStyle = "ascii"
	DiagramSVG   DiagramStyle = "svg"
	DiagramNone  DiagramStyle = "none"
)

const (
	// DefaultTurnTime is the autoplay interval between moves.
	DefaultTurnTime = time.Second

	// MinTurnTime is the shortest autoplay interval; shorter values are raised to it.
	MinTurnTime = 10 * time.Millisecond
)

// Config holds all program configuration.
type Config struct {
	// Autoplay
	TurnTime time.Duration

	// Logging
	LogLevel string

	// Batch checking
	Workers int

	// Display
	Diagram DiagramStyle
	Output  *OutputConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		TurnTime:   DefaultTurnTime,
		LogLevel:   "info",
		Workers:    1,
		Diagram:    DiagramASCII,
		Output:     NewOutputConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the output writer.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Validate normalizes the configuration and reports the first invalid
// setting. A turn time below MinTurnTime is raised to it.
func (c *Config) Validate() error {
	if c.TurnTime < MinTurnTime {
		c.TurnTime = MinTurnTime
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		return fmt.Errorf("log level %q: %w", c.LogLevel, errors.ErrInvalidConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d: %w", c.Workers, errors.ErrInvalidConfig)
	}
	switch c.Diagram {
	case DiagramASCII, DiagramSVG, DiagramNone:
	default:
		return fmt.Errorf("diagram style %q: %w", c.Diagram, errors.ErrInvalidConfig)
	}
	return c.Output.Validate()
}
