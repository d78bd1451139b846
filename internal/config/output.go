package config

import (
	"fmt"

	"github.com/lgbarn/chess-replay-go/internal/errors"
)

// OutputFormat selects the report format of the show command.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// TagOutputForm specifies which tags to output.
type TagOutputForm int

const (
	AllTags        TagOutputForm = 0
	SevenTagRoster TagOutputForm = 1
	NoTags         TagOutputForm = 2
)

// OutputConfig holds settings related to game reports.
type OutputConfig struct {
	// Format is text or json
	Format OutputFormat

	// TagFormat specifies which tags to output (AllTags, SevenTagRoster, NoTags)
	TagFormat TagOutputForm

	// KeepNAGs controls whether Numeric Annotation Glyphs are kept
	KeepNAGs bool

	// KeepComments controls whether comments are kept in output
	KeepComments bool

	// KeepVariations controls whether variations (RAV) are kept
	KeepVariations bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:         FormatText,
		TagFormat:      AllTags,
		KeepNAGs:       true,
		KeepComments:   true,
		KeepVariations: true,
	}
}

// Validate reports an unknown format.
func (c *OutputConfig) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON:
		return nil
	}
	return fmt.Errorf("output format %q: %w", c.Format, errors.ErrInvalidConfig)
}
