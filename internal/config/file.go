package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/lgbarn/chess-replay-go/internal/errors"
)

// fileConfig is the YAML layout of a configuration file. Absent keys keep
// their defaults.
type fileConfig struct {
	TurnTimeMS *int   `yaml:"turn_time_ms"`
	LogLevel   string `yaml:"log_level"`
	Workers    int    `yaml:"workers"`
	Diagram    string `yaml:"diagram"`
	Format     string `yaml:"format"`
	Tags       string `yaml:"tags"`
	Comments   *bool  `yaml:"comments"`
	Variations *bool  `yaml:"variations"`
	NAGs       *bool  `yaml:"nags"`
}

// LoadFile reads a YAML configuration file over the defaults and validates it.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	return Parse(data)
}

// Parse decodes YAML configuration over the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var fc fileConfig
	if err := yaml.UnmarshalStrict(data, &fc); err != nil {
		return nil, fmt.Errorf("%v: %w", err, errors.ErrInvalidConfig)
	}

	cfg := NewConfig()
	if fc.TurnTimeMS != nil {
		cfg.TurnTime = time.Duration(*fc.TurnTimeMS) * time.Millisecond
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.Workers != 0 {
		cfg.Workers = fc.Workers
	}
	if fc.Diagram != "" {
		cfg.Diagram = DiagramStyle(fc.Diagram)
	}
	if fc.Format != "" {
		cfg.Output.Format = OutputFormat(fc.Format)
	}
	if fc.Tags != "" {
		form, err := ParseTagOutputForm(fc.Tags)
		if err != nil {
			return nil, err
		}
		cfg.Output.TagFormat = form
	}
	if fc.Comments != nil {
		cfg.Output.KeepComments = *fc.Comments
	}
	if fc.Variations != nil {
		cfg.Output.KeepVariations = *fc.Variations
	}
	if fc.NAGs != nil {
		cfg.Output.KeepNAGs = *fc.NAGs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseTagOutputForm converts "all", "roster" or "none".
func ParseTagOutputForm(s string) (TagOutputForm, error) {
	switch s {
	case "all":
		return AllTags, nil
	case "roster":
		return SevenTagRoster, nil
	case "none":
		return NoTags, nil
	}
	return AllTags, fmt.Errorf("tag selection %q: %w", s, errors.ErrInvalidConfig)
}
