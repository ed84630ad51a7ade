package config

import (
	"errors"
	"strings"

	"github.com/openkcm/common-sdk/pkg/commoncfg"

	"github.com/openkcm/sdkmock/internal/constants"
	"github.com/openkcm/sdkmock/internal/errs"
)

var (
	ErrConfigurationValuesError = errors.New("configuration value error")
	ErrEmptyFixturesPath        = errors.New("fixtures path must not be empty")
	ErrUnknownLogLevel          = errors.New("unknown log level")
)

// Config holds all application configuration parameters
type Config struct {
	commoncfg.BaseConfig `mapstructure:",squash"`

	Fixtures Fixtures `yaml:"fixtures"`
}

func (c *Config) Validate() error {
	level := constants.LogLevel(c.Logger.Level)
	if !level.Valid() {
		return errs.Wrap(ErrConfigurationValuesError, errs.Wrapf(ErrUnknownLogLevel, "%q", level))
	}

	err := c.Fixtures.Validate()
	if err != nil {
		return errs.Wrap(ErrConfigurationValuesError, err)
	}

	return nil
}

// Fixtures holds the fixture documents the CLI reads when no file is named on
// the command line. A path may point at a file or at a directory of *.yaml files.
type Fixtures struct {
	Paths  []string `yaml:"paths"`
	Strict bool     `yaml:"strict"`
}

func (f *Fixtures) Validate() error {
	for _, p := range f.Paths {
		if strings.TrimSpace(p) == "" {
			return ErrEmptyFixturesPath
		}
	}

	return nil
}
