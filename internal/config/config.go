package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"phorg/internal/checksum"
)

// Provider names accepted for the metadata backend.
const (
	ProviderExiftool = "exiftool"
	ProviderNative   = "native"
)

// Config is the read-only configuration of one import or test run.
type Config struct {
	OutputDir         string
	AlbumFromFilename bool
	DedupeContent     bool
	Hash              checksum.Algorithm
	Provider          string
	ExiftoolBin       string
	Verbose           bool
	Interactive       bool
	Inputs            []string
}

// Resolve builds a run configuration from the viper instance the CLI
// bound its flags and PHORG_* environment variables into. inputs are
// the positional arguments of the subcommand.
func Resolve(v *viper.Viper, inputs []string) (Config, error) {
	hash, err := checksum.Parse(v.GetString("hash"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		OutputDir:         v.GetString("output"),
		AlbumFromFilename: v.GetBool("album-from-filename"),
		DedupeContent:     v.GetBool("dedupe-content"),
		Hash:              hash,
		Provider:          v.GetString("provider"),
		ExiftoolBin:       v.GetString("exiftool-bin"),
		Verbose:           v.GetBool("verbose"),
		Interactive:       v.GetBool("interactive"),
		Inputs:            inputs,
	}

	if cfg.Provider == "" {
		cfg.Provider = ProviderExiftool
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory is required")
	}
	if len(c.Inputs) == 0 {
		return errors.New("at least one input path is required")
	}
	switch c.Provider {
	case ProviderExiftool, ProviderNative:
	default:
		return fmt.Errorf("unknown metadata provider %q", c.Provider)
	}
	return nil
}
