// Package config loads optional project defaults from a docwrap.toml file
// found in the working directory or any parent. Explicit command-line flags
// always win over file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest searched for in the directory chain.
const FileName = "docwrap.toml"

// Config mirrors the [wrap] table of docwrap.toml. The Set flags record
// which keys were actually present so absent keys do not clobber defaults.
type Config struct {
	MaxDocLength      int
	ForceTripleQuotes bool
	SkipComments      bool
	SkipDocstrings    bool

	MaxDocLengthSet      bool
	ForceTripleQuotesSet bool
	SkipCommentsSet      bool
	SkipDocstringsSet    bool
}

type fileConfig struct {
	Wrap wrapTable `toml:"wrap"`
}

type wrapTable struct {
	MaxDocLength      int  `toml:"max-doc-length"`
	ForceTripleQuotes bool `toml:"force-triple-quotes"`
	SkipComments      bool `toml:"skip-comments"`
	SkipDocstrings    bool `toml:"skip-docstrings"`
}

// Find walks up from startDir looking for a docwrap.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load searches for and decodes a manifest. A missing file yields a zero
// Config without error; a malformed one is fatal for the run.
func Load(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return Config{}, err
	}
	return loadFile(path)
}

func loadFile(path string) (Config, error) {
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg := Config{
		MaxDocLength:      fc.Wrap.MaxDocLength,
		ForceTripleQuotes: fc.Wrap.ForceTripleQuotes,
		SkipComments:      fc.Wrap.SkipComments,
		SkipDocstrings:    fc.Wrap.SkipDocstrings,

		MaxDocLengthSet:      meta.IsDefined("wrap", "max-doc-length"),
		ForceTripleQuotesSet: meta.IsDefined("wrap", "force-triple-quotes"),
		SkipCommentsSet:      meta.IsDefined("wrap", "skip-comments"),
		SkipDocstringsSet:    meta.IsDefined("wrap", "skip-docstrings"),
	}
	if cfg.MaxDocLengthSet && cfg.MaxDocLength <= 0 {
		return Config{}, fmt.Errorf("%s: [wrap].max-doc-length must be positive", path)
	}
	return cfg, nil
}
