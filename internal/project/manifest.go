// Package project reads the optional sledge.toml manifest that
// supplies run defaults.
package project

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file looked up next to problem files.
const ManifestName = "sledge.toml"

// ErrBadManifest wraps manifest validation failures.
var ErrBadManifest = errors.New("bad manifest")

// Manifest holds run defaults. Zero values mean "not set"; callers
// fall back to their own defaults.
type Manifest struct {
	MaxDiagnostics int
	Jobs           int
	Atoms          []string
}

type manifestFile struct {
	Run struct {
		MaxDiagnostics int `toml:"max_diagnostics"`
		Jobs           int `toml:"jobs"`
	} `toml:"run"`
	Atoms struct {
		Types []string `toml:"types"`
	} `toml:"atoms"`
}

// Load parses a sledge.toml manifest.
func Load(path string) (Manifest, error) {
	var cfg manifestFile
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if cfg.Run.MaxDiagnostics < 0 {
		return Manifest{}, fmt.Errorf("%w: %s: max_diagnostics must be non-negative", ErrBadManifest, path)
	}
	if cfg.Run.Jobs < 0 {
		return Manifest{}, fmt.Errorf("%w: %s: jobs must be non-negative", ErrBadManifest, path)
	}
	return Manifest{
		MaxDiagnostics: cfg.Run.MaxDiagnostics,
		Jobs:           cfg.Run.Jobs,
		Atoms:          cfg.Atoms.Types,
	}, nil
}

// LoadIfPresent loads path when it exists and returns a zero manifest
// otherwise.
func LoadIfPresent(path string) (Manifest, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Manifest{}, nil
		}
		return Manifest{}, err
	}
	return Load(path)
}
