// Package project locates and loads the optional .rms-check.toml project
// configuration file that check/fix/server consult for a default
// compatibility level and a set of project-wide disabled lints.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"rms-check/internal/compat"
)

// ConfigFileName is the name check/fix/server look for in the working
// directory, or in an ancestor when run from a subdirectory.
const ConfigFileName = ".rms-check.toml"

// Config is the decoded, validated shape of a .rms-check.toml document.
type Config struct {
	Level         compat.Level
	DisabledLints map[string]bool
}

type configFile struct {
	Level         string   `toml:"level"`
	DisabledLints []string `toml:"disabled_lints"`
}

// Default returns the configuration in effect when no .rms-check.toml is
// found: Conquerors compatibility, nothing suppressed.
func Default() Config {
	return Config{Level: compat.Conquerors, DisabledLints: map[string]bool{}}
}

// Load parses path as a .rms-check.toml document.
func Load(path string) (Config, error) {
	var raw configFile
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg := Default()
	if strings.TrimSpace(raw.Level) != "" {
		level, ok := compat.ParseLevel(raw.Level)
		if !ok {
			return Config{}, fmt.Errorf("%s: unknown level %q", path, raw.Level)
		}
		cfg.Level = level
	}
	for _, id := range raw.DisabledLints {
		id = strings.TrimSpace(id)
		if id != "" {
			cfg.DisabledLints[id] = true
		}
	}
	return cfg, nil
}

// FindConfig walks upward from startDir looking for .rms-check.toml,
// returning its path and the directory it lives in.
func FindConfig(startDir string) (path, root string, ok bool, err error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", "", false, err
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, statErr := os.Stat(candidate)
		switch {
		case statErr == nil && !info.IsDir():
			return candidate, dir, true, nil
		case statErr != nil && !errors.Is(statErr, os.ErrNotExist):
			return "", "", false, statErr
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", false, nil
		}
		dir = parent
	}
}

// FindProjectRoot walks upward from startDir for a project marker:
// .rms-check.toml first, falling back to a .git directory so a workspace
// with no explicit config still resolves to a stable analysis root.
func FindProjectRoot(startDir string) (string, bool, error) {
	_, root, ok, err := FindConfig(startDir)
	if err != nil {
		return "", false, err
	}
	if ok {
		return root, true, nil
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, err
	}
	for {
		if info, statErr := os.Stat(filepath.Join(dir, ".git")); statErr == nil && info.IsDir() {
			return dir, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// LoadForDir finds and loads the config nearest startDir, returning
// Default() when none exists.
func LoadForDir(startDir string) (Config, error) {
	path, _, ok, err := FindConfig(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
