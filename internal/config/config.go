// Package config loads the optional per-tree settings file.
//
// A file named .includefix.yaml at the scan root may replace the built-in
// defaults for the recognized source extensions and the directories excluded
// from both tree walks. A missing file is not an error; a malformed one is,
// and stops the run before any scanning happens.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file looked up at the scan root.
const FileName = ".includefix.yaml"

// Config holds the tree-scan settings.
type Config struct {
	// Extensions is the list of recognized source/header suffixes.
	Extensions []string `yaml:"extensions"`
	// ExcludeDirs lists directory names skipped during both walks.
	ExcludeDirs []string `yaml:"exclude_dirs"`
}

// Default returns the built-in settings: the four C/C++ suffixes and the
// .git directory excluded.
func Default() *Config {
	return &Config{
		Extensions:  []string{".h", ".hpp", ".c", ".cpp"},
		ExcludeDirs: []string{".git"},
	}
}

// Load reads the settings file from root, returning defaults when the file
// does not exist. A present-but-unparsable file is an error. Fields omitted
// from the file keep their defaults.
func Load(root string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	if len(fileCfg.Extensions) > 0 {
		cfg.Extensions = fileCfg.Extensions
	}
	if len(fileCfg.ExcludeDirs) > 0 {
		cfg.ExcludeDirs = fileCfg.ExcludeDirs
	}
	return cfg, nil
}
