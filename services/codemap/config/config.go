// Package config loads the optional project-level codemap.config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "codemap.config.yaml"

// Config holds user-provided overrides for how a project is scanned.
//
// A missing config file is not an error — zero-config works out of the
// box, exactly as it does with no config present.
type Config struct {
	// ExcludePatterns are additional glob patterns to exclude, unioned
	// with the traverser's hard-coded defaults and any caller-supplied
	// excludes.
	ExcludePatterns []string `yaml:"excludePatterns"`
	// Languages restricts the scan to these language tags. Empty means
	// all supported languages are considered.
	Languages []string `yaml:"languages"`
}

// Load reads codemap.config.yaml from projectRoot. If the file does not
// exist, it returns a zero Config and no error. It returns an error
// only if the file exists but cannot be parsed.
func Load(projectRoot string) (Config, error) {
	if projectRoot == "" {
		return Config{}, nil
	}

	path := filepath.Join(projectRoot, fileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading %s: %w", fileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}
	return cfg, nil
}
