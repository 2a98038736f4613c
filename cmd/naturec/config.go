package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/naturelang/naturec/pkg/optimize"
)

// buildConfig is the subset of naturec.yaml that affects how a single
// file is compiled; a project can pin an optimization level and the
// strict/lax error policy without repeating flags on every invocation.
type buildConfig struct {
	OptLevel int  `yaml:"opt_level"`
	Lax      bool `yaml:"lax"`
}

// compileConfig is the resolved configuration for one compileFile call,
// after flags have been layered over naturec.yaml's defaults.
type compileConfig struct {
	optLevel optimize.Level
	lax      bool
}

// resolveConfig loads naturec.yaml if present, then applies any flags the
// user passed explicitly on top. A missing config file is not an error;
// an unreadable or malformed one is.
func resolveConfig(path string, optLevelFlag int, laxFlag bool) (compileConfig, error) {
	cfg := buildConfig{OptLevel: 1}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return compileConfig{}, fmt.Errorf("naturec: parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return compileConfig{}, fmt.Errorf("naturec: reading %s: %w", path, err)
	}

	if optLevelFlag >= 0 {
		cfg.OptLevel = optLevelFlag
	}
	if laxFlag {
		cfg.Lax = true
	}

	if cfg.OptLevel < 0 || cfg.OptLevel > 2 {
		return compileConfig{}, fmt.Errorf("naturec: opt-level must be 0, 1, or 2, got %d", cfg.OptLevel)
	}

	return compileConfig{optLevel: optimize.Level(cfg.OptLevel), lax: cfg.Lax}, nil
}
