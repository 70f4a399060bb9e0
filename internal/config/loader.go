package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kk-code-lab/mdread/internal/logging"
)

// appName names the XDG config directory.
const appName = "mdread"

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// ExplicitPath is a config file path from --config. It must exist.
	ExplicitPath string

	// IgnoreUserConfig skips $XDG_CONFIG_HOME/mdread/config.yaml.
	IgnoreUserConfig bool

	// IgnoreEnv skips MDREAD_* variables.
	IgnoreEnv bool

	// Overrides is applied last, after every other source.
	Overrides func(*Config)
}

// LoadResult contains the resolved configuration and where it came from.
type LoadResult struct {
	Config     *Config
	LoadedFrom []string
}

// Load resolves the configuration.
// Precedence (highest to lowest):
//  1. opts.Overrides (CLI flags)
//  2. Environment variables (MDREAD_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. User config ($XDG_CONFIG_HOME/mdread/config.yaml)
//  5. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)
	cfg := NewConfig()
	result := &LoadResult{Config: cfg}

	if !opts.IgnoreUserConfig {
		if path := UserConfigPath(); path != "" {
			loaded, err := mergeFile(cfg, path, false)
			if err != nil {
				return nil, err
			}
			if loaded {
				result.LoadedFrom = append(result.LoadedFrom, path)
			}
		}
	}

	if opts.ExplicitPath != "" {
		if _, err := mergeFile(cfg, opts.ExplicitPath, true); err != nil {
			return nil, err
		}
		result.LoadedFrom = append(result.LoadedFrom, opts.ExplicitPath)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, err
		}
	}

	if opts.Overrides != nil {
		opts.Overrides(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	for _, path := range result.LoadedFrom {
		logger.Debug("loaded config", logging.FieldConfig, path)
	}
	return result, nil
}

// UserConfigPath returns the per-user config file location.
func UserConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.yaml")
}

// mergeFile decodes path over cfg. A missing file is only an error when
// required is set.
func mergeFile(cfg *Config, path string, required bool) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := ParseYAML(data, cfg); err != nil {
		return false, fmt.Errorf("parse config %s: %w", path, err)
	}
	return true, nil
}

// ParseYAML decodes data over cfg, keeping fields the document omits.
// Unknown keys are rejected.
func ParseYAML(data []byte, cfg *Config) error {
	if len(data) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

// ToYAML renders cfg the way a config file would hold it.
func ToYAML(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
