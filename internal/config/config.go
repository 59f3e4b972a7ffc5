// Package config loads the settings of a sorting run from YAML or TOML files,
// the environment and built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// OCR selects and tunes the text recognition engine
type OCR struct {
	Provider      string   `yaml:"provider" toml:"provider"`
	Model         string   `yaml:"model,omitempty" toml:"model,omitempty"`
	URL           string   `yaml:"url,omitempty" toml:"url,omitempty"`
	MinConfidence float64  `yaml:"min_confidence" toml:"min_confidence"`
	Temperature   float64  `yaml:"temperature" toml:"temperature"`
	Languages     []string `yaml:"languages" toml:"languages"`
}

// Config is the full configuration of a sorting run
type Config struct {
	OutputDir           string   `yaml:"output_dir" toml:"output_dir"`
	DebugLogDir         string   `yaml:"debug_log_dir" toml:"debug_log_dir"`
	AppendOriginalName  bool     `yaml:"append_original_name" toml:"append_original_name"`
	DiscardCOA          bool     `yaml:"discard_coa" toml:"discard_coa"`
	SaveDebugLogs       bool     `yaml:"save_debug_logs" toml:"save_debug_logs"`
	StrongIndicators    []string `yaml:"strong_indicators" toml:"strong_indicators"`
	WeakIndicators      []string `yaml:"weak_indicators" toml:"weak_indicators"`
	WeakThreshold       int      `yaml:"weak_threshold" toml:"weak_threshold"`
	ForceUppercase      []string `yaml:"force_uppercase" toml:"force_uppercase"`
	SimilarityThreshold float64  `yaml:"similarity_threshold" toml:"similarity_threshold"`
	OCR                 OCR      `yaml:"ocr" toml:"ocr"`
}

// Load reads path on top of Default, applies environment overrides and validates.
// An empty or missing path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := decode(path, data, &cfg); err != nil {
				return nil, err
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration in the format matching path's extension
func (c *Config) Save(path string) error {
	data, err := c.Encode(formatOf(path))
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Encode renders the configuration as "yaml" or "toml"
func (c *Config) Encode(format string) ([]byte, error) {
	switch format {
	case "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return nil, fmt.Errorf("failed to encode yaml config: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode yaml config: %w", err)
		}
		return buf.Bytes(), nil
	case "toml":
		data, err := toml.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("failed to encode toml config: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported config format %q (use .yaml, .yml or .toml)", format)
	}
}

// ModelName returns the configured model or the provider's default
func (o OCR) ModelName() string {
	if o.Model != "" {
		return o.Model
	}
	return defaultModels[o.Provider]
}

func decode(path string, data []byte, cfg *Config) error {
	switch formatOf(path) {
	case "yaml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse yaml config: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse toml config: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file %s (use .yaml, .yml or .toml)", path)
	}
	return nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	}
	return ""
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("ARGUS_OUTPUT_DIR")); v != "" {
		c.OutputDir = v
	}
	if v := strings.TrimSpace(os.Getenv("ARGUS_OCR_PROVIDER")); v != "" {
		c.OCR.Provider = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("ARGUS_OCR_MODEL")); v != "" {
		c.OCR.Model = v
	}
}
