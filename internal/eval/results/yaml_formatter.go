package results

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/propabilia/argus/internal/eval/metrics"
	"gopkg.in/yaml.v3"
)

// EvalConfig represents the configuration section of the eval YAML
type EvalConfig struct {
	DatasetPath      string   `yaml:"datasetpath"`
	SampleSize       int      `yaml:"samplesize"`
	WeakThreshold    int      `yaml:"weakthreshold"`
	StrongIndicators []string `yaml:"strongindicators"`
	WeakIndicators   []string `yaml:"weakindicators"`
	ForceUppercase   []string `yaml:"forceuppercase"`
	Timestamp        string   `yaml:"timestamp"`
}

// EvalSpec represents the complete evaluation record
type EvalSpec struct {
	Config  EvalConfig                `yaml:"config"`
	Summary *metrics.AggregateResults `yaml:"summary"`
}

// DefaultPath returns evals/<dataset>-<timestamp>.yaml
func DefaultPath(datasetPath string, now time.Time) string {
	base := filepath.Base(datasetPath)
	base = base[:len(base)-len(filepath.Ext(base))]
	return filepath.Join("evals", fmt.Sprintf("%s-%s.yaml", base, now.Format("2006-01-02_15-04-05")))
}

// SaveToYAML writes the evaluation config, summary and per-page results to path
func SaveToYAML(path string, config EvalConfig, agg *metrics.AggregateResults) error {
	if config.Timestamp == "" {
		config.Timestamp = agg.EvaluationDate.Format("2006-01-02_15-04-05")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create evals directory: %w", err)
		}
	}

	data, err := yaml.Marshal(&EvalSpec{Config: config, Summary: agg})
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}

	absPath, _ := filepath.Abs(path)
	slog.Info("Evaluation results saved", "path", absPath)
	return nil
}
