package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ARGUS_OUTPUT_DIR", "ARGUS_OCR_PROVIDER", "ARGUS_OCR_MODEL"} {
		t.Setenv(key, "")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.WeakThreshold != 3 {
		t.Errorf("Expected weak threshold 3, got %d", cfg.WeakThreshold)
	}
	if cfg.SimilarityThreshold != 0.80 {
		t.Errorf("Expected similarity 0.80, got %v", cfg.SimilarityThreshold)
	}
	if len(cfg.StrongIndicators) != 4 {
		t.Errorf("Expected 4 strong indicators, got %d", len(cfg.StrongIndicators))
	}
	if cfg.OCR.Provider != ProviderTesseract {
		t.Errorf("Expected tesseract, got %s", cfg.OCR.Provider)
	}
}

func TestLoadYAMLKeepsUnsetDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "argus.yml")
	content := "output_dir: /tmp/sorted\ndiscard_coa: true\nocr:\n  provider: ollama\n  model: llava\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.OutputDir != "/tmp/sorted" || !cfg.DiscardCOA {
		t.Errorf("Expected file values, got %+v", cfg)
	}
	if cfg.OCR.Provider != ProviderOllama || cfg.OCR.ModelName() != "llava" {
		t.Errorf("Expected ollama/llava, got %s/%s", cfg.OCR.Provider, cfg.OCR.ModelName())
	}
	if cfg.OCR.MinConfidence != 0.6 {
		t.Errorf("Expected default min confidence, got %v", cfg.OCR.MinConfidence)
	}
	if !cfg.SaveDebugLogs {
		t.Error("Expected save_debug_logs default to survive")
	}
}

func TestLoadTOML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "argus.toml")
	content := "weak_threshold = 2\nforce_uppercase = [\"NASA\", \"SHIELD\"]\n\n[ocr]\nprovider = \"gemini\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.WeakThreshold != 2 {
		t.Errorf("Expected weak threshold 2, got %d", cfg.WeakThreshold)
	}
	if len(cfg.ForceUppercase) != 2 || cfg.ForceUppercase[1] != "SHIELD" {
		t.Errorf("Expected custom force-uppercase list, got %v", cfg.ForceUppercase)
	}
	if cfg.OCR.ModelName() != "gemini-1.5-flash" {
		t.Errorf("Expected default gemini model, got %s", cfg.OCR.ModelName())
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("ARGUS_OUTPUT_DIR", "/env/out")
	t.Setenv("ARGUS_OCR_PROVIDER", "OpenAI")

	path := filepath.Join(t.TempDir(), "argus.yaml")
	if err := os.WriteFile(path, []byte("output_dir: /file/out\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.OutputDir != "/env/out" {
		t.Errorf("Expected env output dir, got %s", cfg.OutputDir)
	}
	if cfg.OCR.Provider != ProviderOpenAI {
		t.Errorf("Expected openai, got %s", cfg.OCR.Provider)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "argus.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for unsupported extension")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)

	for _, name := range []string{"argus.yaml", "argus.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "conf", name)
			cfg := Default()
			cfg.AppendOriginalName = true
			cfg.WeakIndicators = []string{"PROPABILIA"}

			if err := cfg.Save(path); err != nil {
				t.Fatalf("Unexpected save error: %v", err)
			}

			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Unexpected load error: %v", err)
			}
			if !loaded.AppendOriginalName {
				t.Error("Expected append_original_name to survive")
			}
			if len(loaded.WeakIndicators) != 1 {
				t.Errorf("Expected 1 weak indicator, got %v", loaded.WeakIndicators)
			}
		})
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty strong list", func(c *Config) { c.StrongIndicators = nil }},
		{"weak threshold zero", func(c *Config) { c.WeakThreshold = 0 }},
		{"similarity zero", func(c *Config) { c.SimilarityThreshold = 0 }},
		{"similarity above one", func(c *Config) { c.SimilarityThreshold = 1.5 }},
		{"unknown provider", func(c *Config) { c.OCR.Provider = "easyocr" }},
		{"confidence one", func(c *Config) { c.OCR.MinConfidence = 1 }},
		{"negative temperature", func(c *Config) { c.OCR.Temperature = -0.1 }},
		{"temperature above two", func(c *Config) { c.OCR.Temperature = 2.5 }},
		{"no output dir", func(c *Config) { c.OutputDir = " " }},
		{"no debug dir", func(c *Config) { c.DebugLogDir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}

	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}
