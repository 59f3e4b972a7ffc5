package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/propabilia/argus/internal/config"
	"github.com/propabilia/argus/internal/gemini"
	"github.com/propabilia/argus/internal/ocr"
	"github.com/propabilia/argus/internal/ocr/tesseract"
	"github.com/propabilia/argus/internal/ollama"
	"github.com/propabilia/argus/internal/openai"
)

func loadConfig(opts *rootOptions) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		if _, err := os.Stat(config.DefaultPath); err == nil {
			path = config.DefaultPath
		}
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newEngine(cfg *config.Config) (ocr.Engine, error) {
	model := cfg.OCR.ModelName()
	switch cfg.OCR.Provider {
	case config.ProviderTesseract:
		return tesseract.New(cfg.OCR.Languages...), nil
	case config.ProviderOllama:
		return ocr.NewVisionEngine(config.ProviderOllama, ollama.New(cfg.OCR.URL), model, cfg.OCR.Temperature), nil
	case config.ProviderOpenAI:
		return ocr.NewVisionEngine(config.ProviderOpenAI, openai.New(cfg.OCR.URL), model, cfg.OCR.Temperature), nil
	case config.ProviderGemini:
		return ocr.NewVisionEngine(config.ProviderGemini, gemini.New(), model, cfg.OCR.Temperature), nil
	default:
		return nil, fmt.Errorf("unsupported OCR provider: %s", cfg.OCR.Provider)
	}
}

func newReader(cfg *config.Config) (*ocr.Reader, error) {
	engine, err := newEngine(cfg)
	if err != nil {
		return nil, err
	}
	return ocr.NewReader(engine, cfg.OCR.MinConfidence), nil
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
