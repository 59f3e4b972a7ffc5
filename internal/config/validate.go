package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("output_dir must be set")
	}
	if c.SaveDebugLogs && strings.TrimSpace(c.DebugLogDir) == "" {
		return errors.New("debug_log_dir must be set when save_debug_logs is true")
	}
	if len(c.StrongIndicators) == 0 {
		return errors.New("strong_indicators must not be empty")
	}
	if c.WeakThreshold < 1 {
		return errors.New("weak_threshold must be at least 1")
	}
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		return errors.New("similarity_threshold must be greater than 0 and at most 1")
	}
	return c.validateOCR()
}

func (c *Config) validateOCR() error {
	switch c.OCR.Provider {
	case ProviderTesseract, ProviderOllama, ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("ocr.provider %q is not supported (use tesseract, ollama, openai or gemini)", c.OCR.Provider)
	}
	if c.OCR.MinConfidence < 0 || c.OCR.MinConfidence >= 1 {
		return errors.New("ocr.min_confidence must be at least 0 and below 1")
	}
	if c.OCR.Temperature < 0 || c.OCR.Temperature > 2 {
		return errors.New("ocr.temperature must be between 0 and 2")
	}
	return nil
}
