package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/propabilia/argus/internal/providers"
)

const visionPrompt = `You are performing OCR (Optical Character Recognition) on a photograph.
The photograph is either a Certificate of Authenticity for a film or television prop, or the prop itself.

Extract ALL visible text exactly as it appears, preserving:
- Line breaks
- Capitalization
- Punctuation
- Item codes such as ABC1234, digit for digit

Do not add interpretation, commentary or explanations.
If the image contains no text, reply with nothing.

Provide ONLY the extracted text.`

// VisionEngine reads images through a multimodal LLM provider.
// Providers return no confidences, so every line is reported at 1.0.
type VisionEngine struct {
	name        string
	provider    providers.Provider
	model       string
	temperature float64
}

// NewVisionEngine creates an engine for the named provider and model.
// Transcription wants a temperature of 0.
func NewVisionEngine(name string, provider providers.Provider, model string, temperature float64) *VisionEngine {
	return &VisionEngine{name: name, provider: provider, model: model, temperature: temperature}
}

// Name returns the provider name
func (v *VisionEngine) Name() string {
	return v.name
}

// Recognize sends the image to the provider and splits the reply into lines
func (v *VisionEngine) Recognize(ctx context.Context, path string) ([]Line, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image for OCR: %w", err)
	}

	image, err := providers.NewImage(filepath.Base(path), data)
	if err != nil {
		return nil, err
	}

	text, err := v.provider.ExtractText(ctx, providers.Config{
		Model:       v.model,
		Temperature: v.temperature,
		Prompt:      visionPrompt,
		Image:       image,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	slog.Debug("Extracted OCR text", "provider", v.name, "model", v.model, "file", filepath.Base(path), "length", len(text))
	return SplitLines(text), nil
}

// SplitLines turns free text into trimmed, non-empty lines at full confidence
func SplitLines(text string) []Line {
	var lines []Line
	for _, raw := range strings.Split(text, "\n") {
		if l := strings.TrimSpace(raw); l != "" {
			lines = append(lines, Line{Text: l, Confidence: 1.0})
		}
	}
	return lines
}
