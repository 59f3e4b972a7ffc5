// Package ocr turns a photograph into the confidence-filtered text the
// classifier and extractor work on.
package ocr

import (
	"context"
	"fmt"
	"strings"
)

// DefaultMinConfidence is the confidence a line must exceed to be kept
const DefaultMinConfidence = 0.6

// Line is one recognized line of text with a confidence in [0,1]
type Line struct {
	Text       string  `json:"text" yaml:"text"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// Engine recognizes the text lines of an image file
type Engine interface {
	Name() string
	Recognize(ctx context.Context, path string) ([]Line, error)
}

// JoinLines keeps lines whose confidence exceeds minConfidence and joins them with newlines
func JoinLines(lines []Line, minConfidence float64) string {
	kept := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.Confidence > minConfidence {
			kept = append(kept, l.Text)
		}
	}
	return strings.Join(kept, "\n")
}

// Reader wraps an Engine with the confidence filter
type Reader struct {
	engine        Engine
	minConfidence float64
}

// NewReader returns a Reader. A minConfidence outside [0,1) uses DefaultMinConfidence.
func NewReader(engine Engine, minConfidence float64) *Reader {
	if minConfidence < 0 || minConfidence >= 1 {
		minConfidence = DefaultMinConfidence
	}
	return &Reader{engine: engine, minConfidence: minConfidence}
}

// ReadText returns the filtered text of one image
func (r *Reader) ReadText(ctx context.Context, path string) (string, error) {
	lines, err := r.engine.Recognize(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to recognize %s with %s: %w", path, r.engine.Name(), err)
	}
	return JoinLines(lines, r.minConfidence), nil
}

// EngineName reports which engine the reader uses
func (r *Reader) EngineName() string {
	return r.engine.Name()
}
