// Package eval scores the classifier and extractor against labelled OCR pages.
package eval

import (
	"context"
	"log/slog"

	"github.com/propabilia/argus/internal/classifier"
	"github.com/propabilia/argus/internal/config"
	"github.com/propabilia/argus/internal/eval/dataset"
	"github.com/propabilia/argus/internal/eval/metrics"
	"github.com/propabilia/argus/internal/extraction"
	"github.com/propabilia/argus/internal/normalize"
)

// Evaluator runs pages through the same classifier and extractor a sort uses
type Evaluator struct {
	classifier *classifier.Classifier
	extractor  *extraction.Extractor
}

// New builds an evaluator from a configuration
func New(cfg *config.Config) *Evaluator {
	return &Evaluator{
		classifier: classifier.New(cfg.StrongIndicators, cfg.WeakIndicators, cfg.WeakThreshold),
		extractor:  extraction.New(normalize.New(cfg.ForceUppercase)),
	}
}

// EvaluatePage compares the pipeline's answer for one page with its labels
func (e *Evaluator) EvaluatePage(page dataset.Page) metrics.EvaluationResult {
	result := metrics.EvaluationResult{
		ID:           page.ID,
		ExpectedCOA:  page.COA,
		PredictedCOA: e.classifier.IsCOA(page.Text),
	}

	var details extraction.Details
	if result.PredictedCOA {
		details, _ = e.extractor.Extract(page.Text)
	}

	if page.COA || result.PredictedCOA {
		result.SKU = metrics.CompareField(page.SKU, details.SKU)
		result.Description = metrics.CompareField(page.Description, details.Description)
	}
	return result
}

// Run evaluates every page, stopping early if ctx is cancelled
func (e *Evaluator) Run(ctx context.Context, pages []dataset.Page) *metrics.AggregateResults {
	results := make([]metrics.EvaluationResult, 0, len(pages))
	for i, page := range pages {
		if ctx.Err() != nil {
			slog.Warn("Evaluation cancelled", "evaluated", i, "total", len(pages))
			break
		}
		r := e.EvaluatePage(page)
		slog.Debug("Evaluated page", "id", page.ID, "expected_coa", r.ExpectedCOA, "predicted_coa", r.PredictedCOA, "sku", r.SKU.Method, "description", r.Description.Method)
		results = append(results, r)
	}
	return metrics.AggregateEvaluationResults(results)
}
