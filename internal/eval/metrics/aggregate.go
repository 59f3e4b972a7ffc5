package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

// EvaluationResult represents the outcome for a single labelled page
type EvaluationResult struct {
	ID           string     `yaml:"id"`
	ExpectedCOA  bool       `yaml:"expected_coa"`
	PredictedCOA bool       `yaml:"predicted_coa"`
	SKU          FieldMatch `yaml:"sku"`
	Description  FieldMatch `yaml:"description"`
}

// AggregateResults represents aggregated evaluation metrics
type AggregateResults struct {
	TotalRecords int `yaml:"total_records"`

	// Classification confusion matrix
	TruePositives  int `yaml:"true_positives"`
	FalsePositives int `yaml:"false_positives"`
	TrueNegatives  int `yaml:"true_negatives"`
	FalseNegatives int `yaml:"false_negatives"`

	Accuracy  float64 `yaml:"accuracy"`
	Precision float64 `yaml:"precision"`
	Recall    float64 `yaml:"recall"`

	// Extraction, over pages labelled as certificates
	Certificates              int     `yaml:"certificates"`
	SKUExactRate              float64 `yaml:"sku_exact_rate"`
	DescriptionExactRate      float64 `yaml:"description_exact_rate"`
	MeanDescriptionScore      float64 `yaml:"mean_description_score"`
	MeanDescriptionSimilarity float64 `yaml:"mean_description_similarity"`
	MeanSKUSimilarity         float64 `yaml:"mean_sku_similarity"`

	Results        []EvaluationResult `yaml:"results"`
	EvaluationDate time.Time          `yaml:"evaluation_date"`
}

// AggregateEvaluationResults aggregates per-page results
func AggregateEvaluationResults(results []EvaluationResult) *AggregateResults {
	agg := &AggregateResults{
		TotalRecords:   len(results),
		Results:        results,
		EvaluationDate: time.Now(),
	}

	var skuExact, descExact int
	var descScores, descSims, skuSims []float64

	for _, r := range results {
		switch {
		case r.ExpectedCOA && r.PredictedCOA:
			agg.TruePositives++
		case !r.ExpectedCOA && r.PredictedCOA:
			agg.FalsePositives++
		case !r.ExpectedCOA && !r.PredictedCOA:
			agg.TrueNegatives++
		default:
			agg.FalseNegatives++
		}

		if !r.ExpectedCOA {
			continue
		}
		agg.Certificates++
		if r.SKU.Exact() {
			skuExact++
		}
		if r.Description.Exact() {
			descExact++
		}
		descScores = append(descScores, r.Description.Score)
		descSims = append(descSims, r.Description.Similarity)
		skuSims = append(skuSims, r.SKU.Similarity)
	}

	agg.Accuracy = ratio(agg.TruePositives+agg.TrueNegatives, agg.TotalRecords)
	agg.Precision = ratio(agg.TruePositives, agg.TruePositives+agg.FalsePositives)
	agg.Recall = ratio(agg.TruePositives, agg.TruePositives+agg.FalseNegatives)

	agg.SKUExactRate = ratio(skuExact, agg.Certificates)
	agg.DescriptionExactRate = ratio(descExact, agg.Certificates)
	agg.MeanDescriptionScore = calculateAverage(descScores)
	agg.MeanDescriptionSimilarity = calculateAverage(descSims)
	agg.MeanSKUSimilarity = calculateAverage(skuSims)

	return agg
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0.0
	}
	return float64(n) / float64(d)
}

// calculateAverage calculates the average of a slice of scores
func calculateAverage(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, score := range scores {
		sum += score
	}

	return sum / float64(len(scores))
}

// PrintSummary renders the headline metrics as a table
func (a *AggregateResults) PrintSummary(w io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("ARGUS EVALUATION SUMMARY")
	tw.AppendHeader(table.Row{"Metric", "Value"})
	tw.AppendRows([]table.Row{
		{"Pages", a.TotalRecords},
		{"Certificates", a.Certificates},
		{"TP / FP / TN / FN", fmt.Sprintf("%d / %d / %d / %d", a.TruePositives, a.FalsePositives, a.TrueNegatives, a.FalseNegatives)},
		{"Accuracy", percent(a.Accuracy)},
		{"Precision", percent(a.Precision)},
		{"Recall", percent(a.Recall)},
	})
	tw.AppendSeparator()
	tw.AppendRows([]table.Row{
		{"SKU exact", percent(a.SKUExactRate)},
		{"SKU similarity", fmt.Sprintf("%.3f", a.MeanSKUSimilarity)},
		{"Description exact", percent(a.DescriptionExactRate)},
		{"Description score", fmt.Sprintf("%.3f", a.MeanDescriptionScore)},
		{"Description similarity", fmt.Sprintf("%.3f", a.MeanDescriptionSimilarity)},
	})
	tw.Render()
}

// PrintMisses lists the pages where classification or extraction went wrong
func (a *AggregateResults) PrintMisses(w io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Expected", "Predicted", "SKU", "Description"})

	misses := 0
	for _, r := range a.Results {
		wrongKind := r.ExpectedCOA != r.PredictedCOA
		wrongFields := r.ExpectedCOA && (!r.SKU.Exact() || !r.Description.Exact())
		if !wrongKind && !wrongFields {
			continue
		}
		misses++
		tw.AppendRow(table.Row{r.ID, kindLabel(r.ExpectedCOA), kindLabel(r.PredictedCOA), r.SKU.Actual, r.Description.Actual})
	}

	if misses == 0 {
		fmt.Fprintln(w, "No misses.")
		return
	}
	tw.Render()
}

func kindLabel(coa bool) string {
	if coa {
		return "COA"
	}
	return "PROP"
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
