package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/propabilia/argus/internal/eval"
	"github.com/propabilia/argus/internal/eval/dataset"
	"github.com/propabilia/argus/internal/eval/results"
	"github.com/spf13/cobra"
)

func newEvalCmd(root *rootOptions) *cobra.Command {
	var datasetPath string
	var outputPath string
	var sampleSize int
	var showMisses bool

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Measure classification and extraction accuracy on labelled pages",
		Long: `Run the certificate classifier and detail extractor over labelled OCR text
and compare the answers with the labels.

A dataset is a .yaml, .jsonl or .parquet file of pages with the fields
id, text, coa, sku and description.`,
		Example: `  # Evaluate a labelled set and print the summary
  argus eval --dataset testdata/pages.yaml

  # Evaluate the first 50 pages and keep per-page results
  argus eval --dataset pages.parquet --sample 50 --output evals/run.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(datasetPath); os.IsNotExist(err) {
				return fmt.Errorf("dataset file not found: %s", datasetPath)
			}

			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}

			pages, err := dataset.NewLoader(datasetPath).LoadSample(sampleSize)
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}
			slog.Info("Dataset loaded", "pages", len(pages))

			agg := eval.New(cfg).Run(cmd.Context(), pages)

			out := cmd.OutOrStdout()
			agg.PrintSummary(out)
			if showMisses {
				agg.PrintMisses(out)
			}

			if outputPath == "" {
				return nil
			}
			if outputPath == "auto" {
				outputPath = results.DefaultPath(datasetPath, time.Now())
			}
			return results.SaveToYAML(outputPath, results.EvalConfig{
				DatasetPath:      datasetPath,
				SampleSize:       len(pages),
				WeakThreshold:    cfg.WeakThreshold,
				StrongIndicators: cfg.StrongIndicators,
				WeakIndicators:   cfg.WeakIndicators,
				ForceUppercase:   cfg.ForceUppercase,
			}, agg)
		},
	}

	cmd.Flags().StringVarP(&datasetPath, "dataset", "d", "", "Labelled dataset (.yaml, .jsonl or .parquet)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Save per-page results as YAML (\"auto\" writes to evals/)")
	cmd.Flags().IntVarP(&sampleSize, "sample", "n", 0, "Evaluate at most this many pages (0 for all)")
	cmd.Flags().BoolVar(&showMisses, "misses", false, "List pages that were misclassified or misread")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}
