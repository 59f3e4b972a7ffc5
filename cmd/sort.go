package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/propabilia/argus/internal/fileops"
	"github.com/propabilia/argus/internal/manifest"
	"github.com/propabilia/argus/internal/sorter"
	"github.com/spf13/cobra"
)

type sortFlags struct {
	output         string
	discardCOA     bool
	appendOriginal bool
	noDebugLogs    bool
	manifest       string
	dryRun         bool
	recursive      bool
}

func newSortCmd(root *rootOptions) *cobra.Command {
	flags := &sortFlags{}

	cmd := &cobra.Command{
		Use:   "sort [paths...]",
		Short: "Group and rename a batch of prop photographs",
		Long: `Read every image, classify certificates, group each prop with the
certificate that follows it, reconcile OCR typos across the batch and copy every
lot into <output>/<show folder>/<SKU>-<Description>-<n>.<ext>.

Originals are never modified.`,
		Example: `  # Sort a folder of photographs into ./Output
  argus sort ~/Pictures/haul

  # Preview the names without copying anything
  argus sort ~/Pictures/haul --dry-run --manifest plan.yaml

  # Use a vision model instead of Tesseract
  ARGUS_OCR_PROVIDER=ollama argus sort ~/Pictures/haul`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("output") {
				cfg.OutputDir = flags.output
			}
			if cmd.Flags().Changed("discard-coa") {
				cfg.DiscardCOA = flags.discardCOA
			}
			if cmd.Flags().Changed("append-original") {
				cfg.AppendOriginalName = flags.appendOriginal
			}
			if flags.noDebugLogs {
				cfg.SaveDebugLogs = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			files, err := fileops.ListImages(args, flags.recursive, cfg.OutputDir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no images found in %v", args)
			}

			reader, err := newReader(cfg)
			if err != nil {
				return err
			}

			opts := sorter.OptionsFromConfig(cfg)
			opts.DryRun = flags.dryRun

			reporter, finish := newReporter()
			s := sorter.New(cfg, reader, opts, reporter)

			slog.Debug("Sorting", "images", len(files), "ocr", reader.EngineName(), "output", cfg.OutputDir)
			result, err := s.Run(cmd.Context(), files)
			finish()
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), result, flags.dryRun)

			if flags.manifest != "" {
				m := manifest.FromInstructions(result.RunID, result.OutputDir, result.Instructions)
				if err := m.Write(flags.manifest); err != nil {
					return err
				}
			}

			if result.Cancelled {
				return fmt.Errorf("run cancelled")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output directory (overrides config)")
	cmd.Flags().BoolVar(&flags.discardCOA, "discard-coa", false, "Do not copy certificate images")
	cmd.Flags().BoolVar(&flags.appendOriginal, "append-original", false, "Append the original file name to each new name")
	cmd.Flags().BoolVar(&flags.noDebugLogs, "no-debug-logs", false, "Do not save per-image OCR text")
	cmd.Flags().StringVarP(&flags.manifest, "manifest", "m", "", "Write a manifest of every copy (.yaml or .parquet)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Plan names without copying")
	cmd.Flags().BoolVarP(&flags.recursive, "recursive", "r", false, "Descend into subdirectories")

	return cmd
}

func printSummary(w io.Writer, result *sorter.Result, dryRun bool) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	title := "Sort summary"
	if dryRun {
		title = "Sort plan (dry run)"
	}
	tw.SetTitle(title)
	tw.AppendRows([]table.Row{
		{"Run", result.RunID},
		{"Images", result.Selected},
		{"Read", result.Scanned},
		{"Unreadable", result.Unreadable},
		{"Groups", result.Groups},
		{"Orphan groups", result.Orphans},
		{"Corrections", len(result.Corrections)},
		{"Processed", result.Processed},
		{"Failed", result.Failed},
		{"Output", result.OutputDir},
	})
	if result.Cancelled {
		tw.AppendFooter(table.Row{"Status", "cancelled"})
	}
	tw.Render()

	if !dryRun {
		return
	}

	plan := table.NewWriter()
	plan.SetOutputMirror(w)
	plan.SetStyle(table.StyleRounded)
	plan.AppendHeader(table.Row{"Group", "Source", "Destination", "Status"})
	for _, inst := range result.Instructions {
		plan.AppendRow(table.Row{inst.Group, inst.Source, inst.Destination, inst.Status})
	}
	plan.Render()
}
