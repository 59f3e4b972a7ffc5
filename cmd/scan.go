package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/propabilia/argus/internal/fileops"
	"github.com/propabilia/argus/internal/manifest"
	"github.com/propabilia/argus/internal/sorter"
	"github.com/spf13/cobra"
)

func newScanCmd(root *rootOptions) *cobra.Command {
	var manifestPath string
	var recursive bool

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Read and classify images without copying anything",
		Long: `Run OCR, certificate classification and detail extraction on every image
and print what was found. Useful for checking a batch before sorting it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}

			files, err := fileops.ListImages(args, recursive, cfg.OutputDir)
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
			opts.SaveDebugLogs = false

			reporter, finish := newReporter()
			items, scanErr := sorter.New(cfg, reader, opts, reporter).Scan(cmd.Context(), files)
			finish()

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"File", "Kind", "SKU", "Description"})
			for _, item := range items {
				tw.AppendRow(table.Row{item.Stem(), item.Kind, item.SKU, item.Desc})
			}
			tw.Render()

			if manifestPath != "" {
				if err := manifest.FromScan(uuid.NewString(), items).Write(manifestPath); err != nil {
					return err
				}
			}
			return scanErr
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Write the scan results (.yaml or .parquet)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Descend into subdirectories")

	return cmd
}
