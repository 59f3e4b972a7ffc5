package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "argus",
		Short: "Sort prop photographs by their Certificates of Authenticity",
		Long: `Argus reads a batch of photographs of film and television props and their
Certificates of Authenticity, groups every prop with its certificate and copies
each lot into a show folder under a name built from the certificate's item code
and description.

OCR runs locally with Tesseract by default, or through an Ollama, OpenAI or
Gemini vision model.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (.yaml, .yml or .toml); defaults to ./argus.yaml when present")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newSortCmd(opts))
	cmd.AddCommand(newScanCmd(opts))
	cmd.AddCommand(newEvalCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))

	return cmd
}
