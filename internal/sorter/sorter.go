// Package sorter runs the whole batch: it reads every photograph, groups the
// results into lots, reconciles descriptions across the batch and copies each
// lot into its show folder under a derived name.
package sorter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/propabilia/argus/internal/classifier"
	"github.com/propabilia/argus/internal/config"
	"github.com/propabilia/argus/internal/consensus"
	"github.com/propabilia/argus/internal/extraction"
	"github.com/propabilia/argus/internal/fileops"
	"github.com/propabilia/argus/internal/grouping"
	"github.com/propabilia/argus/internal/models"
	"github.com/propabilia/argus/internal/naming"
	"github.com/propabilia/argus/internal/normalize"
)

const (
	scanShare      = 0.8
	consensusShare = 0.9
)

// TextReader returns the confidence-filtered OCR text of one image
type TextReader interface {
	ReadText(ctx context.Context, path string) (string, error)
}

// Options are the per-run settings of the sorter
type Options struct {
	OutputDir           string
	DebugLogDir         string
	SaveDebugLogs       bool
	DryRun              bool
	Naming              naming.Options
	SimilarityThreshold float64
}

// OptionsFromConfig picks the sorter settings out of a loaded configuration
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		OutputDir:     cfg.OutputDir,
		DebugLogDir:   cfg.DebugLogDir,
		SaveDebugLogs: cfg.SaveDebugLogs,
		Naming: naming.Options{
			AppendOriginalName: cfg.AppendOriginalName,
			DiscardCOA:         cfg.DiscardCOA,
		},
		SimilarityThreshold: cfg.SimilarityThreshold,
	}
}

// Result summarizes one run
type Result struct {
	RunID        string
	OutputDir    string
	Selected     int
	Scanned      int
	Unreadable   int
	Groups       int
	Orphans      int
	Processed    int
	Failed       int
	Corrections  models.CorrectionMap
	Instructions []models.CopyInstruction
	Cancelled    bool
}

// Sorter owns the pipeline collaborators for runs sharing one configuration
type Sorter struct {
	reader     TextReader
	classifier *classifier.Classifier
	extractor  *extraction.Extractor
	corrector  *consensus.Corrector
	opts       Options
	reporter   Reporter
	copyFile   func(src, dst string) error
}

// New creates a sorter from a configuration. A nil reporter discards events.
func New(cfg *config.Config, reader TextReader, opts Options, reporter Reporter) *Sorter {
	if reporter == nil {
		reporter = noopReporter{}
	}
	return &Sorter{
		reader:     reader,
		classifier: classifier.New(cfg.StrongIndicators, cfg.WeakIndicators, cfg.WeakThreshold),
		extractor:  extraction.New(normalize.New(cfg.ForceUppercase)),
		corrector:  consensus.New(opts.SimilarityThreshold),
		opts:       opts,
		reporter:   reporter,
		copyFile:   fileops.CopyFile,
	}
}

// Run sorts files into the output directory.
// Cancellation stops before the next image or group and is reported through
// Result.Cancelled, not as an error. Only failures to prepare the output root
// are returned as errors.
func (s *Sorter) Run(ctx context.Context, files []string) (*Result, error) {
	result := &Result{
		RunID:     uuid.NewString(),
		OutputDir: s.opts.OutputDir,
		Selected:  len(files),
	}
	p := &progress{reporter: s.reporter}

	if !s.opts.DryRun {
		lock, err := fileops.LockOutput(s.opts.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare output directory: %w", err)
		}
		defer func() {
			if err := lock.Release(); err != nil {
				slog.Warn("Failed to release output lock", "dir", s.opts.OutputDir, "err", err)
			}
		}()
	}

	s.reporter.Log("--- Starting Argus ---")
	s.reporter.Log(fmt.Sprintf("Selected %d images.", len(files)))

	s.prepareDebugLogs()

	items, cancelled := s.scan(ctx, files, p, result)
	if cancelled {
		s.reporter.Log("OPERATION CANCELLED.")
		result.Cancelled = true
		return result, nil
	}

	groups := grouping.Group(items)
	result.Groups = len(groups)

	if ctx.Err() != nil {
		s.reporter.Log("OPERATION CANCELLED.")
		result.Cancelled = true
		return result, nil
	}

	s.reporter.Log("Analyzing group consensus...")
	groups, result.Corrections = s.corrector.Normalize(groups)
	for _, from := range sortedKeys(result.Corrections) {
		s.reporter.Log(fmt.Sprintf("   Auto-Correcting: '%s' -> '%s'", from, result.Corrections[from]))
	}

	s.reporter.Log(fmt.Sprintf("Processing %d identified groups...", len(groups)))
	p.set(consensusShare)

	namer := naming.NewNamer(s.opts.OutputDir, s.opts.Naming, nil)
	for i, g := range groups {
		if ctx.Err() != nil {
			s.reporter.Log("CANCELLED.")
			result.Cancelled = true
			return result, nil
		}

		if !g.Valid() {
			result.Orphans++
			s.reporter.Log("Skipping orphan group (No COA found)")
			slog.Warn("Skipping orphan group", "group", i, "first", filepath.Base(g[0].Path), "size", len(g))
			continue
		}

		plan := namer.Plan(i, g)
		s.reporter.Log(fmt.Sprintf("Group: %s -> /%s", plan.BaseName, plan.Folder))
		s.execute(plan, result)
	}

	p.set(1.0)
	s.reporter.Log("================================")
	s.reporter.Log(fmt.Sprintf("DONE! Processed %d files.", result.Processed))
	s.reporter.Log(fmt.Sprintf("Output: %s", s.opts.OutputDir))
	s.reporter.Log("================================")

	return result, nil
}

// execute copies one planned group, recording each instruction's outcome
func (s *Sorter) execute(plan naming.GroupPlan, result *Result) {
	for _, inst := range plan.Instructions {
		switch {
		case inst.Status == models.StatusDiscarded:
			result.Processed++
		case s.opts.DryRun:
			result.Processed++
		default:
			if err := s.copyFile(inst.Source, inst.Destination); err != nil {
				inst.Status = models.StatusFailed
				result.Failed++
				s.reporter.Log(fmt.Sprintf("Failed to copy %s", filepath.Base(inst.Source)))
				slog.Error("Failed to copy file", "src", inst.Source, "dst", inst.Destination, "err", err)
				inst.Destination = ""
			} else {
				inst.Status = models.StatusCopied
				result.Processed++
			}
		}
		result.Instructions = append(result.Instructions, inst)
	}
}

func (s *Sorter) prepareDebugLogs() {
	if !s.opts.SaveDebugLogs || s.opts.DryRun {
		return
	}
	if err := os.MkdirAll(s.opts.DebugLogDir, 0o755); err != nil {
		slog.Warn("Failed to create debug log directory", "dir", s.opts.DebugLogDir, "err", err)
		return
	}
	if err := fileops.CleanDirectory(s.opts.DebugLogDir); err != nil {
		slog.Warn("Failed to clean debug log directory", "dir", s.opts.DebugLogDir, "err", err)
	}
}

// SortFiles orders paths case-insensitively by file name
func SortFiles(files []string) []string {
	sorted := append([]string(nil), files...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(filepath.Base(sorted[i])) < strings.ToLower(filepath.Base(sorted[j]))
	})
	return sorted
}

func sortedKeys(m models.CorrectionMap) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
