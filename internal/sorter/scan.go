package sorter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/propabilia/argus/internal/fileops"
	"github.com/propabilia/argus/internal/models"
)

// Analyze classifies one image's text and, for certificates, extracts its details
func (s *Sorter) Analyze(path, text string) models.ScannedItem {
	item := models.ScannedItem{Path: path, Text: text, Kind: models.KindProp}
	if !s.classifier.IsCOA(text) {
		return item
	}

	item.Kind = models.KindCOA
	if details, ok := s.extractor.Extract(text); ok {
		item.SKU = details.SKU
		item.Desc = details.Description
	}
	return item
}

// Scan reads, classifies and extracts every image without grouping or copying.
// Images whose OCR fails are left out. Cancellation returns the items read so far
// together with the context's error.
func (s *Sorter) Scan(ctx context.Context, files []string) ([]models.ScannedItem, error) {
	p := &progress{reporter: s.reporter}
	items, cancelled := s.scan(ctx, files, p, &Result{})
	if cancelled {
		return items, ctx.Err()
	}
	p.set(1.0)
	return items, nil
}

func (s *Sorter) scan(ctx context.Context, files []string, p *progress, result *Result) ([]models.ScannedItem, bool) {
	sorted := SortFiles(files)
	total := len(sorted)
	items := make([]models.ScannedItem, 0, total)

	for idx, path := range sorted {
		if ctx.Err() != nil {
			return items, true
		}

		p.set(float64(idx) / float64(total) * scanShare)

		name := filepath.Base(path)
		s.reporter.Log(fmt.Sprintf("Reading: %s", name))

		text, err := s.reader.ReadText(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return items, true
			}
			result.Unreadable++
			slog.Warn("Skipping unreadable image", "file", name, "err", err)
			continue
		}

		item := s.Analyze(path, text)
		result.Scanned++
		slog.Debug("Scanned image", "file", name, "kind", item.Kind, "sku", item.SKU, "description", item.Desc)

		if s.opts.SaveDebugLogs && !s.opts.DryRun {
			if err := fileops.SaveTextLog(fileops.DebugLogPath(s.opts.DebugLogDir, item.Stem()), text); err != nil {
				slog.Warn("Failed to save debug log", "file", name, "err", err)
			}
		}

		items = append(items, item)
	}

	return items, false
}
