package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"
)

// Loader reads labelled pages from a dataset file
type Loader struct {
	datasetPath string
}

// NewLoader creates a new dataset loader
func NewLoader(datasetPath string) *Loader {
	return &Loader{
		datasetPath: datasetPath,
	}
}

// Load loads pages from a YAML, JSONL or Parquet file
func (l *Loader) Load() ([]Page, error) {
	ext := strings.ToLower(filepath.Ext(l.datasetPath))

	var (
		pages []Page
		err   error
	)
	switch ext {
	case ".parquet":
		pages, err = l.loadParquet()
	case ".jsonl":
		pages, err = l.loadJSONL()
	case ".yaml", ".yml":
		pages, err = l.loadYAML()
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .yaml, .jsonl, .parquet)", ext)
	}
	if err != nil {
		return nil, err
	}

	for i := range pages {
		if pages[i].ID == "" {
			pages[i].ID = fmt.Sprintf("page-%d", i+1)
		}
	}
	return pages, nil
}

// LoadSample loads at most n pages; n <= 0 loads everything
func (l *Loader) LoadSample(n int) ([]Page, error) {
	pages, err := l.Load()
	if err != nil {
		return nil, err
	}
	if n > 0 && len(pages) > n {
		pages = pages[:n]
	}
	return pages, nil
}

func (l *Loader) loadYAML() ([]Page, error) {
	data, err := os.ReadFile(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("-")) || bytes.HasPrefix(trimmed, []byte("[")) {
		var pages []Page
		if err := yaml.Unmarshal(data, &pages); err != nil {
			return nil, fmt.Errorf("failed to parse YAML dataset: %w", err)
		}
		return pages, nil
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML dataset: %w", err)
	}
	slog.Debug("Read YAML dataset", "path", l.datasetPath, "pages", len(doc.Pages))
	return doc.Pages, nil
}

func (l *Loader) loadJSONL() ([]Page, error) {
	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	var pages []Page
	scanner := bufio.NewScanner(file)

	const maxCapacity = 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var page Page
		if err := json.Unmarshal(line, &page); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		pages = append(pages, page)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}

	slog.Debug("Finished reading JSONL file", "total_pages", len(pages), "total_lines", lineNum)
	return pages, nil
}

func (l *Loader) loadParquet() ([]Page, error) {
	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened successfully", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[Page](pf)
	defer reader.Close()

	var pages []Page
	rows := make([]Page, 128)
	for {
		n, err := reader.Read(rows)
		pages = append(pages, rows[:n]...)
		if err != nil {
			break
		}
	}

	return pages, nil
}
