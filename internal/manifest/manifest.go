// Package manifest records what a run did with every image, as a YAML
// document or a Parquet table.
package manifest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/propabilia/argus/internal/models"
	"gopkg.in/yaml.v3"
)

// StatusScanned marks rows written by a scan that planned no copies
const StatusScanned = "scanned"

// Row is one image of a run
type Row struct {
	RunID       string `yaml:"-" parquet:"run_id"`
	Group       int    `yaml:"group" parquet:"group"`
	Source      string `yaml:"source" parquet:"source"`
	Destination string `yaml:"destination,omitempty" parquet:"destination"`
	Kind        string `yaml:"kind" parquet:"kind"`
	SKU         string `yaml:"sku,omitempty" parquet:"sku"`
	Description string `yaml:"description,omitempty" parquet:"description"`
	Status      string `yaml:"status" parquet:"status"`
}

// Manifest is the record of one run
type Manifest struct {
	RunID     string    `yaml:"run_id"`
	CreatedAt time.Time `yaml:"created_at"`
	OutputDir string    `yaml:"output_dir,omitempty"`
	Rows      []Row     `yaml:"rows"`
}

// FromInstructions builds a manifest from the copy instructions of a sorting run
func FromInstructions(runID, outputDir string, instructions []models.CopyInstruction) *Manifest {
	m := &Manifest{RunID: runID, CreatedAt: time.Now().UTC(), OutputDir: outputDir}
	for _, inst := range instructions {
		m.Rows = append(m.Rows, Row{
			RunID:       runID,
			Group:       inst.Group,
			Source:      inst.Source,
			Destination: inst.Destination,
			Kind:        string(inst.Kind),
			SKU:         inst.SKU,
			Description: inst.Description,
			Status:      string(inst.Status),
		})
	}
	return m
}

// FromScan builds a manifest from scanned items; group is the scan position
func FromScan(runID string, items []models.ScannedItem) *Manifest {
	m := &Manifest{RunID: runID, CreatedAt: time.Now().UTC()}
	for i, item := range items {
		m.Rows = append(m.Rows, Row{
			RunID:       runID,
			Group:       i,
			Source:      item.Path,
			Kind:        string(item.Kind),
			SKU:         item.SKU,
			Description: item.Desc,
			Status:      StatusScanned,
		})
	}
	return m
}

// Write saves the manifest as YAML (.yaml, .yml) or Parquet (.parquet)
func (m *Manifest) Write(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create manifest directory: %w", err)
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return m.writeYAML(path)
	case ".parquet":
		return m.writeParquet(path)
	default:
		return fmt.Errorf("unsupported manifest format %s (use .yaml, .yml or .parquet)", path)
	}
}

func (m *Manifest) writeYAML(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(m); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to close manifest encoder: %w", err)
	}

	slog.Info("Wrote manifest", "path", path, "rows", len(m.Rows))
	return file.Close()
}

func (m *Manifest) writeParquet(path string) error {
	rows := make([]Row, len(m.Rows))
	for i, r := range m.Rows {
		r.RunID = m.RunID
		rows[i] = r
	}

	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("failed to write parquet manifest: %w", err)
	}

	slog.Info("Wrote manifest", "path", path, "rows", len(rows))
	return nil
}

// Read loads a manifest written by Write
func Read(path string) (*Manifest, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest: %w", err)
		}
		var m Manifest
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse manifest: %w", err)
		}
		for i := range m.Rows {
			m.Rows[i].RunID = m.RunID
		}
		return &m, nil
	case ".parquet":
		return readParquet(path)
	default:
		return nil, fmt.Errorf("unsupported manifest format %s", path)
	}
}

func readParquet(path string) (*Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet manifest: %w", err)
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

	reader := parquet.NewGenericReader[Row](pf)
	defer reader.Close()

	m := &Manifest{CreatedAt: info.ModTime().UTC()}
	batch := make([]Row, 128)
	for {
		n, err := reader.Read(batch)
		m.Rows = append(m.Rows, batch[:n]...)
		if err != nil {
			break
		}
	}

	if len(m.Rows) > 0 {
		m.RunID = m.Rows[0].RunID
	}
	return m, nil
}
