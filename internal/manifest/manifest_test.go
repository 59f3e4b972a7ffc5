package manifest

import (
	"path/filepath"
	"testing"

	"github.com/propabilia/argus/internal/models"
)

func sampleInstructions() []models.CopyInstruction {
	return []models.CopyInstruction{
		{Group: 0, Source: "/in/1.jpg", Destination: "/out/SHOW1001/SHOW1001-Lamp-1.jpg", Kind: models.KindProp, Status: models.StatusCopied},
		{Group: 0, Source: "/in/2.jpg", Kind: models.KindCOA, SKU: "SHOW1001", Description: "Lamp", Status: models.StatusDiscarded},
		{Group: 2, Source: "/in/3.jpg", Kind: models.KindCOA, SKU: "SHOW1002", Description: "Chair", Status: models.StatusFailed},
	}
}

func TestWriteAndRead(t *testing.T) {
	for _, name := range []string{"run.yaml", "run.parquet"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "manifests", name)
			m := FromInstructions("run-123", "/out", sampleInstructions())

			if err := m.Write(path); err != nil {
				t.Fatalf("Unexpected write error: %v", err)
			}

			got, err := Read(path)
			if err != nil {
				t.Fatalf("Unexpected read error: %v", err)
			}
			if got.RunID != "run-123" {
				t.Errorf("Expected run id run-123, got %q", got.RunID)
			}
			if len(got.Rows) != 3 {
				t.Fatalf("Expected 3 rows, got %d", len(got.Rows))
			}
			if got.Rows[1].Status != "discarded" || got.Rows[1].Destination != "" {
				t.Errorf("Expected discarded row without destination, got %+v", got.Rows[1])
			}
			if got.Rows[2].Group != 2 || got.Rows[2].SKU != "SHOW1002" {
				t.Errorf("Expected group 2 SHOW1002, got %+v", got.Rows[2])
			}
			for _, r := range got.Rows {
				if r.RunID != "run-123" {
					t.Errorf("Expected run id on every row, got %q", r.RunID)
				}
			}
		})
	}
}

func TestFromScan(t *testing.T) {
	items := []models.ScannedItem{
		{Path: "/in/1.jpg", Kind: models.KindProp},
		{Path: "/in/2.jpg", Kind: models.KindCOA, SKU: "SHOW1001", Desc: "Lamp"},
	}

	m := FromScan("scan-1", items)
	if len(m.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(m.Rows))
	}
	if m.Rows[1].Group != 1 || m.Rows[1].Status != StatusScanned || m.Rows[1].Kind != "COA" {
		t.Errorf("Expected scanned certificate row, got %+v", m.Rows[1])
	}
}

func TestWriteRejectsUnknownFormat(t *testing.T) {
	m := FromInstructions("run", "/out", nil)
	if err := m.Write(filepath.Join(t.TempDir(), "run.csv")); err == nil {
		t.Error("Expected error for unsupported extension")
	}
}
