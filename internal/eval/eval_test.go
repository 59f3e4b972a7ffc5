package eval

import (
	"context"
	"testing"

	"github.com/propabilia/argus/internal/config"
	"github.com/propabilia/argus/internal/eval/dataset"
)

func TestEvaluatePage(t *testing.T) {
	cfg := config.Default()
	e := New(&cfg)

	tests := []struct {
		name      string
		page      dataset.Page
		predicted bool
		skuExact  bool
		descExact bool
	}{
		{
			name: "certificate",
			page: dataset.Page{
				ID:          "1",
				Text:        "CERTIFICATE OF AUTHENTICITY\nABC1234 Lamp was used in filming",
				COA:         true,
				SKU:         "ABC1234",
				Description: "Lamp",
			},
			predicted: true,
			skuExact:  true,
			descExact: true,
		},
		{
			name:      "prop",
			page:      dataset.Page{ID: "2", Text: "a rubber duck"},
			predicted: false,
		},
		{
			name: "wrong label",
			page: dataset.Page{
				ID:          "3",
				Text:        "CERTIFICATE OF AUTHENTICITY\nABC1234 Lamp was used in filming",
				COA:         true,
				SKU:         "ABC1234",
				Description: "Chair",
			},
			predicted: true,
			skuExact:  true,
			descExact: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := e.EvaluatePage(tt.page)
			if r.PredictedCOA != tt.predicted {
				t.Errorf("Expected predicted %v, got %v", tt.predicted, r.PredictedCOA)
			}
			if tt.page.COA {
				if r.SKU.Exact() != tt.skuExact {
					t.Errorf("Expected SKU exact %v, got %s", tt.skuExact, r.SKU)
				}
				if r.Description.Exact() != tt.descExact {
					t.Errorf("Expected description exact %v, got %s", tt.descExact, r.Description)
				}
			}
		})
	}
}

func TestRunAggregates(t *testing.T) {
	cfg := config.Default()
	pages := []dataset.Page{
		{ID: "1", Text: "CERTIFICATE OF AUTHENTICITY\nABC1234 Lamp was used in filming", COA: true, SKU: "ABC1234", Description: "Lamp"},
		{ID: "2", Text: "a rubber duck"},
	}

	agg := New(&cfg).Run(context.Background(), pages)
	if agg.Accuracy != 1.0 || agg.SKUExactRate != 1.0 || agg.DescriptionExactRate != 1.0 {
		t.Errorf("Expected perfect scores, got %+v", agg)
	}
}

func TestRunStopsWhenCancelled(t *testing.T) {
	cfg := config.Default()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	agg := New(&cfg).Run(ctx, []dataset.Page{{ID: "1"}})
	if agg.TotalRecords != 0 {
		t.Errorf("Expected no pages evaluated, got %d", agg.TotalRecords)
	}
}
