package grouping

import (
	"fmt"
	"testing"

	"github.com/propabilia/argus/internal/models"
)

func sequence(kinds ...models.Kind) []models.ScannedItem {
	items := make([]models.ScannedItem, 0, len(kinds))
	for i, k := range kinds {
		items = append(items, models.ScannedItem{Path: fmt.Sprintf("img_%02d.jpg", i), Kind: k})
	}
	return items
}

func shape(groups []models.Group) [][]models.Kind {
	out := make([][]models.Kind, 0, len(groups))
	for _, g := range groups {
		var kinds []models.Kind
		for _, item := range g {
			kinds = append(kinds, item.Kind)
		}
		out = append(out, kinds)
	}
	return out
}

func TestGroup(t *testing.T) {
	const (
		C = models.KindCOA
		P = models.KindProp
	)

	tests := []struct {
		name     string
		items    []models.ScannedItem
		expected [][]models.Kind
	}{
		{
			name:     "props before each certificate",
			items:    sequence(P, C, P, C, C, P),
			expected: [][]models.Kind{{P, C}, {P, C, C}, {P}},
		},
		{
			name:     "certificate first",
			items:    sequence(C, P, P, C),
			expected: [][]models.Kind{{C}, {P, P, C}},
		},
		{
			name:     "only props",
			items:    sequence(P, P),
			expected: [][]models.Kind{{P, P}},
		},
		{
			name:     "only certificates",
			items:    sequence(C, C, C),
			expected: [][]models.Kind{{C, C, C}},
		},
		{
			name:     "empty",
			items:    nil,
			expected: [][]models.Kind{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shape(Group(tt.items))
			if fmt.Sprint(got) != fmt.Sprint(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestGroupKeepsScanOrder(t *testing.T) {
	items := sequence(models.KindProp, models.KindCOA, models.KindProp)
	groups := Group(items)

	if groups[0][0].Path != "img_00.jpg" || groups[0][1].Path != "img_01.jpg" || groups[1][0].Path != "img_02.jpg" {
		t.Errorf("Expected items in scan order, got %+v", groups)
	}
}

func TestSplit(t *testing.T) {
	groups := Group(sequence(models.KindProp, models.KindCOA, models.KindProp, models.KindCOA, models.KindCOA, models.KindProp))
	valid, orphans := Split(groups)

	if len(valid) != 2 {
		t.Errorf("Expected 2 valid groups, got %d", len(valid))
	}
	if len(orphans) != 1 || len(orphans[0]) != 1 {
		t.Errorf("Expected one orphan group of one item, got %v", orphans)
	}
}
