package metrics

import (
	"math"
	"testing"
)

func TestCompareField(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		method   string
		score    float64
	}{
		{"exact", "Harold-Backpack", "Harold-Backpack", "exact", 1.0},
		{"case only", "Harold-Backpack", "harold-backpack", "normalized", 0.95},
		{"substring", "Harold-Backpack", "Harold-Backpack-S01E05", "substring", 0.8},
		{"both missing", "", "", "both_missing", 1.0},
		{"actual missing", "Lamp", "", "actual_missing", 0.0},
		{"expected missing", "", "Lamp", "expected_missing", 0.0},
		{"unrelated", "Lamp", "Xyzzy", "no_match", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := CompareField(tt.expected, tt.actual)
			if m.Method != tt.method {
				t.Errorf("Expected method %s, got %s", tt.method, m.Method)
			}
			if math.Abs(m.Score-tt.score) > 1e-9 {
				t.Errorf("Expected score %v, got %v", tt.score, m.Score)
			}
		})
	}
}

func TestCompareFieldFuzzy(t *testing.T) {
	m := CompareField("Harold-Backpack", "Harold-Backpak")
	if m.Method != "fuzzy_high" {
		t.Errorf("Expected fuzzy_high, got %s", m.Method)
	}
	if m.Exact() {
		t.Error("Expected fuzzy match not to be exact")
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		s1, s2   string
		expected float64
	}{
		{"same", "same", 1.0},
		{"", "abc", 0.0},
		{"kitten", "sitting", 1.0 - 3.0/7.0},
		{"abcd", "abce", 0.75},
		{"Café", "Cafe", 0.75},
	}

	for _, tt := range tests {
		if got := Similarity(tt.s1, tt.s2); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("Similarity(%q, %q): expected %v, got %v", tt.s1, tt.s2, tt.expected, got)
		}
	}
}
