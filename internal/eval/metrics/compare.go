package metrics

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldMatch represents the comparison result for a single extracted field
type FieldMatch struct {
	Expected   string  `yaml:"expected"`
	Actual     string  `yaml:"actual"`
	Score      float64 `yaml:"score"`      // 0.0 to 1.0
	Similarity float64 `yaml:"similarity"` // Levenshtein similarity of the raw values
	Method     string  `yaml:"method"`     // "exact", "normalized", "substring", "fuzzy_*", "*_missing"
}

// Exact reports whether the actual value equals the expected one byte for byte
func (m FieldMatch) Exact() bool {
	return m.Method == "exact"
}

var punctuation = regexp.MustCompile(`[^\w\s]`)

// CompareField scores an extracted value against its label
func CompareField(expected, actual string) FieldMatch {
	match := FieldMatch{
		Expected:   expected,
		Actual:     actual,
		Similarity: Similarity(expected, actual),
	}

	switch {
	case expected == "" && actual == "":
		match.Score = 1.0
		match.Method = "both_missing"
		return match
	case expected == "":
		match.Method = "expected_missing"
		return match
	case actual == "":
		match.Method = "actual_missing"
		return match
	case expected == actual:
		match.Score = 1.0
		match.Method = "exact"
		return match
	}

	expNorm := normalizeForComparison(expected)
	actNorm := normalizeForComparison(actual)

	if expNorm == actNorm {
		match.Score = 0.95
		match.Method = "normalized"
		return match
	}

	if strings.Contains(actNorm, expNorm) || strings.Contains(expNorm, actNorm) {
		match.Score = 0.8
		match.Method = "substring"
		return match
	}

	similarity := Similarity(expNorm, actNorm)
	match.Score = similarity
	switch {
	case similarity > 0.7:
		match.Method = "fuzzy_high"
	case similarity > 0.4:
		match.Method = "fuzzy_medium"
	default:
		match.Method = "no_match"
	}

	return match
}

// String renders the match for reports
func (m FieldMatch) String() string {
	return fmt.Sprintf("%.2f (%s) expected %q, got %q", m.Score, m.Method, m.Expected, m.Actual)
}

// normalizeForComparison lowercases, drops punctuation and collapses whitespace
func normalizeForComparison(text string) string {
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "-", " ")
	text = punctuation.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// Similarity returns 1 - distance/longest length, in [0, 1]
func Similarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}

	r1, r2 := []rune(s1), []rune(s2)
	if len(r1) == 0 || len(r2) == 0 {
		return 0.0
	}

	maxLen := len(r1)
	if len(r2) > maxLen {
		maxLen = len(r2)
	}

	return 1.0 - float64(levenshteinDistance(r1, r2))/float64(maxLen)
}

// levenshteinDistance calculates the Levenshtein distance between two rune slices
func levenshteinDistance(s1, s2 []rune) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}
