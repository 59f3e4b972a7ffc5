// Package consensus reconciles description spellings across a whole batch.
//
// OCR noise produces near-duplicates of the same description on different
// certificates. Rather than judge each one alone, the batch votes: spellings are
// ranked by frequency and each one is rewritten to the first more popular
// spelling that is similar enough. Corrections only flow towards more popular
// spellings, so every similarity cluster converges on one canonical form.
package consensus

import (
	"log/slog"
	"sort"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/propabilia/argus/internal/models"
)

// DefaultThreshold is the similarity ratio a spelling must exceed to be corrected
const DefaultThreshold = 0.80

// Corrector computes and applies batch-wide description corrections
type Corrector struct {
	threshold float64
}

// New creates a corrector. A threshold outside (0, 1] falls back to DefaultThreshold.
func New(threshold float64) *Corrector {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Corrector{threshold: threshold}
}

// Corrections builds the correction map from every certificate description in the batch
func (c *Corrector) Corrections(groups []models.Group) models.CorrectionMap {
	corrections := models.CorrectionMap{}

	ranked := rankByFrequency(collectDescriptions(groups))
	for i, candidate := range ranked {
		for _, popular := range ranked[:i] {
			if Ratio(candidate, popular) > c.threshold {
				corrections[candidate] = popular
				slog.Debug("Correcting description", "from", candidate, "to", popular)
				break
			}
		}
	}

	return corrections
}

// Apply returns a new collection of groups with corrections applied to certificate items.
// The input groups are not modified.
func Apply(groups []models.Group, corrections models.CorrectionMap) []models.Group {
	out := make([]models.Group, 0, len(groups))
	for _, g := range groups {
		ng := make(models.Group, 0, len(g))
		for _, item := range g {
			if replacement, ok := corrections[item.Desc]; ok && item.IsCOA() && item.Desc != "" {
				item = item.WithDescription(replacement)
			}
			ng = append(ng, item)
		}
		out = append(out, ng)
	}
	return out
}

// Normalize computes the corrections for a batch and applies them
func (c *Corrector) Normalize(groups []models.Group) ([]models.Group, models.CorrectionMap) {
	corrections := c.Corrections(groups)
	return Apply(groups, corrections), corrections
}

// Ratio returns the similarity of two strings in [0, 1] as twice the number of
// matched characters over the total length.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(chars(a), chars(b)).Ratio()
}

func collectDescriptions(groups []models.Group) []string {
	var descs []string
	for _, g := range groups {
		for _, item := range g {
			if item.IsCOA() && item.Desc != "" {
				descs = append(descs, item.Desc)
			}
		}
	}
	return descs
}

// rankByFrequency returns distinct descriptions by descending count;
// ties keep first-encounter order
func rankByFrequency(descs []string) []string {
	counts := make(map[string]int, len(descs))
	var distinct []string
	for _, d := range descs {
		if counts[d] == 0 {
			distinct = append(distinct, d)
		}
		counts[d]++
	}

	sort.SliceStable(distinct, func(i, j int) bool {
		return counts[distinct[i]] > counts[distinct[j]]
	})
	return distinct
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
