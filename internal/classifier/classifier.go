package classifier

import "strings"

// DefaultWeakThreshold is the number of weak indicators that count as a certificate
const DefaultWeakThreshold = 3

// Classifier decides whether OCR text belongs to a Certificate of Authenticity
// using a weighted keyword vote.
type Classifier struct {
	strong        []string
	weak          []string
	weakThreshold int
}

// New creates a classifier from strong and weak indicator lists.
// A threshold below 1 falls back to DefaultWeakThreshold.
func New(strong, weak []string, weakThreshold int) *Classifier {
	if weakThreshold < 1 {
		weakThreshold = DefaultWeakThreshold
	}
	return &Classifier{
		strong:        upperAll(strong),
		weak:          upperAll(weak),
		weakThreshold: weakThreshold,
	}
}

// IsCOA returns true when the text holds at least one strong indicator
// or at least weakThreshold weak indicators. Empty text is never a certificate.
func (c *Classifier) IsCOA(text string) bool {
	if text == "" {
		return false
	}

	upper := strings.ToUpper(text)
	if countHits(upper, c.strong) >= 1 {
		return true
	}
	return countHits(upper, c.weak) >= c.weakThreshold
}

func countHits(text string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			hits++
		}
	}
	return hits
}

func upperAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, strings.ToUpper(w))
	}
	return out
}
