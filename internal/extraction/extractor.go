package extraction

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/propabilia/argus/internal/normalize"
)

// Details holds the fields pulled out of a certificate
type Details struct {
	SKU         string
	Description string
}

var (
	// SKU glued to the description, terminated by "was used in"
	standardPattern = regexp.MustCompile(`(?is)([A-Za-z&]+\d{4,7})\s*(.+?)\s+was used in`)
	// item line that follows an introductory anchor
	anchoredLinePattern = regexp.MustCompile(`^([A-Z0-9-]{3,})\s+(.*)$`)
)

const (
	anchorProduction = "production of the above"
	anchorCertifies  = "certifies that the following item"
)

var introAnchors = []string{anchorProduction, anchorCertifies}

// Extractor pulls the item code and description out of certificate text
type Extractor struct {
	normalizer *normalize.Normalizer
}

// New creates an extractor that formats descriptions with the given normalizer
func New(normalizer *normalize.Normalizer) *Extractor {
	if normalizer == nil {
		normalizer = normalize.New(nil)
	}
	return &Extractor{normalizer: normalizer}
}

// Extract returns the SKU and cleaned description found in text.
// The boolean is false when neither strategy finds a code and description pair.
func (e *Extractor) Extract(text string) (Details, bool) {
	if text == "" {
		return Details{}, false
	}

	rawCode, rawDesc, ok := matchStandard(text)
	if !ok {
		rawCode, rawDesc, ok = matchAnchored(text)
	}
	if !ok || rawCode == "" || rawDesc == "" {
		slog.Debug("No certificate details found", "length", len(text))
		return Details{}, false
	}

	return e.repair(rawCode, rawDesc), true
}

// repair applies the post-extraction rules to a raw code and description
func (e *Extractor) repair(rawCode, rawDesc string) Details {
	rawCode, rawDesc = Demerge(rawCode, rawDesc)

	sku := FixSKUTail(CleanFilename(strings.ToUpper(rawCode)))

	desc, season := MoveSeasonCode(rawDesc)
	desc = e.normalizer.Description(desc)
	if season != "" {
		desc = desc + "-" + season
	}

	return Details{SKU: sku, Description: desc}
}

// matchStandard searches the whole text for "CODE description was used in"
func matchStandard(text string) (string, string, bool) {
	m := standardPattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// matchAnchored looks for an introductory phrase and reads the item from the next line
func matchAnchored(text string) (string, string, bool) {
	lines := nonEmptyLines(text)

	for i, line := range lines {
		anchor := matchingAnchor(line)
		if anchor == "" || i+1 >= len(lines) {
			continue
		}

		m := anchoredLinePattern.FindStringSubmatch(lines[i+1])
		if m == nil {
			continue
		}

		code, desc := m[1], m[2]

		// this layout splits the description over two lines
		if anchor == anchorProduction && i+2 < len(lines) {
			next := lines[i+2]
			if !strings.Contains(next, "NOT VALID") && !strings.Contains(next, "www") && strings.Contains(next, "Daily Log") {
				desc += " " + next
			}
		}
		return code, desc, true
	}

	return "", "", false
}

func matchingAnchor(line string) string {
	lower := strings.ToLower(line)
	for _, a := range introAnchors {
		if strings.Contains(lower, a) {
			return a
		}
	}
	return ""
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
