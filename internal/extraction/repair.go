package extraction

import (
	"regexp"
	"strings"
)

var (
	mergedWord  = regexp.MustCompile(`\d+([A-Za-z]{3,})$`)
	skuTail     = regexp.MustCompile(`[0-9O]{4,}$`)
	seasonCode  = regexp.MustCompile(`(?i)\(?\bS\d{1,2}E\d{1,2}\b\)?`)
	illegalName = regexp.MustCompile(`[<>:"/\\|?*]`)
)

// Demerge splits a description word that OCR glued onto the end of the code,
// e.g. GOOSEBUMPS0695HAROLD + backpack becomes GOOSEBUMPS0695 + HAROLD backpack.
func Demerge(code, desc string) (string, string) {
	m := mergedWord.FindStringSubmatch(code)
	if m == nil {
		return code, desc
	}
	word := m[1]
	return code[:len(code)-len(word)], word + " " + desc
}

// CleanFilename removes characters that are illegal in Windows file names
func CleanFilename(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(illegalName.ReplaceAllString(text, ""))
}

// FixSKUTail rewrites letter O to zero in the trailing numeric block of a SKU,
// e.g. WHISTLEBLOWEROO01 becomes WHISTLEBLOWER0001.
func FixSKUTail(sku string) string {
	if sku == "" {
		return ""
	}

	loc := skuTail.FindStringIndex(sku)
	if loc == nil {
		return sku
	}

	suffix := sku[loc[0]:]
	if !strings.Contains(suffix, "O") {
		return sku
	}
	return sku[:loc[0]] + strings.ReplaceAll(suffix, "O", "0")
}

// MoveSeasonCode removes a season/episode tag such as (S01E05) from the text
// and returns it uppercased without parentheses.
func MoveSeasonCode(text string) (string, string) {
	if text == "" {
		return "", ""
	}

	tag := seasonCode.FindString(text)
	if tag == "" {
		return text, ""
	}

	clean := strings.ToUpper(strings.NewReplacer("(", "", ")", "").Replace(tag))
	return strings.ReplaceAll(text, tag, ""), clean
}
