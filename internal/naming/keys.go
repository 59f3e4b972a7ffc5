package naming

import (
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/propabilia/argus/internal/models"
)

// UnknownSKU stands in for a certificate whose code could not be read
const UnknownSKU = "UNKNOWN"

// everything before the trailing block of four or more digits
var showPrefix = regexp2.MustCompile(`^(.*?)(?=\d{4,}$)`, regexp2.None)

// ShowKey drops the trailing numeric id from a SKU so lots from the same
// production share a key, e.g. MAGICIANS0305 becomes MAGICIANS.
// Without a numeric tail the first four characters are used.
func ShowKey(sku string) string {
	if sku == "" {
		return UnknownSKU
	}

	if prefix := skuPrefix(sku); prefix != "" {
		return strings.ToUpper(prefix)
	}

	runes := []rune(sku)
	if len(runes) > 4 {
		runes = runes[:4]
	}
	return strings.ToUpper(string(runes))
}

// MergeSKUs joins the codes of every certificate in a lot. Codes sharing the
// first code's prefix contribute only their remainder: SHOW1001 and SHOW1002
// become SHOW1001-1002.
func MergeSKUs(coas []models.ScannedItem) string {
	if len(coas) == 0 {
		return UnknownSKU
	}

	base := coas[0].SKU
	if base == "" {
		base = UnknownSKU
	}
	if len(coas) == 1 {
		return base
	}

	prefix := skuPrefix(base)
	merged := base
	for _, coa := range coas[1:] {
		next := coa.SKU
		if next == "" {
			continue
		}
		if prefix != "" && strings.HasPrefix(next, prefix) {
			merged += "-" + next[len(prefix):]
		} else {
			merged += "-" + next
		}
	}
	return merged
}

func skuPrefix(sku string) string {
	m, err := showPrefix.FindStringMatch(sku)
	if err != nil || m == nil {
		return ""
	}
	return m.GroupByNumber(1).String()
}
