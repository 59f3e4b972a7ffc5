// Package normalize turns a raw description phrase read off a certificate into a
// filename-safe, properly cased description.
//
// The pipeline is order dependent: several steps repair artifacts introduced by an
// earlier one (title casing mangles acronyms and roman numerals, which later steps
// restore). Steps must not be reordered without re-running the package tests.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UnknownItem is returned for an empty description
const UnknownItem = "Unknown Item"

// MinorWords stay lowercase inside titles unless followed by a period
var MinorWords = []string{
	"A", "An", "The", "And", "But", "Or", "Nor", "For", "Yet", "So",
	"At", "By", "In", "Of", "On", "To", "Up", "With", "From",
}

var (
	digitOSandwich = regexp2.MustCompile(`(?<=\d)O(?=\d)`, regexp2.IgnoreCase)
	digitDotO      = regexp2.MustCompile(`(?<=\d)\.O`, regexp2.IgnoreCase)
	letterDotZero  = regexp2.MustCompile(`(?<=[a-zA-Z])\.0`, regexp2.None)

	// \w and \b are Unicode-aware here, so accented words count as words
	zeroWord = regexp2.MustCompile(`\b\w*0\w*\b`, regexp2.None)

	squishedPossessive = regexp.MustCompile(`('[sS])([a-zA-Z])`)
	camelBoundary      = regexp.MustCompile(`([a-z])([A-Z])`)
	gluedParen         = regexp.MustCompile(`([a-zA-Z0-9])\(`)
	romanNumeral       = regexp.MustCompile(`\b(Ii|Iii|Iv|Vi|Vii|Viii|Ix|Xii?i?)\b`)
	dottedAcronym      = regexp.MustCompile(`\b([a-zA-Z]\.)+[a-zA-Z0-9]?\b`)
	illegalChars       = regexp.MustCompile(`[^\p{L}\p{N}_\s'\-.]`)
	whitespaceRun      = regexp.MustCompile(`\s+`)

	minorWordPatterns = compileMinorWords(MinorWords)
)

type minorWord struct {
	re    *regexp2.Regexp
	lower string
}

func compileMinorWords(words []string) []minorWord {
	out := make([]minorWord, 0, len(words))
	for _, w := range words {
		out = append(out, minorWord{
			re:    regexp2.MustCompile(`\b`+w+`\b(?!\.)`, regexp2.IgnoreCase),
			lower: strings.ToLower(w),
		})
	}
	return out
}

// Normalizer applies the description pipeline with a configured acronym list
type Normalizer struct {
	forceUpper []*regexp.Regexp
}

// New creates a normalizer that forces the given words to uppercase
func New(forceUppercase []string) *Normalizer {
	n := &Normalizer{}
	for _, word := range forceUppercase {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		n.forceUpper = append(n.forceUpper, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(word)+`\b`))
	}
	return n
}

// Description runs the full pipeline over a raw phrase
func (n *Normalizer) Description(raw string) string {
	if raw == "" {
		return UnknownItem
	}

	steps := []func(string) string{
		FixTypoZeros,
		SplitPossessive,
		SplitCamelCase,
		UnglueParentheses,
		TitleCase,
		RestoreRomanNumerals,
		LowerMinorWords,
		n.ForceUppercase,
		RestoreDottedAcronyms,
		StripIllegalChars,
		CapitalizeFirst,
		Hyphenate,
	}

	desc := raw
	for _, step := range steps {
		desc = step(desc)
	}
	return desc
}

// FixTypoZeros resolves zero versus letter-O confusion. Inside numbers an O becomes
// a zero; inside words that hold no other digit a zero becomes an O.
func FixTypoZeros(text string) string {
	if text == "" {
		return ""
	}

	text = replace2(digitOSandwich, text, "0")
	text = replace2(digitDotO, text, ".0")
	text = replace2(letterDotZero, text, ".O")

	out, err := zeroWord.ReplaceFunc(text, func(m regexp2.Match) string {
		word := m.String()
		if isAllDigits(word) {
			return word
		}
		for _, r := range word {
			if r >= '1' && r <= '9' {
				return word
			}
		}
		return strings.ReplaceAll(word, "0", "O")
	}, -1, -1)
	if err != nil {
		return text
	}
	return out
}

// SplitPossessive separates a possessive from a word glued onto it
func SplitPossessive(text string) string {
	return squishedPossessive.ReplaceAllString(text, "$1 $2")
}

// SplitCamelCase inserts a space at every lower-to-upper boundary
func SplitCamelCase(text string) string {
	return camelBoundary.ReplaceAllString(text, "$1 $2")
}

// UnglueParentheses inserts a space before an opening parenthesis glued to a word
func UnglueParentheses(text string) string {
	return gluedParen.ReplaceAllString(text, "$1 (")
}

// TitleCase capitalizes every run of cased letters, so a letter after an
// apostrophe, dot or digit starts a new word (O'Brien, Dr.Who, 2Nd). Possessive
// 'S is then lowered again.
func TitleCase(text string) string {
	caser := cases.Title(language.Und)

	var b strings.Builder
	b.Grow(len(text))
	start := 0
	inWord := false
	for i, r := range text {
		cased := isCased(r)
		if cased == inWord {
			continue
		}
		if inWord {
			b.WriteString(caser.String(text[start:i]))
		} else {
			b.WriteString(text[start:i])
		}
		start = i
		inWord = cased
	}
	if inWord {
		b.WriteString(caser.String(text[start:]))
	} else {
		b.WriteString(text[start:])
	}

	return strings.ReplaceAll(b.String(), "'S", "'s")
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}

// RestoreRomanNumerals re-uppercases numerals that title casing lowered
func RestoreRomanNumerals(text string) string {
	return romanNumeral.ReplaceAllStringFunc(text, strings.ToUpper)
}

// LowerMinorWords lowercases articles, conjunctions and short prepositions
func LowerMinorWords(text string) string {
	for _, mw := range minorWordPatterns {
		text = replace2(mw.re, text, mw.lower)
	}
	return text
}

// ForceUppercase uppercases every configured acronym
func (n *Normalizer) ForceUppercase(text string) string {
	for _, re := range n.forceUpper {
		text = re.ReplaceAllStringFunc(text, strings.ToUpper)
	}
	return text
}

// RestoreDottedAcronyms uppercases shapes like A.L.I.E
func RestoreDottedAcronyms(text string) string {
	return dottedAcronym.ReplaceAllStringFunc(text, strings.ToUpper)
}

// StripIllegalChars replaces everything except word characters, whitespace,
// apostrophes, hyphens and dots with a space
func StripIllegalChars(text string) string {
	return illegalChars.ReplaceAllString(text, " ")
}

// CapitalizeFirst trims the text and uppercases its first character
func CapitalizeFirst(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(text)
	return string(unicode.ToUpper(r)) + text[size:]
}

// Hyphenate collapses whitespace runs into single hyphens
func Hyphenate(text string) string {
	return whitespaceRun.ReplaceAllString(text, "-")
}

func replace2(re *regexp2.Regexp, text, replacement string) string {
	out, err := re.Replace(text, replacement, -1, -1)
	if err != nil {
		return text
	}
	return out
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
