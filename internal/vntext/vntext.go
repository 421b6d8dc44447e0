// Package vntext normalizes Vietnamese text for matching and slugs.
// District filters and the listing search both depend on the same folding,
// so records normalized here at ingestion stay comparable to user input.
package vntext

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, drops combining marks and recomposes.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripDiacritics removes Vietnamese tone and vowel marks ("Xuân" -> "Xuan").
func StripDiacritics(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	// đ/Đ carry no combining mark, handle them separately.
	out = strings.ReplaceAll(out, "đ", "d")
	out = strings.ReplaceAll(out, "Đ", "D")
	return out
}

// Fold lowercases and strips diacritics, the canonical form for
// accent-insensitive comparison.
func Fold(s string) string {
	return strings.ToLower(StripDiacritics(s))
}

// Slugify produces the normalized hyphenated key used for district and
// catalog matching ("Thanh Xuân" -> "thanh-xuan").
func Slugify(s string) string {
	folded := Fold(s)

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range folded {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// ContainsFold reports whether needle occurs in haystack ignoring case
// and diacritics.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
