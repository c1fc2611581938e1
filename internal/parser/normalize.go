package parser

import (
	"strings"
	"unicode"
)

// Normalize reduces a merchant/sender name to its canonical key form:
// lower-cased, Latin and Arabic letters and spaces only, whitespace
// collapsed. Every pattern-store lookup and upsert keys on this form, so two
// renderings of the same name resolve to the same record. Idempotent.
func Normalize(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case unicode.Is(unicode.Arabic, r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// cleanMerchant runs the raw regex capture through the cleanup pipeline:
// trailing location suffix, currency and amount-marker tokens, whitespace,
// leading articles, then the letters-and-spaces filter.
func cleanMerchant(raw string) string {
	fields := strings.Fields(raw)

	// Strip trailing city/country tokens.
	for len(fields) > 0 {
		last := strings.ToLower(fields[len(fields)-1])
		if !containsFold(locationSuffixes, last) {
			break
		}
		fields = fields[:len(fields)-1]
	}

	// Drop currency and amount-marker tokens wherever they appear.
	kept := fields[:0]
	for _, f := range fields {
		if containsFold(amountMarkerTokens, strings.ToLower(f)) {
			continue
		}
		kept = append(kept, f)
	}

	// Strip leading articles, prepositions and honorifics.
	for len(kept) > 0 && containsFold(leadingArticles, strings.ToLower(kept[0])) {
		kept = kept[1:]
	}

	cleaned := Normalize(strings.Join(kept, " "))
	if containsFold(merchantStopWords, cleaned) {
		return ""
	}
	return cleaned
}

func containsFold(set []string, token string) bool {
	for _, s := range set {
		if s == token {
			return true
		}
	}
	return false
}

// containsAny reports whether text contains any of the given substrings.
// Matching is case-insensitive for the Latin keywords.
func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
