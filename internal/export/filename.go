package export

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const filenamePrefix = "interview-report"

// Filename builds interview-report-<YYYY-MM-DD>[-<candidate-slug>].<ext>.
func Filename(generatedAt time.Time, candidate string, format Format) string {
	name := filenamePrefix + "-" + generatedAt.Format("2006-01-02")
	if slug := Slug(candidate); slug != "" {
		name += "-" + slug
	}
	return name + "." + format.Extension()
}

// Slug folds diacritics and keeps lowercase ASCII letters, digits and single
// dashes.
func Slug(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
