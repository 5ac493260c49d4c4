package queryplan

import (
	"fmt"
	"strings"
	"unicode"
)

// Fingerprint computes the dedup key of last resort: a normalization of
// title, first author surname, and year.
func Fingerprint(title string, authors []string, year int) string {
	firstAuthorSurname := ""
	if len(authors) > 0 {
		firstAuthorSurname = surname(authors[0])
	}
	raw := title + "|" + firstAuthorSurname + "|" + fmt.Sprint(year)
	return normalize(raw)
}

// surname extracts the last whitespace-separated token of an author name,
// which is the surname for "First Last" formatted names.
func surname(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// normalize lowercases, strips punctuation, and collapses whitespace — the
// same normalization the Deduplicator applies to titles.
func normalize(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		if unicode.IsPunct(r) {
			continue
		}
		b.WriteRune(r)
	}
	fields := strings.Fields(b.String())
	return strings.Join(fields, " ")
}

// NormalizeTitle applies the same lowercase/strip-punctuation/collapse
// normalization used for title-based deduplication.
func NormalizeTitle(title string) string {
	return normalize(title)
}
