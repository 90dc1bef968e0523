package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripAccents removes combining marks, e.g. "café" -> "cafe".
func StripAccents(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize prepares text for lexicon matching: accents are stripped, the
// text is lowercased and everything but ASCII letters and whitespace is
// dropped before splitting and removing stopwords.
func Normalize(s string, stop StopWords) []string {
	s = strings.ToLower(StripAccents(s))
	s = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			return r
		}
		if r < unicode.MaxASCII && unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)

	fields := strings.Fields(s)
	words := make([]string, 0, len(fields))
	for _, w := range fields {
		if stop.Contains(w) {
			continue
		}
		words = append(words, w)
	}
	return words
}
