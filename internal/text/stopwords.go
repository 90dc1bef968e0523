package text

import (
	"sort"
	"strings"

	"github.com/kljensen/snowball/english"
	"github.com/kljensen/snowball/french"
	"github.com/kljensen/snowball/hungarian"
	"github.com/kljensen/snowball/norwegian"
	"github.com/kljensen/snowball/russian"
	"github.com/kljensen/snowball/spanish"
	"github.com/kljensen/snowball/swedish"
)

var localeStopWords = map[string]func(string) bool{
	"english":   english.IsStopWord,
	"spanish":   spanish.IsStopWord,
	"french":    french.IsStopWord,
	"russian":   russian.IsStopWord,
	"swedish":   swedish.IsStopWord,
	"norwegian": norwegian.IsStopWord,
	"hungarian": hungarian.IsStopWord,
}

// StopWords is a locale stopword list plus extra words. The zero value
// contains nothing.
type StopWords struct {
	language string
	isLocale func(string) bool
	extra    map[string]struct{}
}

func NewStopWords(language string, extra ...string) StopWords {
	s := StopWords{
		language: strings.ToLower(language),
		extra:    make(map[string]struct{}, len(extra)),
	}
	s.isLocale = localeStopWords[s.language]
	for _, w := range extra {
		s.extra[w] = struct{}{}
	}
	return s
}

// SupportedLanguage reports whether a snowball stemmer and stopword list
// exist for language.
func SupportedLanguage(language string) bool {
	_, ok := localeStopWords[strings.ToLower(language)]
	return ok
}

func (s StopWords) Contains(word string) bool {
	if _, ok := s.extra[word]; ok {
		return true
	}
	return s.isLocale != nil && s.isLocale(word)
}

func (s StopWords) Language() string {
	return s.language
}

// Extra returns the extra words in sorted order.
func (s StopWords) Extra() []string {
	out := make([]string, 0, len(s.extra))
	for w := range s.extra {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
