package text

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
	"github.com/rivo/uniseg"
	"github.com/trknhr/intently/internal/logger"
)

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// DefaultNonWords is ASCII punctuation, the Spanish opening marks and the
// digits 0-9.
var DefaultNonWords = asciiPunctuation + "¿¡" + "0123456789"

type Stemmer interface {
	Stem(word string) (string, error)
}

type SnowballStemmer struct {
	Language string
}

func (s SnowballStemmer) Stem(word string) (string, error) {
	return snowball.Stem(word, s.Language, true)
}

type TokenizerConfig struct {
	StopWords StopWords
	Stemmer   Stemmer
	NonWords  string
}

// ForLanguage returns the snowball stemmer and stopwords for language with the
// default non-word characters.
func ForLanguage(language string, extraStopWords ...string) TokenizerConfig {
	return TokenizerConfig{
		StopWords: NewStopWords(language, extraStopWords...),
		Stemmer:   SnowballStemmer{Language: strings.ToLower(language)},
		NonWords:  DefaultNonWords,
	}
}

type Tokenizer struct {
	cfg      TokenizerConfig
	nonWords map[rune]struct{}
}

func NewTokenizer(cfg TokenizerConfig) *Tokenizer {
	t := &Tokenizer{cfg: cfg, nonWords: make(map[rune]struct{})}
	for _, r := range cfg.NonWords {
		t.nonWords[r] = struct{}{}
	}
	return t
}

func (t *Tokenizer) StopWords() StopWords {
	return t.cfg.StopWords
}

// Tokenize deletes non-word characters (no split is inserted in their place),
// segments the rest into words and stems them. When stemming fails the call
// degrades to a single empty token.
func (t *Tokenizer) Tokenize(s string) []string {
	s = strings.Map(func(r rune) rune {
		if _, ok := t.nonWords[r]; ok {
			return -1
		}
		return r
	}, s)

	tokens := segmentWords(s)
	if t.cfg.Stemmer == nil {
		return tokens
	}

	stems := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		stem, err := t.cfg.Stemmer.Stem(tok)
		if err != nil {
			logger.Debug("stemming %q failed, degrading tokenization: %v", tok, err)
			return []string{""}
		}
		stems = append(stems, stem)
	}
	return stems
}

func segmentWords(s string) []string {
	var words []string
	state := -1
	for len(s) > 0 {
		var word string
		word, s, state = uniseg.FirstWordInString(s, state)
		if strings.TrimFunc(word, unicode.IsSpace) == "" {
			continue
		}
		words = append(words, word)
	}
	return words
}
