package text_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trknhr/intently/internal/text"
)

type MockStemmer struct {
	StemFunc func(string) (string, error)
}

func (m *MockStemmer) Stem(word string) (string, error) {
	return m.StemFunc(word)
}

func TestTokenizer_RemovesNonWordsWithoutSplitting(t *testing.T) {
	tok := text.NewTokenizer(text.TokenizerConfig{NonWords: text.DefaultNonWords})

	assert.Equal(t, []string{"helloworld"}, tok.Tokenize("hello!world"))
	assert.Equal(t, []string{"como", "estas"}, tok.Tokenize("¿como estas?"))
	assert.Equal(t, []string{"python"}, tok.Tokenize("python3"))
	assert.Empty(t, tok.Tokenize("  ... 42 "))
}

func TestTokenizer_Stems(t *testing.T) {
	tok := text.NewTokenizer(text.ForLanguage("english"))

	assert.Equal(t, []string{"program", "world"}, tok.Tokenize("programming world"))
}

func TestTokenizer_StemFailureDegrades(t *testing.T) {
	calls := 0
	tok := text.NewTokenizer(text.TokenizerConfig{
		NonWords: text.DefaultNonWords,
		Stemmer: &MockStemmer{StemFunc: func(w string) (string, error) {
			calls++
			if w == "boom" {
				return "", errors.New("stemmer exploded")
			}
			return w, nil
		}},
	})

	assert.Equal(t, []string{""}, tok.Tokenize("fine boom other"))
	assert.Equal(t, 2, calls)
}

func TestTokenizer_UnknownLanguageDegrades(t *testing.T) {
	tok := text.NewTokenizer(text.ForLanguage("klingon"))

	assert.Equal(t, []string{""}, tok.Tokenize("qapla batlh"))
}
