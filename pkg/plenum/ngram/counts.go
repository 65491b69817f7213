// Package ngram builds the unigram/bigram/trigram count tables that back
// the trigram language model.
package ngram

import "strings"

// Reserved sentence-boundary tokens. Two markers are prepended to every
// sentence so the first real token always has a full two-token context.
const (
	Boundary0 = "<s_0>"
	Boundary1 = "<s_1>"
)

// Tokenize splits a sentence on whitespace.
func Tokenize(sentence string) []string {
	return strings.Fields(sentence)
}

// WithBoundaries returns the token sequence with the two boundary markers
// prepended.
func WithBoundaries(tokens []string) []string {
	out := make([]string, 0, len(tokens)+2)
	out = append(out, Boundary0, Boundary1)
	return append(out, tokens...)
}

// Counts holds the n-gram tables for one training corpus. Tables are
// populated once during accumulation and read-only afterwards; the model
// exposes them through accessors only.
type Counts struct {
	unigrams map[string]int
	bigrams  map[[2]string]int
	trigrams map[[3]string]int

	// vocab preserves first-seen token order so that vocabulary scans
	// (the prediction argmax) are deterministic.
	vocab []string

	total int // sum of all unigram counts, boundary tokens included
}

// NewCounts creates empty count tables.
func NewCounts() *Counts {
	return &Counts{
		unigrams: make(map[string]int),
		bigrams:  make(map[[2]string]int),
		trigrams: make(map[[3]string]int),
	}
}

// AddSentence tokenizes one sentence, prepends the boundary markers and
// slides windows of width 1, 2 and 3 over the result.
func (c *Counts) AddSentence(sentence string) {
	tokens := WithBoundaries(Tokenize(sentence))

	for i, tok := range tokens {
		if _, seen := c.unigrams[tok]; !seen {
			c.vocab = append(c.vocab, tok)
		}
		c.unigrams[tok]++
		c.total++

		if i >= 1 {
			c.bigrams[[2]string{tokens[i-1], tok}]++
		}
		if i >= 2 {
			c.trigrams[[3]string{tokens[i-2], tokens[i-1], tok}]++
		}
	}
}

// Unigram returns the occurrence count for a single token.
func (c *Counts) Unigram(w string) int {
	return c.unigrams[w]
}

// Bigram returns the occurrence count for an ordered token pair.
func (c *Counts) Bigram(w1, w2 string) int {
	return c.bigrams[[2]string{w1, w2}]
}

// Trigram returns the occurrence count for an ordered token triple.
func (c *Counts) Trigram(w1, w2, w3 string) int {
	return c.trigrams[[3]string{w1, w2, w3}]
}

// VocabSize returns the number of distinct tokens, boundary markers
// included.
func (c *Counts) VocabSize() int {
	return len(c.unigrams)
}

// TotalUnigrams returns the total number of token occurrences.
func (c *Counts) TotalUnigrams() int {
	return c.total
}

// Vocab iterates the vocabulary in first-seen order, calling fn for each
// token until fn returns false.
func (c *Counts) Vocab(fn func(token string) bool) {
	for _, tok := range c.vocab {
		if !fn(tok) {
			return
		}
	}
}
