// Package lm implements an interpolated trigram language model with
// add-one (Laplace) smoothing over whitespace-tokenized sentences.
package lm

import (
	"fmt"
	"math"

	"github.com/hansardlab/plenum/pkg/plenum/internalerr"
	"github.com/hansardlab/plenum/pkg/plenum/ngram"
)

// Punctuation tokens used by the end-of-sentence override in NextToken.
// Committee and plenary proceedings rarely end mid-clause.
const (
	commaToken  = ","
	periodToken = "."
)

// Weights are the interpolation coefficients blending the unigram, bigram
// and trigram estimates. They must be non-negative and conventionally sum
// to 1.
type Weights struct {
	Unigram float64
	Bigram  float64
	Trigram float64
}

// Model is a trigram language model for one register. It owns its count
// tables, is immutable after Train and safe for concurrent readers.
type Model struct {
	counts  *ngram.Counts
	weights Weights
}

// Train builds a model from an ordered collection of sentences. Training
// with zero sentences is rejected: the vocabulary would be undefined.
func Train(sentences []string, w Weights) (*Model, error) {
	if len(sentences) == 0 {
		return nil, fmt.Errorf("train language model: %w", internalerr.ErrEmptyCorpus)
	}
	if w.Unigram < 0 || w.Bigram < 0 || w.Trigram < 0 {
		return nil, fmt.Errorf("train language model: negative interpolation weight: %w", internalerr.ErrInvalidInput)
	}

	counts := ngram.NewCounts()
	for _, s := range sentences {
		counts.AddSentence(s)
	}

	return &Model{counts: counts, weights: w}, nil
}

// Counts exposes the model's read-only count tables.
func (m *Model) Counts() *ngram.Counts {
	return m.counts
}

// Weights returns the interpolation coefficients.
func (m *Model) Weights() Weights {
	return m.weights
}

// laplace is the add-one smoothed estimate (count+1)/(contextCount+V).
// The +1 numerator and +V denominator keep every probability strictly
// positive, so the log is always defined. Both sentence scoring and
// prediction go through this one helper.
func (m *Model) laplace(count, contextCount int) float64 {
	return float64(count+1) / float64(contextCount+m.counts.VocabSize())
}

// InterpolatedProb returns P(w3|w1,w2) as the weighted blend of the
// smoothed unigram, bigram and trigram estimates. The unigram context is
// the whole corpus, so its context count is the total token count.
func (m *Model) InterpolatedProb(w1, w2, w3 string) float64 {
	uni := m.laplace(m.counts.Unigram(w3), m.counts.TotalUnigrams())
	bi := m.laplace(m.counts.Bigram(w2, w3), m.counts.Unigram(w2))
	tri := m.laplace(m.counts.Trigram(w1, w2, w3), m.counts.Bigram(w1, w2))

	return m.weights.Unigram*uni + m.weights.Bigram*bi + m.weights.Trigram*tri
}

// SentenceLogProb returns the natural-log likelihood of a sentence:
// boundary markers are prepended and the interpolated probabilities of
// every real token given its two predecessors are summed in log space.
// An empty sentence is the product of zero terms, log-likelihood 0.
func (m *Model) SentenceLogProb(sentence string) float64 {
	tokens := ngram.WithBoundaries(ngram.Tokenize(sentence))

	total := 0.0
	for i := 2; i < len(tokens); i++ {
		total += math.Log(m.InterpolatedProb(tokens[i-2], tokens[i-1], tokens[i]))
	}
	return total
}

// NextToken greedily predicts the token following context, which may be
// empty. The vocabulary is scanned in first-seen training order, skipping
// the boundary markers; the first token reaching the strictly greatest
// interpolated probability wins, so ties break deterministically.
//
// When final is true and the argmax token is a comma, the returned token
// is overridden to a period; the returned log-probability still belongs
// to the pre-override argmax choice.
func (m *Model) NextToken(context string, final bool) (string, float64) {
	tokens := ngram.WithBoundaries(ngram.Tokenize(context))
	w1, w2 := tokens[len(tokens)-2], tokens[len(tokens)-1]

	best := ""
	bestProb := -1.0
	m.counts.Vocab(func(tok string) bool {
		if tok == ngram.Boundary0 || tok == ngram.Boundary1 {
			return true
		}
		if p := m.InterpolatedProb(w1, w2, tok); p > bestProb {
			best, bestProb = tok, p
		}
		return true
	})

	logProb := math.Log(bestProb)
	if final && best == commaToken {
		best = periodToken
	}
	return best, logProb
}
