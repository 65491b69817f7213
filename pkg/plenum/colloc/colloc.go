// Package colloc extracts corpus-wide collocations: contiguous n-grams
// ranked by raw frequency or by a per-document TF-IDF score.
package colloc

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hansardlab/plenum/pkg/plenum/internalerr"
	"github.com/hansardlab/plenum/pkg/plenum/ngram"
)

// Metric selects the ranking score.
type Metric string

const (
	MetricFrequency Metric = "frequency"
	MetricTFIDF     Metric = "tfidf"
)

// ParseMetric converts a config/flag string into a Metric.
func ParseMetric(s string) (Metric, error) {
	switch Metric(strings.ToLower(s)) {
	case MetricFrequency:
		return MetricFrequency, nil
	case MetricTFIDF:
		return MetricTFIDF, nil
	}
	return "", fmt.Errorf("unknown collocation metric %q: %w", s, internalerr.ErrInvalidInput)
}

// Result pairs an n-gram with its score: a raw count under
// MetricFrequency, a TF-IDF real value under MetricTFIDF.
type Result struct {
	NGram []string
	Score float64
}

// Counter accumulates n-gram statistics for one n-gram order across a
// corpus of named documents. Unlike language-model training, sentences
// are not padded with boundary markers. State is local to one extraction
// run; queries are read-only.
type Counter struct {
	n int

	perDoc    map[string]map[string]int // document -> n-gram -> count
	docTotals map[string]int            // document -> total n-gram occurrences
	totals    map[string]int            // corpus-wide n-gram counts
	docFreq   map[string]int            // n-gram -> distinct containing documents

	// Insertion orders keep ranking and TF-IDF accumulation
	// deterministic across runs.
	ngramOrder []string
	docOrder   []string
}

// NewCounter creates a counter for contiguous n-grams of the given order.
func NewCounter(n int) (*Counter, error) {
	if n < 1 {
		return nil, fmt.Errorf("n-gram order %d: %w", n, internalerr.ErrInvalidInput)
	}
	return &Counter{
		n:         n,
		perDoc:    make(map[string]map[string]int),
		docTotals: make(map[string]int),
		totals:    make(map[string]int),
		docFreq:   make(map[string]int),
	}, nil
}

// Order returns the n-gram order.
func (c *Counter) Order() int {
	return c.n
}

// AddSentence extracts every contiguous n-gram from one sentence of the
// named document. Sentences shorter than n contribute nothing; the
// document still counts toward the corpus size.
func (c *Counter) AddSentence(doc, sentence string) {
	counts, ok := c.perDoc[doc]
	if !ok {
		counts = make(map[string]int)
		c.perDoc[doc] = counts
		c.docOrder = append(c.docOrder, doc)
	}

	tokens := ngram.Tokenize(sentence)
	for i := 0; i+c.n <= len(tokens); i++ {
		key := strings.Join(tokens[i:i+c.n], " ")

		if _, seen := c.totals[key]; !seen {
			c.ngramOrder = append(c.ngramOrder, key)
		}
		if counts[key] == 0 {
			c.docFreq[key]++
		}
		counts[key]++
		c.totals[key]++
		c.docTotals[doc]++
	}
}

// TotalDocs returns the number of distinct documents seen.
func (c *Counter) TotalDocs() int {
	return len(c.perDoc)
}

// Top ranks n-grams by the requested metric, dropping those whose corpus
// count is below minCount and truncating to the k best.
func (c *Counter) Top(metric Metric, minCount, k int) ([]Result, error) {
	switch metric {
	case MetricFrequency:
		return c.TopByFrequency(minCount, k), nil
	case MetricTFIDF:
		return c.TopByTFIDF(minCount, k), nil
	}
	return nil, fmt.Errorf("unknown collocation metric %q: %w", metric, internalerr.ErrInvalidInput)
}

// TopByFrequency returns the k most frequent n-grams with corpus count of
// at least minCount, in non-increasing count order. Ties keep first-seen
// corpus order (stable sort over the insertion sequence).
func (c *Counter) TopByFrequency(minCount, k int) []Result {
	results := make([]Result, 0, len(c.ngramOrder))
	for _, key := range c.ngramOrder {
		if count := c.totals[key]; count >= minCount {
			results = append(results, Result{NGram: strings.Split(key, " "), Score: float64(count)})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return truncate(results, k)
}

// TopByTFIDF returns the k highest-scoring n-grams with corpus count of
// at least minCount. Each containing document contributes tf·idf, with
// tf the n-gram's share of the document's n-gram occurrences and
// idf = ln(totalDocs/(docFreq+1)). Ties keep first-seen corpus order.
func (c *Counter) TopByTFIDF(minCount, k int) []Result {
	totalDocs := float64(len(c.perDoc))

	results := make([]Result, 0, len(c.ngramOrder))
	for _, key := range c.ngramOrder {
		if c.totals[key] < minCount {
			continue
		}

		idf := math.Log(totalDocs / float64(c.docFreq[key]+1))

		score := 0.0
		for _, doc := range c.docOrder {
			count := c.perDoc[doc][key]
			if count == 0 {
				continue
			}
			tf := float64(count) / float64(c.docTotals[doc])
			score += tf * idf
		}
		results = append(results, Result{NGram: strings.Split(key, " "), Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return truncate(results, k)
}

func truncate(results []Result, k int) []Result {
	if k >= 0 && len(results) > k {
		results = results[:k]
	}
	return results
}
