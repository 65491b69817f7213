// Package perplexity reduces a stream of token log-probabilities to a
// single corpus-level score.
package perplexity

import (
	"fmt"
	"math"

	"github.com/hansardlab/plenum/pkg/plenum/internalerr"
)

// Estimator accumulates natural-log probabilities of predicted tokens.
// The result depends only on the multiset of values and their count, not
// on insertion order.
type Estimator struct {
	sum float64
	n   int
}

// New creates an empty estimator.
func New() *Estimator {
	return &Estimator{}
}

// Add records one token's log-probability.
func (e *Estimator) Add(logProb float64) {
	e.sum += logProb
	e.n++
}

// Count returns the number of recorded log-probabilities.
func (e *Estimator) Count() int {
	return e.n
}

// Perplexity returns exp(-mean log-probability). With nothing recorded
// the mean is undefined and an error is returned.
func (e *Estimator) Perplexity() (float64, error) {
	if e.n == 0 {
		return 0, fmt.Errorf("perplexity of zero predictions: %w", internalerr.ErrInvalidInput)
	}
	return math.Exp(-e.sum / float64(e.n)), nil
}
