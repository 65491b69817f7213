// Package mask perturbs sentences by replacing randomly chosen tokens
// with a placeholder, for the infill pipeline to reconstruct.
package mask

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/hansardlab/plenum/pkg/plenum/internalerr"
)

// DefaultPlaceholder is the mask token written in place of hidden tokens.
const DefaultPlaceholder = "[*]"

// Masker replaces a fixed fraction of each sentence's tokens with a
// placeholder. All randomness flows through one seeded source consumed in
// input order, so a given seed reproduces identical output.
type Masker struct {
	r           *rand.Rand
	ratio       float64
	placeholder string
}

// New creates a Masker. ratio is the fraction of tokens to hide per
// sentence, in (0, 1]; at least one token is always masked.
func New(seed int64, ratio float64, placeholder string) (*Masker, error) {
	if ratio <= 0 || ratio > 1 {
		return nil, fmt.Errorf("mask ratio %v outside (0, 1]: %w", ratio, internalerr.ErrInvalidInput)
	}
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return &Masker{
		r:           rand.New(rand.NewSource(seed)),
		ratio:       ratio,
		placeholder: placeholder,
	}, nil
}

// Placeholder returns the mask token.
func (m *Masker) Placeholder() string {
	return m.placeholder
}

// MaskSentence hides max(1, floor(len·ratio)) distinct token positions of
// one sentence. Positions come from a single permutation draw, sorted
// ascending before replacement. A zero-token sentence is a degenerate
// input and is rejected.
func (m *Masker) MaskSentence(sentence string) (string, error) {
	tokens := strings.Fields(sentence)
	if len(tokens) == 0 {
		return "", fmt.Errorf("mask empty sentence: %w", internalerr.ErrInvalidInput)
	}

	n := int(float64(len(tokens)) * m.ratio)
	if n < 1 {
		n = 1
	}

	positions := m.r.Perm(len(tokens))[:n]
	sort.Ints(positions)

	out := make([]string, len(tokens))
	copy(out, tokens)
	for _, pos := range positions {
		out[pos] = m.placeholder
	}
	return strings.Join(out, " "), nil
}

// MaskSentences masks each sentence independently, in input order.
func (m *Masker) MaskSentences(sentences []string) ([]string, error) {
	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		masked, err := m.MaskSentence(s)
		if err != nil {
			return nil, err
		}
		out = append(out, masked)
	}
	return out, nil
}

// Sample draws n distinct sentences without replacement, preserving their
// relative input order. When n meets or exceeds the input length the whole
// input is returned unchanged.
func (m *Masker) Sample(sentences []string, n int) []string {
	if n >= len(sentences) {
		return sentences
	}

	indices := m.r.Perm(len(sentences))[:n]
	sort.Ints(indices)

	out := make([]string, 0, n)
	for _, i := range indices {
		out = append(out, sentences[i])
	}
	return out
}
