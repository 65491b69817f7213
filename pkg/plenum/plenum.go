// Package plenum is a statistical language-modeling toolkit over
// parliamentary sentences partitioned into the committee and plenary
// registers. It trains an interpolated trigram model per register,
// reconstructs masked sentences, estimates perplexity over the predicted
// tokens and extracts corpus-wide collocations.
package plenum

import (
	"fmt"

	"github.com/hansardlab/plenum/pkg/plenum/colloc"
	"github.com/hansardlab/plenum/pkg/plenum/infill"
	"github.com/hansardlab/plenum/pkg/plenum/ingest"
	"github.com/hansardlab/plenum/pkg/plenum/lm"
	"github.com/hansardlab/plenum/pkg/plenum/mask"
	"github.com/hansardlab/plenum/pkg/plenum/perplexity"
)

// Options configures a Toolkit.
type Options struct {
	CommitteeSentences []string
	PlenarySentences   []string

	Weights lm.Weights

	// MaskRatio is the fraction of tokens hidden per sentence, (0, 1].
	MaskRatio float64
	// Placeholder defaults to mask.DefaultPlaceholder.
	Placeholder string
	// Seed drives masking and sentence sampling.
	Seed int64
}

// Toolkit owns the two trained register models and the masking/infill
// machinery. Models are immutable after New and safe for concurrent
// readers; MaskAndFill consumes the shared random source and must be
// called from one goroutine at a time.
type Toolkit struct {
	committee *lm.Model
	plenary   *lm.Model
	masker    *mask.Masker
}

// New trains both register models and prepares the masker.
func New(opts Options) (*Toolkit, error) {
	committee, err := lm.Train(opts.CommitteeSentences, opts.Weights)
	if err != nil {
		return nil, fmt.Errorf("committee model: %w", err)
	}
	plenary, err := lm.Train(opts.PlenarySentences, opts.Weights)
	if err != nil {
		return nil, fmt.Errorf("plenary model: %w", err)
	}
	masker, err := mask.New(opts.Seed, opts.MaskRatio, opts.Placeholder)
	if err != nil {
		return nil, err
	}

	return &Toolkit{
		committee: committee,
		plenary:   plenary,
		masker:    masker,
	}, nil
}

// Committee returns the committee-register model.
func (t *Toolkit) Committee() *lm.Model { return t.committee }

// Plenary returns the plenary-register model.
func (t *Toolkit) Plenary() *lm.Model { return t.plenary }

// MaskAndFill samples sampleSize sentences, masks them, fills the masked
// positions with the plenary model and scores every filled sentence under
// both models. The returned perplexity covers exactly the predicted
// tokens of this run.
func (t *Toolkit) MaskAndFill(sentences []string, sampleSize int) ([]infill.Record, float64, error) {
	sample := t.masker.Sample(sentences, sampleSize)
	masked, err := t.masker.MaskSentences(sample)
	if err != nil {
		return nil, 0, err
	}

	est := perplexity.New()
	pipeline, err := infill.New(infill.Options{
		Predictor:   t.plenary,
		Plenary:     t.plenary,
		Committee:   t.committee,
		Placeholder: t.masker.Placeholder(),
		Estimator:   est,
	})
	if err != nil {
		return nil, 0, err
	}

	records, err := pipeline.Run(sample, masked)
	if err != nil {
		return nil, 0, err
	}

	ppl, err := est.Perplexity()
	if err != nil {
		return nil, 0, err
	}
	return records, ppl, nil
}

// ExtractCollocations runs one collocation extraction over the documents.
func ExtractCollocations(docs []ingest.Document, order, minCount, k int, metric colloc.Metric) ([]colloc.Result, error) {
	counter, err := colloc.NewCounter(order)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		for _, sentence := range doc.Sentences {
			counter.AddSentence(doc.Name, sentence)
		}
	}
	return counter.Top(metric, minCount, k)
}
