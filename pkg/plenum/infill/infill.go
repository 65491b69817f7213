// Package infill reconstructs masked sentences with a trained language
// model and records the evidence needed for downstream perplexity and
// cross-register scoring.
package infill

import (
	"fmt"
	"strings"

	"github.com/hansardlab/plenum/pkg/plenum/internalerr"
	"github.com/hansardlab/plenum/pkg/plenum/lm"
	"github.com/hansardlab/plenum/pkg/plenum/mask"
	"github.com/hansardlab/plenum/pkg/plenum/perplexity"
)

// Record captures one sentence's trip through the pipeline.
type Record struct {
	Original  string   `json:"original" msgpack:"original"`
	Masked    string   `json:"masked" msgpack:"masked"`
	Filled    string   `json:"filled" msgpack:"filled"`
	Generated []string `json:"generated_tokens" msgpack:"generated_tokens"`

	// Log-likelihood of the filled sentence under each register's model.
	PlenaryLogProb   float64 `json:"plenary_log_prob" msgpack:"plenary_log_prob"`
	CommitteeLogProb float64 `json:"committee_log_prob" msgpack:"committee_log_prob"`
}

// Options configures a Pipeline.
type Options struct {
	// Predictor fills masked positions; conventionally the plenary model.
	Predictor *lm.Model
	// Plenary and Committee score each filled sentence.
	Plenary   *lm.Model
	Committee *lm.Model
	// Placeholder marks masked positions; defaults to mask.DefaultPlaceholder.
	Placeholder string
	// Estimator receives every predicted token's log-probability. Optional.
	Estimator *perplexity.Estimator
}

// Pipeline fills masked sentences left to right. Earlier predictions
// become context for later ones; a position is never revisited.
type Pipeline struct {
	predictor   *lm.Model
	plenary     *lm.Model
	committee   *lm.Model
	placeholder string
	est         *perplexity.Estimator
}

// New creates a Pipeline from Options. All three models are required.
func New(opts Options) (*Pipeline, error) {
	if opts.Predictor == nil || opts.Plenary == nil || opts.Committee == nil {
		return nil, fmt.Errorf("infill pipeline requires predictor, plenary and committee models: %w", internalerr.ErrInvalidInput)
	}
	if opts.Placeholder == "" {
		opts.Placeholder = mask.DefaultPlaceholder
	}
	return &Pipeline{
		predictor:   opts.Predictor,
		plenary:     opts.Plenary,
		committee:   opts.Committee,
		placeholder: opts.Placeholder,
		est:         opts.Estimator,
	}, nil
}

// Fill resolves every masked position of one sentence and scores the
// result under both register models.
func (p *Pipeline) Fill(original, masked string) Record {
	work := strings.Fields(masked)

	var generated []string
	for i, tok := range work {
		if tok != p.placeholder {
			continue
		}

		context := strings.Join(work[:i], " ")
		final := i == len(work)-1
		predicted, logProb := p.predictor.NextToken(context, final)

		work[i] = predicted
		generated = append(generated, predicted)
		if p.est != nil {
			p.est.Add(logProb)
		}
	}

	filled := strings.Join(work, " ")
	return Record{
		Original:         original,
		Masked:           masked,
		Filled:           filled,
		Generated:        generated,
		PlenaryLogProb:   p.plenary.SentenceLogProb(filled),
		CommitteeLogProb: p.committee.SentenceLogProb(filled),
	}
}

// Run fills a batch of masked sentences paired with their originals, in
// input order.
func (p *Pipeline) Run(originals, masked []string) ([]Record, error) {
	if len(originals) != len(masked) {
		return nil, fmt.Errorf("originals (%d) and masked (%d) lengths differ: %w",
			len(originals), len(masked), internalerr.ErrInvalidInput)
	}

	records := make([]Record, 0, len(masked))
	for i := range masked {
		records = append(records, p.Fill(originals[i], masked[i]))
	}
	return records, nil
}
