// Package report renders collocation and infill results into the textual
// reports consumed downstream, and exports infill records in binary form
// for other tooling.
package report

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/hansardlab/plenum/pkg/plenum/colloc"
	"github.com/hansardlab/plenum/pkg/plenum/infill"
	"github.com/hansardlab/plenum/pkg/plenum/ingest"
)

// Generator stamps reports with unique run identifiers.
type Generator struct {
	entropy *ulid.MonotonicEntropy
}

// NewGenerator creates a run-ID generator.
func NewGenerator() *Generator {
	return &Generator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// NewRunID returns a fresh ULID string.
func (g *Generator) NewRunID() string {
	return ulid.MustNew(ulid.Now(), g.entropy).String()
}

// CollocationSection is one block of a collocation report.
type CollocationSection struct {
	Order    int
	Metric   colloc.Metric
	Register ingest.Register
	Results  []colloc.Result
}

func orderName(n int) string {
	switch n {
	case 2:
		return "Two-gram"
	case 3:
		return "Three-gram"
	case 4:
		return "Four-gram"
	}
	return fmt.Sprintf("%d-gram", n)
}

func registerName(reg ingest.Register) string {
	switch reg {
	case ingest.RegisterCommittee:
		return "Committee corpus"
	case ingest.RegisterPlenary:
		return "Plenary corpus"
	}
	return string(reg)
}

// WriteCollocations renders the sections in order, grouped the way the
// extraction was requested: n-gram order, then metric, then register.
func WriteCollocations(w io.Writer, runID string, sections []CollocationSection) error {
	if _, err := fmt.Fprintf(w, "Run: %s\n", runID); err != nil {
		return err
	}

	for _, sec := range sections {
		if _, err := fmt.Fprintf(w, "\n%s collocations (%s)\n%s:\n",
			orderName(sec.Order), sec.Metric, registerName(sec.Register)); err != nil {
			return err
		}
		for _, res := range sec.Results {
			var err error
			if sec.Metric == colloc.MetricFrequency {
				_, err = fmt.Fprintf(w, "%s -- %d\n", strings.Join(res.NGram, " "), int(res.Score))
			} else {
				_, err = fmt.Fprintf(w, "%s -- %.6f\n", strings.Join(res.NGram, " "), res.Score)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteInfill renders one block per filled sentence followed by the
// corpus-level perplexity of the predicted tokens.
func WriteInfill(w io.Writer, runID string, records []infill.Record, perplexity float64) error {
	if _, err := fmt.Fprintf(w, "Run: %s\n\n", runID); err != nil {
		return err
	}

	for _, rec := range records {
		_, err := fmt.Fprintf(w,
			"original_sentence: %s\n"+
				"masked_sentence: %s\n"+
				"plenary_sentence: %s\n"+
				"plenary_tokens: %s\n"+
				"probability of plenary sentence in plenary corpus: %.3f\n"+
				"probability of plenary sentence in committee corpus: %.3f\n\n",
			rec.Original, rec.Masked, rec.Filled,
			strings.Join(rec.Generated, ","),
			rec.PlenaryLogProb, rec.CommitteeLogProb)
		if err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "perplexity: %.3f\n", perplexity)
	return err
}

// ExportRecords writes the infill records to path as msgpack, for
// downstream consumers that want the structured form rather than the
// textual report.
func ExportRecords(path string, records []infill.Record) error {
	data, err := msgpack.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode infill records: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
