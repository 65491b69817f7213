package colloc

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/hansardlab/plenum/pkg/plenum/internalerr"
)

func TestParseMetric(t *testing.T) {
	if m, err := ParseMetric("Frequency"); err != nil || m != MetricFrequency {
		t.Errorf("ParseMetric(Frequency) = %v, %v", m, err)
	}
	if m, err := ParseMetric("tfidf"); err != nil || m != MetricTFIDF {
		t.Errorf("ParseMetric(tfidf) = %v, %v", m, err)
	}
	if _, err := ParseMetric("pmi"); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("ParseMetric(pmi) error = %v, want ErrInvalidInput", err)
	}
}

func TestNewCounterRejectsBadOrder(t *testing.T) {
	if _, err := NewCounter(0); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("NewCounter(0) error = %v, want ErrInvalidInput", err)
	}
}

func TestShortSentencesContributeNothing(t *testing.T) {
	c, err := NewCounter(3)
	if err != nil {
		t.Fatalf("NewCounter: %v", err)
	}
	c.AddSentence("d1", "only two")

	if got := c.TopByFrequency(1, 10); len(got) != 0 {
		t.Errorf("trigrams from 2-token sentence = %v, want none", got)
	}
	// The document still counts toward the corpus size.
	if got := c.TotalDocs(); got != 1 {
		t.Errorf("TotalDocs = %d, want 1", got)
	}
}

func TestFrequencyRanking(t *testing.T) {
	c, _ := NewCounter(2)
	c.AddSentence("d1", "a b a b a b")
	c.AddSentence("d1", "c d c d")
	c.AddSentence("d2", "a b e f")

	results := c.TopByFrequency(2, 10)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3 (threshold filters singletons): %v", len(results), results)
	}
	// "a b" x4, "b a" x2, "c d" x2; "b a" was seen before "c d".
	wantOrder := [][]string{{"a", "b"}, {"b", "a"}, {"c", "d"}}
	for i, want := range wantOrder {
		if !reflect.DeepEqual(results[i].NGram, want) {
			t.Errorf("rank %d = %v, want %v", i, results[i].NGram, want)
		}
	}
	if results[0].Score != 4 {
		t.Errorf("top count = %v, want 4", results[0].Score)
	}
}

func TestFrequencySortedAndCapped(t *testing.T) {
	c, _ := NewCounter(2)
	c.AddSentence("d1", "a a a a a b b b c c")

	results := c.TopByFrequency(1, 2)
	if len(results) != 2 {
		t.Fatalf("got %d results, want cap of 2", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not non-increasing: %v", results)
		}
	}
}

func TestThresholdExcludesRareNGrams(t *testing.T) {
	c, _ := NewCounter(2)
	c.AddSentence("d1", "a b a b")
	c.AddSentence("d2", "x y")

	for _, r := range c.TopByFrequency(2, 10) {
		if strings.Join(r.NGram, " ") == "x y" {
			t.Errorf("n-gram below threshold leaked into results: %v", r)
		}
	}
}

func TestTFIDFKnownValue(t *testing.T) {
	c, _ := NewCounter(2)
	c.AddSentence("d1", "x y z")
	c.AddSentence("d2", "p q")
	c.AddSentence("d3", "r s")

	results := c.TopByTFIDF(1, 10)

	// "x y" occurs once among d1's two bigrams and in 1 of 3 documents:
	// tf = 1/2, idf = ln(3/2).
	want := 0.5 * math.Log(1.5)
	found := false
	for _, r := range results {
		if strings.Join(r.NGram, " ") == "x y" {
			found = true
			if math.Abs(r.Score-want) > 1e-12 {
				t.Errorf("tf-idf for (x,y) = %v, want %v", r.Score, want)
			}
		}
	}
	if !found {
		t.Fatalf("(x,y) missing from results %v", results)
	}
}

func TestTFIDFSortedNonIncreasing(t *testing.T) {
	c, _ := NewCounter(2)
	c.AddSentence("d1", "a b a b c d")
	c.AddSentence("d2", "a b e f e f")
	c.AddSentence("d3", "g h")

	results := c.TopByTFIDF(1, 10)
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("tf-idf results not non-increasing: %v", results)
		}
	}
}

func TestTFIDFDeterministicAcrossRuns(t *testing.T) {
	build := func() []Result {
		c, _ := NewCounter(2)
		c.AddSentence("d1", "a b c a b")
		c.AddSentence("d2", "b c a b")
		c.AddSentence("d3", "a b a b c")
		return c.TopByTFIDF(1, 10)
	}

	first := build()
	for i := 0; i < 5; i++ {
		if got := build(); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs:\n%v\n%v", i, got, first)
		}
	}
}

func TestTopDispatch(t *testing.T) {
	c, _ := NewCounter(2)
	c.AddSentence("d1", "a b a b")

	freq, err := c.Top(MetricFrequency, 1, 5)
	if err != nil || len(freq) == 0 {
		t.Errorf("Top(frequency) = %v, %v", freq, err)
	}
	tfidf, err := c.Top(MetricTFIDF, 1, 5)
	if err != nil || len(tfidf) == 0 {
		t.Errorf("Top(tfidf) = %v, %v", tfidf, err)
	}
	if _, err := c.Top(Metric("bogus"), 1, 5); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Top(bogus) error = %v, want ErrInvalidInput", err)
	}
}
