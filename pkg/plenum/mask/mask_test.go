package mask

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/hansardlab/plenum/pkg/plenum/internalerr"
)

func countPlaceholders(s, placeholder string) int {
	n := 0
	for _, tok := range strings.Fields(s) {
		if tok == placeholder {
			n++
		}
	}
	return n
}

func TestNewRejectsBadRatio(t *testing.T) {
	for _, ratio := range []float64{0, -0.5, 1.5} {
		if _, err := New(1, ratio, ""); !errors.Is(err, internalerr.ErrInvalidInput) {
			t.Errorf("New(ratio=%v) error = %v, want ErrInvalidInput", ratio, err)
		}
	}
}

func TestMaskCountFloorWithMinimum(t *testing.T) {
	m, err := New(42, 0.1, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	twenty := strings.Repeat("w ", 19) + "w"
	masked, err := m.MaskSentence(twenty)
	if err != nil {
		t.Fatalf("MaskSentence: %v", err)
	}
	if got := countPlaceholders(masked, DefaultPlaceholder); got != 2 {
		t.Errorf("20-token sentence at x=0.1 masked %d tokens, want 2", got)
	}

	masked, err = m.MaskSentence("a b c")
	if err != nil {
		t.Fatalf("MaskSentence: %v", err)
	}
	if got := countPlaceholders(masked, DefaultPlaceholder); got != 1 {
		t.Errorf("3-token sentence at x=0.1 masked %d tokens, want 1", got)
	}
}

func TestMaskPreservesLengthAndUnmaskedTokens(t *testing.T) {
	m, err := New(7, 0.5, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	original := "the committee will now vote"
	masked, err := m.MaskSentence(original)
	if err != nil {
		t.Fatalf("MaskSentence: %v", err)
	}

	origTokens := strings.Fields(original)
	maskedTokens := strings.Fields(masked)
	if len(maskedTokens) != len(origTokens) {
		t.Fatalf("token count changed: %d -> %d", len(origTokens), len(maskedTokens))
	}
	for i, tok := range maskedTokens {
		if tok != DefaultPlaceholder && tok != origTokens[i] {
			t.Errorf("position %d: unmasked token changed %q -> %q", i, origTokens[i], tok)
		}
	}
}

func TestMaskEmptySentence(t *testing.T) {
	m, err := New(1, 0.1, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := m.MaskSentence("   "); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("MaskSentence on empty input error = %v, want ErrInvalidInput", err)
	}
}

func TestMaskReproducibleAcrossRuns(t *testing.T) {
	sentences := []string{
		"the chair opened the session",
		"members of the committee objected loudly",
		"the plenary adjourned at noon",
	}

	m1, _ := New(99, 0.3, "")
	m2, _ := New(99, 0.3, "")

	out1, err := m1.MaskSentences(sentences)
	if err != nil {
		t.Fatalf("MaskSentences: %v", err)
	}
	out2, err := m2.MaskSentences(sentences)
	if err != nil {
		t.Fatalf("MaskSentences: %v", err)
	}

	if !reflect.DeepEqual(out1, out2) {
		t.Errorf("same seed produced different maskings:\n%v\n%v", out1, out2)
	}
}

func TestCustomPlaceholder(t *testing.T) {
	m, _ := New(3, 1, "<mask>")
	masked, err := m.MaskSentence("a b")
	if err != nil {
		t.Fatalf("MaskSentence: %v", err)
	}
	if masked != "<mask> <mask>" {
		t.Errorf("full masking = %q, want all placeholders", masked)
	}
}

func TestSamplePreservesOrder(t *testing.T) {
	sentences := []string{"s0", "s1", "s2", "s3", "s4", "s5"}
	m, _ := New(11, 0.1, "")

	sample := m.Sample(sentences, 3)
	if len(sample) != 3 {
		t.Fatalf("Sample returned %d sentences, want 3", len(sample))
	}

	last := -1
	for _, s := range sample {
		idx := -1
		for i, orig := range sentences {
			if s == orig {
				idx = i
				break
			}
		}
		if idx <= last {
			t.Fatalf("sample %v does not preserve input order", sample)
		}
		last = idx
	}
}

func TestSampleClampsToInput(t *testing.T) {
	sentences := []string{"a", "b"}
	m, _ := New(5, 0.1, "")
	if got := m.Sample(sentences, 10); !reflect.DeepEqual(got, sentences) {
		t.Errorf("Sample beyond input = %v, want original slice", got)
	}
}
