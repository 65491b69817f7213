// Package ingest loads parliamentary sentence records and groups them
// into the corpora the modeling packages consume.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/hansardlab/plenum/pkg/plenum/internalerr"
)

// Register is the corpus partition a protocol belongs to.
type Register string

const (
	RegisterCommittee Register = "committee"
	RegisterPlenary   Register = "plenary"
)

// ParseRegister converts a record/flag string into a Register.
func ParseRegister(s string) (Register, error) {
	switch Register(strings.ToLower(strings.TrimSpace(s))) {
	case RegisterCommittee:
		return RegisterCommittee, nil
	case RegisterPlenary:
		return RegisterPlenary, nil
	}
	return "", fmt.Errorf("unknown register %q: %w", s, internalerr.ErrInvalidInput)
}

// Record is one sentence of one protocol, as found in the source JSONL.
type Record struct {
	Protocol      string `json:"protocol_name"`
	KnessetNumber int    `json:"knesset_number"`
	Type          string `json:"protocol_type"`
	Sentence      string `json:"sentence_text"`
}

// Register parses the record's protocol type.
func (r Record) Register() (Register, error) {
	return ParseRegister(r.Type)
}

// LoadJSONL reads one record per line, skipping malformed lines with a
// warning. Zero valid records is an error.
func LoadJSONL(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var records []Record
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			log.Warn("skipping malformed record", "file", path, "line", i+1, "err", err)
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no valid records in %s: %w", path, internalerr.ErrEmptyCorpus)
	}
	return records, nil
}

// Document is a named protocol with its sentences in record order. It is
// the unit of document-frequency statistics for collocations.
type Document struct {
	Name      string
	Sentences []string
}

// GroupByRegister splits records into per-register sentence lists,
// preserving record order. Records with an unknown protocol type are
// dropped with a warning.
func GroupByRegister(records []Record) map[Register][]string {
	out := make(map[Register][]string, 2)
	for _, rec := range records {
		reg, err := rec.Register()
		if err != nil {
			log.Warn("dropping record with unknown protocol type", "protocol", rec.Protocol, "type", rec.Type)
			continue
		}
		out[reg] = append(out[reg], rec.Sentence)
	}
	return out
}

// GroupByDocument collects the sentences of one register into per-protocol
// documents, in order of each protocol's first appearance.
func GroupByDocument(records []Record, reg Register) []Document {
	index := make(map[string]int)
	var docs []Document

	for _, rec := range records {
		r, err := rec.Register()
		if err != nil || r != reg {
			continue
		}

		i, ok := index[rec.Protocol]
		if !ok {
			i = len(docs)
			index[rec.Protocol] = i
			docs = append(docs, Document{Name: rec.Protocol})
		}
		docs[i].Sentences = append(docs[i].Sentences, rec.Sentence)
	}
	return docs
}
