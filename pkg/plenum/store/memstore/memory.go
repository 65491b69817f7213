// Package memstore is an in-memory store.Store implementation, used by
// tests and by single-shot runs that never touch disk.
package memstore

import (
	"context"
	"sync"

	"github.com/hansardlab/plenum/pkg/plenum/ingest"
	"github.com/hansardlab/plenum/pkg/plenum/store"
)

type entry struct {
	protocol string
	sentence string
}

// Store keeps the corpus in insertion-ordered slices.
type Store struct {
	mu        sync.RWMutex
	protocols map[string]store.Protocol
	order     map[ingest.Register][]string // protocol names, first-appended order
	entries   map[ingest.Register][]entry
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		protocols: make(map[string]store.Protocol),
		order:     make(map[ingest.Register][]string),
		entries:   make(map[ingest.Register][]entry),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// AppendSentences implements store.Store.
func (s *Store) AppendSentences(ctx context.Context, p store.Protocol, sentences []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.protocols[p.Name]; !ok {
		s.order[p.Register] = append(s.order[p.Register], p.Name)
	}
	s.protocols[p.Name] = p

	for _, sent := range sentences {
		s.entries[p.Register] = append(s.entries[p.Register], entry{protocol: p.Name, sentence: sent})
	}
	return nil
}

// Protocols implements store.Store.
func (s *Store) Protocols(ctx context.Context, reg ingest.Register) ([]store.Protocol, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Protocol, 0, len(s.order[reg]))
	for _, name := range s.order[reg] {
		out = append(out, s.protocols[name])
	}
	return out, nil
}

// Sentences implements store.Store.
func (s *Store) Sentences(ctx context.Context, reg ingest.Register) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.entries[reg]))
	for _, e := range s.entries[reg] {
		out = append(out, e.sentence)
	}
	return out, nil
}

// Documents implements store.Store.
func (s *Store) Documents(ctx context.Context, reg ingest.Register) ([]ingest.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index := make(map[string]int)
	var docs []ingest.Document
	for _, e := range s.entries[reg] {
		i, ok := index[e.protocol]
		if !ok {
			i = len(docs)
			index[e.protocol] = i
			docs = append(docs, ingest.Document{Name: e.protocol})
		}
		docs[i].Sentences = append(docs[i].Sentences, e.sentence)
	}
	return docs, nil
}
