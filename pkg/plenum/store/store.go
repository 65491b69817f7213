// Package store defines persistence for the ingested corpus. The corpus,
// not trained model parameters, is what survives between runs: models are
// cheap to retrain from sentences.
package store

import (
	"context"

	"github.com/hansardlab/plenum/pkg/plenum/ingest"
)

// Protocol is one parliamentary protocol's metadata.
type Protocol struct {
	Name          string
	Register      ingest.Register
	KnessetNumber int
}

// Store persists protocol sentences and hands them back in insertion
// order, either as flat per-register sentence lists (language-model
// training) or grouped into documents (collocation extraction).
type Store interface {
	Close() error

	// AppendSentences upserts the protocol's metadata and appends its
	// sentences, preserving order across calls.
	AppendSentences(ctx context.Context, p Protocol, sentences []string) error

	// Protocols lists the register's protocols in first-appended order.
	Protocols(ctx context.Context, reg ingest.Register) ([]Protocol, error)

	// Sentences lists every sentence of the register in appended order.
	Sentences(ctx context.Context, reg ingest.Register) ([]string, error)

	// Documents groups the register's sentences by protocol, documents
	// ordered by first appearance.
	Documents(ctx context.Context, reg ingest.Register) ([]ingest.Document, error)
}
