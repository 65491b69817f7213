// plenum-import loads parliamentary sentence records from a JSONL file
// into a SQLite corpus database.
package main

import (
	"context"
	"flag"
	"strings"

	"github.com/hansardlab/plenum/internal/htmltext"
	"github.com/hansardlab/plenum/internal/logger"
	"github.com/hansardlab/plenum/pkg/plenum/ingest"
	"github.com/hansardlab/plenum/pkg/plenum/store"
	"github.com/hansardlab/plenum/pkg/plenum/store/sqlitestore"
)

func main() {
	var (
		input     = flag.String("input", "", "Path to JSONL records file (required)")
		dbPath    = flag.String("db", "", "Path to SQLite corpus database (required)")
		stripHTML = flag.Bool("strip-html", false, "Strip HTML markup from sentence text")
	)
	flag.Parse()

	log := logger.New("plenum-import")

	if *input == "" {
		log.Fatal("--input required")
	}
	if *dbPath == "" {
		log.Fatal("--db required")
	}

	ctx := context.Background()

	records, err := ingest.LoadJSONL(*input)
	if err != nil {
		log.Fatal("load records", "err", err)
	}
	log.Info("loaded records", "count", len(records), "file", *input)

	s, err := sqlitestore.Open(ctx, *dbPath)
	if err != nil {
		log.Fatal("open corpus database", "err", err)
	}
	defer s.Close()

	imported, dropped := 0, 0
	for _, rec := range records {
		reg, err := rec.Register()
		if err != nil {
			log.Warn("dropping record with unknown protocol type", "protocol", rec.Protocol, "type", rec.Type)
			dropped++
			continue
		}

		sentence := rec.Sentence
		if *stripHTML && strings.Contains(sentence, "<") {
			sentence = htmltext.Extract(sentence)
		}

		p := store.Protocol{Name: rec.Protocol, Register: reg, KnessetNumber: rec.KnessetNumber}
		if err := s.AppendSentences(ctx, p, []string{sentence}); err != nil {
			log.Fatal("append sentence", "protocol", rec.Protocol, "err", err)
		}
		imported++
	}

	log.Info("import complete", "imported", imported, "dropped", dropped, "db", *dbPath)
}
