// plenum-colloc extracts ranked collocations per n-gram order, metric
// and register, and writes the combined report.
package main

import (
	"context"
	"flag"
	"os"

	charmlog "github.com/charmbracelet/log"

	"github.com/hansardlab/plenum/internal/logger"
	"github.com/hansardlab/plenum/pkg/plenum"
	"github.com/hansardlab/plenum/pkg/plenum/colloc"
	"github.com/hansardlab/plenum/pkg/plenum/config"
	"github.com/hansardlab/plenum/pkg/plenum/ingest"
	"github.com/hansardlab/plenum/pkg/plenum/report"
	"github.com/hansardlab/plenum/pkg/plenum/store/sqlitestore"
)

func main() {
	var (
		input      = flag.String("input", "", "Path to JSONL records file")
		dbPath     = flag.String("db", "", "Path to SQLite corpus database")
		configPath = flag.String("config", "", "Path to YAML config (optional)")
		output     = flag.String("output", "collocations.txt", "Path to the collocation report")
	)
	flag.Parse()

	log := logger.New("plenum-colloc")

	if (*input == "") == (*dbPath == "") {
		log.Fatal("exactly one of --input or --db required")
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal("load config", "err", err)
		}
	}

	docs := loadDocuments(log, *input, *dbPath)

	var sections []report.CollocationSection
	for _, spec := range cfg.Collocations {
		metric, err := colloc.ParseMetric(spec.Metric)
		if err != nil {
			log.Fatal("bad collocation spec", "err", err)
		}

		for _, reg := range []ingest.Register{ingest.RegisterCommittee, ingest.RegisterPlenary} {
			results, err := plenum.ExtractCollocations(docs[reg], spec.Order, spec.MinCount, spec.TopK, metric)
			if err != nil {
				log.Fatal("extract collocations", "order", spec.Order, "metric", metric, "err", err)
			}
			sections = append(sections, report.CollocationSection{
				Order:    spec.Order,
				Metric:   metric,
				Register: reg,
				Results:  results,
			})
		}
	}

	runID := report.NewGenerator().NewRunID()

	f, err := os.Create(*output)
	if err != nil {
		log.Fatal("create report", "path", *output, "err", err)
	}
	defer f.Close()

	if err := report.WriteCollocations(f, runID, sections); err != nil {
		log.Fatal("write report", "err", err)
	}
	log.Info("report written", "path", *output, "run", runID, "sections", len(sections))
}

// loadDocuments returns per-register document groupings from either a
// JSONL file or a SQLite corpus database.
func loadDocuments(log *charmlog.Logger, input, dbPath string) map[ingest.Register][]ingest.Document {
	out := make(map[ingest.Register][]ingest.Document, 2)

	if input != "" {
		records, err := ingest.LoadJSONL(input)
		if err != nil {
			log.Fatal("load records", "err", err)
		}
		for _, reg := range []ingest.Register{ingest.RegisterCommittee, ingest.RegisterPlenary} {
			out[reg] = ingest.GroupByDocument(records, reg)
		}
		return out
	}

	ctx := context.Background()
	s, err := sqlitestore.Open(ctx, dbPath)
	if err != nil {
		log.Fatal("open corpus database", "err", err)
	}
	defer s.Close()

	for _, reg := range []ingest.Register{ingest.RegisterCommittee, ingest.RegisterPlenary} {
		docs, err := s.Documents(ctx, reg)
		if err != nil {
			log.Fatal("load documents", "register", reg, "err", err)
		}
		out[reg] = docs
	}
	return out
}
