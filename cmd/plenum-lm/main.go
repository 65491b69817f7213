// plenum-lm trains the committee and plenary trigram models, masks a
// sample of plenary sentences, fills the masked positions, scores the
// results under both models and writes the infill report.
package main

import (
	"context"
	"flag"
	"os"

	charmlog "github.com/charmbracelet/log"

	"github.com/hansardlab/plenum/internal/logger"
	"github.com/hansardlab/plenum/pkg/plenum"
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
		output     = flag.String("output", "infill_results.txt", "Path to the infill report")
		export     = flag.String("export", "", "Optional msgpack export of infill records")
	)
	flag.Parse()

	log := logger.New("plenum-lm")

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

	committee, plenary := loadRegisters(log, *input, *dbPath)
	log.Info("corpus loaded", "committee", len(committee), "plenary", len(plenary))

	tk, err := plenum.New(plenum.Options{
		CommitteeSentences: committee,
		PlenarySentences:   plenary,
		Weights:            cfg.Weights.Weights(),
		MaskRatio:          cfg.Mask.Ratio,
		Placeholder:        cfg.Mask.Placeholder,
		Seed:               cfg.Seed,
	})
	if err != nil {
		log.Fatal("train models", "err", err)
	}

	records, ppl, err := tk.MaskAndFill(plenary, cfg.Mask.SampleSize)
	if err != nil {
		log.Fatal("mask and fill", "err", err)
	}
	log.Info("infill complete", "sentences", len(records), "perplexity", ppl)

	runID := report.NewGenerator().NewRunID()

	f, err := os.Create(*output)
	if err != nil {
		log.Fatal("create report", "path", *output, "err", err)
	}
	defer f.Close()

	if err := report.WriteInfill(f, runID, records, ppl); err != nil {
		log.Fatal("write report", "err", err)
	}
	log.Info("report written", "path", *output, "run", runID)

	if *export != "" {
		if err := report.ExportRecords(*export, records); err != nil {
			log.Fatal("export records", "err", err)
		}
		log.Info("records exported", "path", *export)
	}
}

// loadRegisters returns the committee and plenary sentence lists from
// either a JSONL file or a SQLite corpus database.
func loadRegisters(log *charmlog.Logger, input, dbPath string) (committee, plenary []string) {
	if input != "" {
		records, err := ingest.LoadJSONL(input)
		if err != nil {
			log.Fatal("load records", "err", err)
		}
		groups := ingest.GroupByRegister(records)
		return groups[ingest.RegisterCommittee], groups[ingest.RegisterPlenary]
	}

	ctx := context.Background()
	s, err := sqlitestore.Open(ctx, dbPath)
	if err != nil {
		log.Fatal("open corpus database", "err", err)
	}
	defer s.Close()

	if committee, err = s.Sentences(ctx, ingest.RegisterCommittee); err != nil {
		log.Fatal("load committee sentences", "err", err)
	}
	if plenary, err = s.Sentences(ctx, ingest.RegisterPlenary); err != nil {
		log.Fatal("load plenary sentences", "err", err)
	}
	return committee, plenary
}
