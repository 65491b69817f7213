// Package sqlitestore is a SQLite-backed store.Store implementation.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/hansardlab/plenum/pkg/plenum/ingest"
	"github.com/hansardlab/plenum/pkg/plenum/store"
)

type sqliteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) a SQLite corpus database with WAL mode
// enabled.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS protocols (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT UNIQUE NOT NULL,
	register TEXT NOT NULL,
	knesset_number INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS sentences (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	protocol_id INTEGER NOT NULL,
	text TEXT NOT NULL,
	FOREIGN KEY(protocol_id) REFERENCES protocols(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_sentences_protocol ON sentences(protocol_id);
CREATE INDEX IF NOT EXISTS idx_protocols_register ON protocols(register);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// AppendSentences implements store.Store.
func (s *sqliteStore) AppendSentences(ctx context.Context, p store.Protocol, sentences []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO protocols (name, register, knesset_number) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET register = excluded.register, knesset_number = excluded.knesset_number`,
		p.Name, string(p.Register), p.KnessetNumber); err != nil {
		return fmt.Errorf("upsert protocol %s: %w", p.Name, err)
	}

	var protocolID int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM protocols WHERE name = ?`, p.Name).Scan(&protocolID); err != nil {
		return fmt.Errorf("lookup protocol %s: %w", p.Name, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO sentences (protocol_id, text) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, sent := range sentences {
		if _, err := stmt.ExecContext(ctx, protocolID, sent); err != nil {
			return fmt.Errorf("insert sentence: %w", err)
		}
	}
	return tx.Commit()
}

// Protocols implements store.Store.
func (s *sqliteStore) Protocols(ctx context.Context, reg ingest.Register) ([]store.Protocol, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, register, knesset_number FROM protocols
		WHERE register = ? ORDER BY id`, string(reg))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Protocol
	for rows.Next() {
		var p store.Protocol
		var register string
		if err := rows.Scan(&p.Name, &register, &p.KnessetNumber); err != nil {
			return nil, err
		}
		p.Register = ingest.Register(register)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Sentences implements store.Store.
func (s *sqliteStore) Sentences(ctx context.Context, reg ingest.Register) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.text FROM sentences s
		JOIN protocols p ON p.id = s.protocol_id
		WHERE p.register = ? ORDER BY s.id`, string(reg))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, rows.Err()
}

// Documents implements store.Store.
func (s *sqliteStore) Documents(ctx context.Context, reg ingest.Register) ([]ingest.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.name, s.text FROM sentences s
		JOIN protocols p ON p.id = s.protocol_id
		WHERE p.register = ? ORDER BY s.id`, string(reg))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	index := make(map[string]int)
	var docs []ingest.Document
	for rows.Next() {
		var name, text string
		if err := rows.Scan(&name, &text); err != nil {
			return nil, err
		}
		i, ok := index[name]
		if !ok {
			i = len(docs)
			index[name] = i
			docs = append(docs, ingest.Document{Name: name})
		}
		docs[i].Sentences = append(docs[i].Sentences, text)
	}
	return docs, rows.Err()
}
