// Package store keeps an optional history of completed analyses in DuckDB.
// The request pipeline itself holds records in memory only; the web layer
// saves here after a run is accepted.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb/v2"

	"github.com/prasitlab/disaster-lens/internal/model"
)

// Store manages analysis history persistence via DuckDB.
type Store struct {
	DB      *sql.DB
	DataDir string
}

// New opens (or creates) a DuckDB database in the given data directory.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "disaster-lens.duckdb")
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening duckdb: %w", err)
	}

	s := &Store{DB: db, DataDir: dataDir}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			event_type TEXT NOT NULL,
			location TEXT NOT NULL,
			event_type_en TEXT NOT NULL,
			location_en TEXT NOT NULL,
			model TEXT NOT NULL,
			parsed_count INTEGER NOT NULL,
			events TEXT NOT NULL,
			raw_text TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("executing migration: %w", err)
		}
	}

	return nil
}

// SaveAnalysis persists one completed analysis.
func (s *Store) SaveAnalysis(a *model.Analysis) error {
	events, err := json.Marshal(a.Events)
	if err != nil {
		return fmt.Errorf("encoding events: %w", err)
	}

	_, err = s.DB.Exec(`INSERT OR REPLACE INTO analyses
		(id, event_type, location, event_type_en, location_en, model, parsed_count, events, raw_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.EventType, a.Location, a.EventTypeEN, a.LocationEN,
		a.Model, a.ParsedCount, string(events), a.RawText, a.CreatedAt)
	return err
}

// ListAnalyses returns analysis summaries, newest first. Events and raw text
// are not loaded; use ReadAnalysis for the full record.
func (s *Store) ListAnalyses() ([]model.Analysis, error) {
	rows, err := s.DB.Query(`SELECT id, event_type, location, event_type_en, location_en, model, parsed_count, created_at
		FROM analyses ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Analysis
	for rows.Next() {
		var a model.Analysis
		if err := rows.Scan(&a.ID, &a.EventType, &a.Location, &a.EventTypeEN, &a.LocationEN,
			&a.Model, &a.ParsedCount, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

// ReadAnalysis loads one analysis including its events and raw text.
func (s *Store) ReadAnalysis(id string) (*model.Analysis, error) {
	var a model.Analysis
	var events string
	err := s.DB.QueryRow(`SELECT id, event_type, location, event_type_en, location_en, model, parsed_count, events, raw_text, created_at
		FROM analyses WHERE id = ?`, id).
		Scan(&a.ID, &a.EventType, &a.Location, &a.EventTypeEN, &a.LocationEN,
			&a.Model, &a.ParsedCount, &events, &a.RawText, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(events), &a.Events); err != nil {
		return nil, fmt.Errorf("decoding events for %s: %w", id, err)
	}

	return &a, nil
}

// AnalysisCount reports how many analyses have been saved.
func (s *Store) AnalysisCount() int {
	var n int
	s.DB.QueryRow("SELECT COUNT(*) FROM analyses").Scan(&n)
	return n
}
