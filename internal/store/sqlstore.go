package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// currentSchemaVersion is the target schema version for this build.
const currentSchemaVersion = schemaVersionV1

// SqlStore implements Store with SQLite.
type SqlStore struct {
	db *sql.DB
}

// Open opens or creates a SQLite DB at path and runs migrations.
// Creates the parent directory (e.g. .deepscan) if it does not exist.
func Open(path string) (*SqlStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &SqlStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SqlStore) migrate() error {
	if _, err := s.db.Exec(schemaV1); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	var v int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", currentSchemaVersion); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if v != currentSchemaVersion {
		return fmt.Errorf("unsupported schema version %d (this build expects %d)", v, currentSchemaVersion)
	}
	return nil
}

// Close releases the database handle.
func (s *SqlStore) Close() error { return s.db.Close() }

// SaveRun implements Store.
func (s *SqlStore) SaveRun(run *Run) (int64, error) {
	if run == nil {
		return 0, errors.New("run is nil")
	}
	preds, err := json.Marshal(run.Predictions)
	if err != nil {
		return 0, fmt.Errorf("encode predictions: %w", err)
	}
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	res, err := s.db.Exec(
		`INSERT INTO runs(created_at, source, file_name, file_size, media_type, top_label, top_percent, tier, predictions)
		 VALUES(?,?,?,?,?,?,?,?,?)`,
		createdAt.UTC().Format(time.RFC3339), run.Source, run.FileName, run.FileSize,
		run.MediaType, run.TopLabel, run.TopPercent, run.Tier, string(preds),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}
	run.ID = id
	return id, nil
}

// GetRun implements Store.
func (s *SqlStore) GetRun(id int64) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, created_at, source, file_name, file_size, media_type, top_label, top_percent, tier, predictions
		 FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run #%d not found", id)
	}
	return run, err
}

// ListRuns implements Store.
func (s *SqlStore) ListRuns(limit int) ([]*Run, error) {
	q := `SELECT id, created_at, source, file_name, file_size, media_type, top_label, top_percent, tier, predictions
	      FROM runs ORDER BY id DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(q+" LIMIT ?", limit)
	} else {
		rows, err = s.db.Query(q)
	}
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var createdAt, preds string
	err := row.Scan(&run.ID, &createdAt, &run.Source, &run.FileName, &run.FileSize,
		&run.MediaType, &run.TopLabel, &run.TopPercent, &run.Tier, &preds)
	if err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		run.CreatedAt = t
	}
	if err := json.Unmarshal([]byte(preds), &run.Predictions); err != nil {
		return nil, fmt.Errorf("decode predictions for run #%d: %w", run.ID, err)
	}
	return &run, nil
}
