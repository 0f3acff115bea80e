// Package store persists analysis runs so past results can be listed and
// re-exported. Only successful analyses are recorded.
package store

import "time"

// DefaultDBPath is the default relative path for the SQLite DB (per-workspace).
// Resolve against cwd; Open() creates the parent dir (e.g. .deepscan).
const DefaultDBPath = ".deepscan/deepscan.db"

// Run is one completed analysis: where the video came from, what it was,
// and what the service said about it.
type Run struct {
	ID          int64
	CreatedAt   time.Time
	Source      string // local path or Instagram URL as given by the user
	FileName    string
	FileSize    int64
	MediaType   string
	TopLabel    string
	TopPercent  float64
	Tier        string
	Predictions []float64 // raw vector, re-rankable for export
}

// Store is the persistence facade for analysis history.
// CLI code uses only this interface; implementation is SQLite or in-memory.
type Store interface {
	// SaveRun records a completed analysis and returns its ID.
	SaveRun(run *Run) (int64, error)
	// GetRun loads one run by ID.
	GetRun(id int64) (*Run, error)
	// ListRuns returns the most recent runs, newest first. limit <= 0 means all.
	ListRuns(limit int) ([]*Run, error)
	// Close releases the underlying resources.
	Close() error
}
