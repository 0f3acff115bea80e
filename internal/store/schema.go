package store

// Schema versions. Bump when the runs table changes shape and add a
// migration arm in migrate().
const (
	schemaVersionV1 = 1
)

const schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at  TEXT    NOT NULL,
	source      TEXT    NOT NULL,
	file_name   TEXT    NOT NULL,
	file_size   INTEGER NOT NULL,
	media_type  TEXT    NOT NULL,
	top_label   TEXT    NOT NULL,
	top_percent REAL    NOT NULL,
	tier        TEXT    NOT NULL,
	predictions TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
`
