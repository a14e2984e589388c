package db

// schema defines the run-history tables: one row per count run plus that
// run's stored top keys.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    input TEXT NOT NULL,
    field TEXT NOT NULL DEFAULT '',
    extractor TEXT NOT NULL,
    policy TEXT NOT NULL,
    workers INTEGER NOT NULL,
    processed INTEGER NOT NULL,
    malformed INTEGER NOT NULL,
    distinct_keys INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS run_keys (
    run_key_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    rank INTEGER NOT NULL,
    key TEXT NOT NULL,
    count INTEGER NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE (run_id, rank)
);

CREATE INDEX IF NOT EXISTS idx_run_keys_run_id ON run_keys(run_id);
`
