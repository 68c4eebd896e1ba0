package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS batch_runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at  INTEGER NOT NULL,
			finished_at INTEGER NOT NULL,
			total       INTEGER,
			succeeded   INTEGER,
			failed      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_batch_started ON batch_runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS company_updates (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			symbol     TEXT,
			name       TEXT,
			status     TEXT,
			error      TEXT,
			json_path  TEXT,
			excel_path TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_company_ts ON company_updates(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_company_symbol ON company_updates(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordBatch(run *BatchRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO batch_runs
		(started_at, finished_at, total, succeeded, failed)
		VALUES (?,?,?,?,?)`,
		run.StartedAt.Unix(), run.FinishedAt.Unix(),
		run.Total, run.Succeeded, run.Failed,
	)
	return err
}

func (r *SQLiteRecorder) RecordCompany(upd *CompanyUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO company_updates
		(timestamp, symbol, name, status, error, json_path, excel_path)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), upd.Symbol, upd.Name, upd.Status,
		upd.Error, upd.JSONPath, upd.ExcelPath,
	)
	return err
}

func (r *SQLiteRecorder) RecentBatches(n int) ([]BatchRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT started_at, finished_at, total, succeeded, failed
		FROM batch_runs ORDER BY started_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []BatchRun
	for rows.Next() {
		var run BatchRun
		var started, finished int64
		if err := rows.Scan(&started, &finished, &run.Total, &run.Succeeded, &run.Failed); err != nil {
			return nil, err
		}
		run.StartedAt = time.Unix(started, 0)
		run.FinishedAt = time.Unix(finished, 0)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
