// Package results persists recorded near-optima to SQLite so runs can be
// inspected and compared after the fact.
package results

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/XiaoConstantine/stun-go/pkg/sampler"
)

// Store writes optimum records to a SQLite database, one row per recorded
// near-optimum plus one row per run summary.
type Store struct {
	db *sql.DB
}

// Open creates (or opens) the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if path == "" {
		path = "stun_results.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)

	store := &Store{db: db}
	if err := store.initDB(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) initDB() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		abs_min REAL NOT NULL,
		recorded_count INTEGER NOT NULL,
		iterations INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS optima (
		run_id TEXT NOT NULL,
		trajectory INTEGER NOT NULL,
		iteration INTEGER NOT NULL,
		score REAL NOT NULL,
		energy REAL NOT NULL,
		uncertainty REAL NOT NULL,
		sequence TEXT NOT NULL,
		new_best INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_optima_run ON optima(run_id);
	CREATE INDEX IF NOT EXISTS idx_optima_score ON optima(run_id, score);
	`

	_, err := s.db.Exec(query)
	return err
}

// SaveRun persists a run summary and every recorded optimum. New-best rows
// are marked so the strict-improvement history can be reconstructed.
func (s *Store) SaveRun(ctx context.Context, res *sampler.Results) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, abs_min, recorded_count, iterations, created_at) VALUES (?, ?, ?, ?, ?)`,
		res.RunID, res.AbsMin, res.RecordedCount, res.Iterations, time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run summary: %w", err)
	}

	insert := `INSERT INTO optima (run_id, trajectory, iteration, score, energy, uncertainty, sequence, new_best)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	for traj, recs := range res.Optima {
		newBestIters := make(map[int]bool, len(res.NewBests[traj]))
		for _, rec := range res.NewBests[traj] {
			newBestIters[rec.Iteration] = true
		}
		for _, rec := range recs {
			_, err = tx.ExecContext(ctx, insert,
				res.RunID, traj, rec.Iteration, rec.Score, rec.Energy, rec.Uncertainty,
				rec.Sequence.Key(), boolToInt(newBestIters[rec.Iteration]),
			)
			if err != nil {
				return fmt.Errorf("failed to insert optimum record: %w", err)
			}
		}
	}

	return tx.Commit()
}

// CountRun returns the number of persisted optimum rows for a run.
func (s *Store) CountRun(ctx context.Context, runID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM optima WHERE run_id = ?`, runID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count optima: %w", err)
	}
	return count, nil
}

// BestForRun returns the lowest persisted score and its sequence for a run.
func (s *Store) BestForRun(ctx context.Context, runID string) (score float64, sequence string, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT score, sequence FROM optima WHERE run_id = ? ORDER BY score ASC LIMIT 1`, runID,
	).Scan(&score, &sequence)
	if err == sql.ErrNoRows {
		return 0, "", fmt.Errorf("no optima recorded for run %s", runID)
	}
	if err != nil {
		return 0, "", fmt.Errorf("failed to query best optimum: %w", err)
	}
	return score, sequence, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
