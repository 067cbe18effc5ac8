package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nvandessel/hiveum/internal/report"
	"github.com/nvandessel/hiveum/internal/sim"
)

// timeLayout is fixed width so started_at sorts lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRunStore implements RunStore on a SQLite database file.
type SQLiteRunStore struct {
	mu     sync.Mutex
	db     *sql.DB
	dbPath string
}

var _ RunStore = (*SQLiteRunStore)(nil)

// NewSQLiteRunStore opens (or creates) the database at dbPath.
func NewSQLiteRunStore(dbPath string) (*SQLiteRunStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite works best with single writer

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteRunStore{db: db, dbPath: dbPath}, nil
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// SaveRun writes the run, its destructions and surviving graph in one transaction.
func (s *SQLiteRunStore) SaveRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return fmt.Errorf("run ID is required")
	}
	sum := run.Report.Summary
	if sum == nil {
		return fmt.Errorf("run %s has no summary", run.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, map_path, ants, workers, state, ticks, elapsed_ms, alive, destroyed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC().Format(timeLayout), run.MapPath, run.Ants, run.Workers,
		sum.State, sum.Ticks, sum.ElapsedMS, sum.Alive, sum.Destroyed)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for i, d := range run.Report.Destructions {
		antsJSON, err := json.Marshal(d.Ants)
		if err != nil {
			return fmt.Errorf("failed to encode ants: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO destructions (run_id, seq, tick, colony, ants) VALUES (?, ?, ?, ?, ?)`,
			run.ID, i, d.Tick, d.Colony, string(antsJSON)); err != nil {
			return fmt.Errorf("failed to insert destruction of %s: %w", d.Colony, err)
		}
	}

	for _, c := range run.Report.Colonies {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO colonies (run_id, name) VALUES (?, ?)`, run.ID, c.Name); err != nil {
			return fmt.Errorf("failed to insert colony %s: %w", c.Name, err)
		}
		for i, t := range c.Tunnels {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO tunnels (run_id, colony, seq, direction, dest) VALUES (?, ?, ?, ?, ?)`,
				run.ID, c.Name, i, t.Direction, t.Dest); err != nil {
				return fmt.Errorf("failed to insert tunnel %s %s: %w", c.Name, t.Direction, err)
			}
		}
	}

	return tx.Commit()
}

// GetRun loads a run and its report. Returns ErrRunNotFound for unknown IDs.
func (s *SQLiteRunStore) GetRun(ctx context.Context, id string) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run := Run{ID: id}
	var startedAt string
	sum := &report.Summary{}
	err := s.db.QueryRowContext(ctx, `
		SELECT started_at, map_path, ants, workers, state, ticks, elapsed_ms, alive, destroyed
		FROM runs WHERE id = ?`, id).Scan(
		&startedAt, &run.MapPath, &run.Ants, &run.Workers,
		&sum.State, &sum.Ticks, &sum.ElapsedMS, &sum.Alive, &sum.Destroyed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	run.StartedAt, err = time.Parse(timeLayout, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse started_at: %w", err)
	}
	run.Report.Summary = sum

	if run.Report.Destructions, err = s.loadDestructions(ctx, id); err != nil {
		return nil, err
	}
	if run.Report.Colonies, err = s.loadColonies(ctx, id); err != nil {
		return nil, err
	}
	return &run, nil
}

func (s *SQLiteRunStore) loadDestructions(ctx context.Context, id string) ([]sim.Destruction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tick, colony, ants FROM destructions WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query destructions: %w", err)
	}
	defer rows.Close()

	var out []sim.Destruction
	for rows.Next() {
		var d sim.Destruction
		var antsJSON string
		if err := rows.Scan(&d.Tick, &d.Colony, &antsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan destruction: %w", err)
		}
		if err := json.Unmarshal([]byte(antsJSON), &d.Ants); err != nil {
			return nil, fmt.Errorf("failed to decode ants: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLiteRunStore) loadColonies(ctx context.Context, id string) ([]report.Colony, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.name, t.direction, t.dest
		FROM colonies c
		LEFT JOIN tunnels t ON t.run_id = c.run_id AND t.colony = c.name
		WHERE c.run_id = ?
		ORDER BY c.name, t.seq`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query colonies: %w", err)
	}
	defer rows.Close()

	colonies := make([]report.Colony, 0)
	for rows.Next() {
		var name string
		var dir, dest sql.NullString
		if err := rows.Scan(&name, &dir, &dest); err != nil {
			return nil, fmt.Errorf("failed to scan colony: %w", err)
		}
		if n := len(colonies); n == 0 || colonies[n-1].Name != name {
			colonies = append(colonies, report.Colony{Name: name, Tunnels: []report.Tunnel{}})
		}
		if dir.Valid {
			last := &colonies[len(colonies)-1]
			last.Tunnels = append(last.Tunnels, report.Tunnel{Direction: dir.String, Dest: dest.String})
		}
	}
	return colonies, rows.Err()
}

// ListRuns returns run summaries, newest first.
func (s *SQLiteRunStore) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		SELECT id, started_at, map_path, ants, state, ticks, elapsed_ms, alive, destroyed
		FROM runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var rs RunSummary
		var startedAt string
		if err := rows.Scan(&rs.ID, &startedAt, &rs.MapPath, &rs.Ants,
			&rs.Summary.State, &rs.Summary.Ticks, &rs.Summary.ElapsedMS, &rs.Summary.Alive, &rs.Summary.Destroyed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if rs.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, fmt.Errorf("failed to parse started_at: %w", err)
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLiteRunStore) Close() error {
	return s.db.Close()
}
