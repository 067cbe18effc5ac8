// Package store defines the RunStore interface for recording finished
// simulation runs.
//
// A store is an output sink. Nothing read back from it ever seeds a new
// simulation.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/nvandessel/hiveum/internal/report"
)

// ErrRunNotFound is returned by GetRun for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// Run is a finished simulation and its final report.
type Run struct {
	ID        string        `json:"id"`
	StartedAt time.Time     `json:"started_at"`
	MapPath   string        `json:"map_path"`
	Ants      int           `json:"ants"`
	Workers   int           `json:"workers"`
	Report    report.Report `json:"report"`
}

// RunSummary is the listing view of a run.
type RunSummary struct {
	ID        string         `json:"id"`
	StartedAt time.Time      `json:"started_at"`
	MapPath   string         `json:"map_path"`
	Ants      int            `json:"ants"`
	Summary   report.Summary `json:"summary"`
}

// RunStore records finished runs.
type RunStore interface {
	// SaveRun stores run atomically. The run must carry a summary.
	SaveRun(ctx context.Context, run Run) error
	// GetRun returns a stored run or ErrRunNotFound.
	GetRun(ctx context.Context, id string) (*Run, error)
	// ListRuns returns runs newest first, at most limit (0 = all).
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
	Close() error
}
