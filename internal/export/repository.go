package export

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/tildaslashalef/redline/internal/loggy"
	"github.com/tildaslashalef/redline/internal/ulid"
)

// Run is one recorded export invocation.
type Run struct {
	ID         string        `json:"id"`
	Label      string        `json:"label"`
	Format     string        `json:"format"`
	OutputPath string        `json:"output_path"`
	Rows       int           `json:"rows"`
	Groups     int           `json:"groups"`
	Duration   time.Duration `json:"duration"`
	CreatedAt  time.Time     `json:"created_at"`
}

// Repository defines operations for managing export-run history
type Repository interface {
	// CreateRun records a completed export run
	CreateRun(ctx context.Context, run *Run) error

	// ListRuns retrieves the most recent runs, newest first
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
}

// SQLRepository implements the Repository interface using a SQL database
type SQLRepository struct {
	db     *sql.DB
	logger *loggy.Logger
}

// NewSQLRepository creates a new SQL repository
func NewSQLRepository(db *sql.DB, logger *loggy.Logger) *SQLRepository {
	return &SQLRepository{
		db:     db,
		logger: logger,
	}
}

// CreateRun records a completed export run
func (r *SQLRepository) CreateRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = ulid.RunID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	q := squirrel.Insert("export_runs").
		Columns("id", "label", "format", "output_path", "row_count", "group_count", "duration_ms", "created_at").
		Values(run.ID, run.Label, run.Format, run.OutputPath, run.Rows, run.Groups, run.Duration.Milliseconds(), run.CreatedAt)

	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("building create run query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("executing create run query: %w", err)
	}

	return nil
}

// ListRuns retrieves the most recent runs, newest first
func (r *SQLRepository) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}

	q := squirrel.Select("id", "label", "format", "output_path", "row_count", "group_count", "duration_ms", "created_at").
		From("export_runs").
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list runs query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing list runs query: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var (
			run        Run
			durationMS int64
		)
		if err := rows.Scan(
			&run.ID,
			&run.Label,
			&run.Format,
			&run.OutputPath,
			&run.Rows,
			&run.Groups,
			&durationMS,
			&run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run rows: %w", err)
	}

	return runs, nil
}
