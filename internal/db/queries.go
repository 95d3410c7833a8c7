package db

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries holds the ledger statements.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type GenerationRun struct {
	ID           int64
	Pipeline     string
	InputPaths   string
	OutputPath   string
	Status       string
	RecordCount  int64
	OutputSha256 sql.NullString
	ErrorMessage sql.NullString
	StartedAt    sql.NullTime
	CompletedAt  sql.NullTime
}

type RunCount struct {
	RunID int64
	Label string
	Count int64
}

const runColumns = `id, pipeline, input_paths, output_path, status, record_count, output_sha256, error_message, started_at, completed_at`

func scanRun(row interface{ Scan(...interface{}) error }) (GenerationRun, error) {
	var r GenerationRun
	err := row.Scan(
		&r.ID,
		&r.Pipeline,
		&r.InputPaths,
		&r.OutputPath,
		&r.Status,
		&r.RecordCount,
		&r.OutputSha256,
		&r.ErrorMessage,
		&r.StartedAt,
		&r.CompletedAt,
	)
	return r, err
}

const createRun = `INSERT INTO generation_runs (pipeline, input_paths, output_path)
VALUES (?, ?, ?)`

type CreateRunParams struct {
	Pipeline   string
	InputPaths string
	OutputPath string
}

func (q *Queries) CreateRun(ctx context.Context, arg CreateRunParams) (GenerationRun, error) {
	res, err := q.db.ExecContext(ctx, createRun, arg.Pipeline, arg.InputPaths, arg.OutputPath)
	if err != nil {
		return GenerationRun{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return GenerationRun{}, err
	}
	return q.GetRun(ctx, id)
}

const completeRun = `UPDATE generation_runs
SET status = 'completed', record_count = ?, output_sha256 = ?, completed_at = CURRENT_TIMESTAMP
WHERE id = ?`

type CompleteRunParams struct {
	ID           int64
	RecordCount  int64
	OutputSha256 sql.NullString
}

func (q *Queries) CompleteRun(ctx context.Context, arg CompleteRunParams) error {
	_, err := q.db.ExecContext(ctx, completeRun, arg.RecordCount, arg.OutputSha256, arg.ID)
	return err
}

const failRun = `UPDATE generation_runs
SET status = 'failed', error_message = ?, completed_at = CURRENT_TIMESTAMP
WHERE id = ?`

type FailRunParams struct {
	ID           int64
	ErrorMessage sql.NullString
}

func (q *Queries) FailRun(ctx context.Context, arg FailRunParams) error {
	_, err := q.db.ExecContext(ctx, failRun, arg.ErrorMessage, arg.ID)
	return err
}

const getRun = `SELECT ` + runColumns + ` FROM generation_runs WHERE id = ?`

func (q *Queries) GetRun(ctx context.Context, id int64) (GenerationRun, error) {
	return scanRun(q.db.QueryRowContext(ctx, getRun, id))
}

const listRecentRuns = `SELECT ` + runColumns + ` FROM generation_runs ORDER BY id DESC LIMIT ?`

func (q *Queries) ListRecentRuns(ctx context.Context, limit int64) ([]GenerationRun, error) {
	rows, err := q.db.QueryContext(ctx, listRecentRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []GenerationRun
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countRuns = `SELECT COUNT(*) FROM generation_runs`

func (q *Queries) CountRuns(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countRuns).Scan(&count)
	return count, err
}

const countRunsByPipeline = `SELECT pipeline, status, COUNT(*) AS count
FROM generation_runs
GROUP BY pipeline, status
ORDER BY pipeline, status`

type CountRunsByPipelineRow struct {
	Pipeline string
	Status   string
	Count    int64
}

func (q *Queries) CountRunsByPipeline(ctx context.Context) ([]CountRunsByPipelineRow, error) {
	rows, err := q.db.QueryContext(ctx, countRunsByPipeline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CountRunsByPipelineRow
	for rows.Next() {
		var i CountRunsByPipelineRow
		if err := rows.Scan(&i.Pipeline, &i.Status, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const addRunCount = `INSERT INTO run_counts (run_id, label, count) VALUES (?, ?, ?)
ON CONFLICT (run_id, label) DO UPDATE SET count = excluded.count`

type AddRunCountParams struct {
	RunID int64
	Label string
	Count int64
}

func (q *Queries) AddRunCount(ctx context.Context, arg AddRunCountParams) error {
	_, err := q.db.ExecContext(ctx, addRunCount, arg.RunID, arg.Label, arg.Count)
	return err
}

const listRunCounts = `SELECT run_id, label, count FROM run_counts WHERE run_id = ? ORDER BY rowid`

func (q *Queries) ListRunCounts(ctx context.Context, runID int64) ([]RunCount, error) {
	rows, err := q.db.QueryContext(ctx, listRunCounts, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []RunCount
	for rows.Next() {
		var i RunCount
		if err := rows.Scan(&i.RunID, &i.Label, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
