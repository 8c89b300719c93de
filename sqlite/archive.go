package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/docfold/docfold"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docfold.Archive = (*Archive)(nil)

// Archive implements docfold.Archive using SQLite.
type Archive struct {
	db *DB
}

// NewArchive creates a new Archive.
func NewArchive(db *DB) *Archive {
	return &Archive{db: db}
}

// CreateRun stores a new run, assigning its ID and start time.
func (a *Archive) CreateRun(ctx context.Context, run *docfold.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.StartedAt = time.Now().UTC()

	_, err := a.db.ExecContext(ctx, `
		INSERT INTO runs (id, seed, started_at)
		VALUES (?, ?, ?)
	`, run.ID, run.Seed, run.StartedAt.Format(time.RFC3339))

	return err
}

// FinishRun records the run's end time and page counts.
func (a *Archive) FinishRun(ctx context.Context, run *docfold.Run) error {
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now().UTC()
	}

	res, err := a.db.ExecContext(ctx, `
		UPDATE runs
		SET finished_at = ?, cleaned = ?, empty = ?, failed = ?, skipped = ?
		WHERE id = ?
	`, run.FinishedAt.Format(time.RFC3339), run.Cleaned, run.Empty, run.Failed, run.Skipped, run.ID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return docfold.Errorf(docfold.ENOTFOUND, "run not found")
	}
	return nil
}

// SavePages stores the pages produced by a run inside one transaction.
func (a *Archive) SavePages(ctx context.Context, runID string, pages []*docfold.Page) error {
	if runID == "" {
		return docfold.Errorf(docfold.EINVALID, "run ID required")
	}
	for _, p := range pages {
		if err := p.Validate(); err != nil {
			return err
		}
	}

	tx, err := a.db.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range pages {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO pages (run_id, seq, url, depth, title, content, content_hash, status, fetch_error, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, runID, p.Seq, p.URL, p.Depth, p.Title, p.Content, p.ContentHash,
			string(p.Status), p.FetchError, p.FetchedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRun retrieves a run by ID.
func (a *Archive) FindRun(ctx context.Context, id string) (*docfold.Run, error) {
	row := a.db.QueryRowContext(ctx, `
		SELECT id, seed, started_at, finished_at, cleaned, empty, failed, skipped
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return nil, docfold.Errorf(docfold.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// FindRuns retrieves all runs, most recent first.
func (a *Archive) FindRuns(ctx context.Context) ([]*docfold.Run, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, seed, started_at, finished_at, cleaned, empty, failed, skipped
		FROM runs
		ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []*docfold.Run{}
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// FindPagesByRun retrieves a run's pages in discovery order.
func (a *Archive) FindPagesByRun(ctx context.Context, runID string) ([]*docfold.Page, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT seq, url, depth, title, content, content_hash, status, fetch_error, fetched_at
		FROM pages
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pages := []*docfold.Page{}
	for rows.Next() {
		var p docfold.Page
		var status, fetchedAt string
		if err := rows.Scan(&p.Seq, &p.URL, &p.Depth, &p.Title, &p.Content,
			&p.ContentHash, &status, &p.FetchError, &fetchedAt); err != nil {
			return nil, err
		}
		p.Status = docfold.PageStatus(status)
		p.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
		if err != nil {
			return nil, err
		}
		pages = append(pages, &p)
	}
	return pages, rows.Err()
}

// scanRun reads one runs row via the given Scan function.
func scanRun(scan func(dest ...any) error) (*docfold.Run, error) {
	var run docfold.Run
	var startedAt, finishedAt string

	if err := scan(&run.ID, &run.Seed, &startedAt, &finishedAt,
		&run.Cleaned, &run.Empty, &run.Failed, &run.Skipped); err != nil {
		return nil, err
	}

	var err error
	run.StartedAt, err = parseRFC3339(startedAt, "started_at")
	if err != nil {
		return nil, err
	}
	run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at")
	if err != nil {
		return nil, err
	}

	return &run, nil
}
