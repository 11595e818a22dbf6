package runs

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/graphshift/graphshift/db"
	"github.com/graphshift/graphshift/domains/analysis"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("run not found")
)

const runColumns = `id, repo_path, org_name, to_version, scope, max_repos, keep_clones,
	provider, status, error, total_issues, repos_analyzed, result, summary, created, updated`

// Create enqueues a new run in pending state
func Create(ctx context.Context, params CreateParams) (*Run, error) {
	now := time.Now().Unix()

	return db.Query1(ctx, func(p *pgxpool.Pool) (*Run, error) {
		row := p.QueryRow(ctx, `
			INSERT INTO runs (repo_path, org_name, to_version, scope, max_repos,
				keep_clones, provider, status, created, updated)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
			RETURNING `+runColumns,
			params.RepoPath, params.OrgName, params.ToVersion, params.Scope,
			params.MaxRepos, params.KeepClones, params.Provider,
			StatusPending.String(), now,
		)
		return scanRun(row)
	})
}

// GetByID retrieves a run by ID
func GetByID(ctx context.Context, id int64) (*Run, error) {
	run, err := db.Query1(ctx, func(p *pgxpool.Pool) (*Run, error) {
		row := p.QueryRow(ctx, `SELECT `+runColumns+` FROM runs WHERE id = $1`, id)
		return scanRun(row)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return run, nil
}

// List retrieves runs with optional status filtering, newest first
func List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.Limit <= 0 || params.Limit > 100 {
		params.Limit = 20
	}

	var result ListResult

	err := db.Query(ctx, func(p *pgxpool.Pool) error {
		query := `SELECT ` + runColumns + ` FROM runs ORDER BY created DESC LIMIT $1 OFFSET $2`
		countQuery := `SELECT count(*) FROM runs`
		args := []any{params.Limit, params.Offset}
		countArgs := []any{}

		if params.Status != nil {
			query = `SELECT ` + runColumns + ` FROM runs WHERE status = $1
				ORDER BY created DESC LIMIT $2 OFFSET $3`
			countQuery += ` WHERE status = $1`
			args = []any{params.Status.String(), params.Limit, params.Offset}
			countArgs = []any{params.Status.String()}
		}

		rows, err := p.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		result.Runs = result.Runs[:0]
		for rows.Next() {
			run, err := scanRun(rows)
			if err != nil {
				return err
			}
			result.Runs = append(result.Runs, *run)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		return p.QueryRow(ctx, countQuery, countArgs...).Scan(&result.Total)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ClaimPending atomically claims the oldest pending run for processing
func ClaimPending(ctx context.Context) (*Run, error) {
	now := time.Now().Unix()

	run, err := db.Query1(ctx, func(p *pgxpool.Pool) (*Run, error) {
		row := p.QueryRow(ctx, `
			UPDATE runs SET status = $1, updated = $2
			WHERE id = (
				SELECT id FROM runs WHERE status = $3
				ORDER BY created
				LIMIT 1
				FOR UPDATE SKIP LOCKED
			)
			RETURNING `+runColumns,
			StatusAnalyzing.String(), now, StatusPending.String(),
		)
		return scanRun(row)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return run, nil
}

// Complete stores the aggregate of a finished run
func Complete(ctx context.Context, id int64, agg *analysis.Aggregate, summary string) error {
	result, err := json.Marshal(agg)
	if err != nil {
		return err
	}

	now := time.Now().Unix()
	return db.Query(ctx, func(p *pgxpool.Pool) error {
		_, err := p.Exec(ctx, `
			UPDATE runs
			SET status = $1, total_issues = $2, repos_analyzed = $3,
				result = $4, summary = $5, updated = $6
			WHERE id = $7`,
			StatusCompleted.String(), agg.TotalIssues, agg.ReposAnalyzed,
			result, summary, now, id,
		)
		return err
	})
}

// SetError marks a run failed with an error message
func SetError(ctx context.Context, id int64, errMsg string) error {
	now := time.Now().Unix()
	return db.Query(ctx, func(p *pgxpool.Pool) error {
		_, err := p.Exec(ctx,
			`UPDATE runs SET status = $1, error = $2, updated = $3 WHERE id = $4`,
			StatusFailed.String(), errMsg, now, id,
		)
		return err
	})
}

// Request converts a stored run into an analysis request
func (r *Run) Request() analysis.Request {
	return analysis.Request{
		RepoPath:   r.RepoPath,
		OrgName:    r.OrgName,
		ToVersion:  r.ToVersion,
		Scope:      r.Scope,
		MaxRepos:   r.MaxRepos,
		KeepClones: r.KeepClones,
		Provider:   r.Provider,
	}
}

func scanRun(row pgx.Row) (*Run, error) {
	var run Run
	var status string
	err := row.Scan(
		&run.ID, &run.RepoPath, &run.OrgName, &run.ToVersion, &run.Scope,
		&run.MaxRepos, &run.KeepClones, &run.Provider, &status, &run.Error,
		&run.TotalIssues, &run.ReposAnalyzed, &run.Result, &run.Summary,
		&run.Created, &run.Updated,
	)
	if err != nil {
		return nil, err
	}
	run.Status = Status(status)
	return &run, nil
}
