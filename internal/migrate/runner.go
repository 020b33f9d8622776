// Package migrate implements the one-shot migration runner: load a SQL
// resource, execute its statements against Postgres, then introspect
// the schema and print a human-readable report.
//
// The runner keeps no applied-migrations ledger and takes no locks;
// it is a manually invoked, single-operator tool. Idempotency is the
// SQL's responsibility (guarded DDL, upsert-on-conflict), with one
// exception: a duplicate-column error from an additive ALTER TABLE is
// downgraded to an informational skip so re-runs proceed to the
// statements that follow.
package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lib/pq"

	"github.com/voyalab/backplane/internal/logging"
)

// pqDuplicateColumn is the Postgres error code for "column of relation
// already exists" (42701), raised by an unguarded ADD COLUMN re-run.
const pqDuplicateColumn = "42701"

// Job describes a single migration run.
type Job struct {
	// Name identifies the resource in the report, usually the filename.
	Name string
	// SQL is the full text of the migration resource.
	SQL string
	// Verify configures the post-run verification queries. Nil skips
	// verification entirely.
	Verify *Verification
}

// Verification names the schema objects the runner inspects after the
// migration executes. A failed verification is treated as "migration
// did not actually take effect" and is fatal.
type Verification struct {
	// Table whose columns and indexes are listed.
	Table string
	// CountTable/CountColumn drive the aggregate count-by-category
	// query, e.g. messages grouped by role. Empty skips the aggregate.
	CountTable  string
	CountColumn string
}

// Runner executes migration jobs against one database.
type Runner struct {
	db  *sql.DB
	out io.Writer
}

// NewRunner creates a runner writing its report to out; nil means
// stdout.
func NewRunner(db *sql.DB, out io.Writer) *Runner {
	if out == nil {
		out = os.Stdout
	}
	return &Runner{db: db, out: out}
}

// RunFile loads the SQL resource at path and runs it.
func (r *Runner) RunFile(ctx context.Context, path string, verify *Verification) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", path, err)
	}
	return r.Run(ctx, Job{Name: path, SQL: string(text), Verify: verify})
}

// Run executes the job's statements strictly sequentially on a single
// acquired connection, then verifies and reports. Any failure other
// than the duplicate-column skip is fatal.
func (r *Runner) Run(ctx context.Context, job Job) error {
	start := time.Now()
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	stmts := SplitStatements(job.SQL)
	if len(stmts) == 0 {
		return fmt.Errorf("migration %s contains no statements", job.Name)
	}
	logging.Infof("running %s (%d statements)", job.Name, len(stmts))

	applied, skipped := 0, 0
	for i, stmt := range stmts {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			if IsDuplicateColumn(err) {
				// Additive migration re-run: the column is already
				// there, keep going with the remaining statements.
				logging.Infof("statement %d/%d: column already exists, skipping (%v)", i+1, len(stmts), err)
				skipped++
				continue
			}
			logPQDetail(err)
			return fmt.Errorf("migration %s statement %d/%d: %w", job.Name, i+1, len(stmts), err)
		}
		applied++
	}
	logging.Successf("%s: %d applied, %d skipped", job.Name, applied, skipped)

	if job.Verify != nil {
		if err := r.verify(ctx, conn, *job.Verify); err != nil {
			return fmt.Errorf("verification after %s: %w", job.Name, err)
		}
	}
	logging.Perff("%s completed in %s", job.Name, time.Since(start).Round(time.Millisecond))
	return nil
}

// logPQDetail prints the structured fields Postgres attaches to an
// error: code, detail, hint. Other errors only have a message.
func logPQDetail(err error) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		logging.Errorf("migration failed: %v", err)
		return
	}
	logging.Errorf("migration failed: %s", pqErr.Message)
	logging.Errorf("  code:   %s", pqErr.Code)
	if pqErr.Detail != "" {
		logging.Errorf("  detail: %s", pqErr.Detail)
	}
	if pqErr.Hint != "" {
		logging.Errorf("  hint:   %s", pqErr.Hint)
	}
}

// IsDuplicateColumn reports whether err is the Postgres
// duplicate-column error the runner downgrades.
func IsDuplicateColumn(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pqDuplicateColumn
}
