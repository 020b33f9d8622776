package migrate

import (
	"bytes"
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lib/pq"
)

// recordingConn is a database/sql driver connection that records every
// executed statement and fails statements containing a configured
// substring.
type recordingConn struct {
	execed   []string
	failSub  string
	failWith error
}

func (c *recordingConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}
func (c *recordingConn) Close() error              { return nil }
func (c *recordingConn) Begin() (driver.Tx, error) { return nil, errors.New("begin not supported") }

func (c *recordingConn) ExecContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Result, error) {
	c.execed = append(c.execed, query)
	if c.failSub != "" && strings.Contains(query, c.failSub) {
		return nil, c.failWith
	}
	return driver.RowsAffected(0), nil
}

type recordingDriver struct {
	conn *recordingConn
}

func (d *recordingDriver) Open(string) (driver.Conn, error) { return d.conn, nil }

var testDriver = &recordingDriver{}

func init() {
	sql.Register("recording", testDriver)
}

func openRecording(t *testing.T, conn *recordingConn) *sql.DB {
	t.Helper()
	testDriver.conn = conn
	db, err := sql.Open("recording", "")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "two simple statements",
			src:  "CREATE TABLE a (id int);\nCREATE TABLE b (id int);\n",
			want: []string{"CREATE TABLE a (id int)", "CREATE TABLE b (id int)"},
		},
		{
			name: "line comments stripped",
			src:  "-- header comment\nSELECT 1; -- trailing\n-- footer\n",
			want: []string{"SELECT 1"},
		},
		{
			name: "block comment stripped",
			src:  "/* multi\nline */ SELECT 2;",
			want: []string{"SELECT 2"},
		},
		{
			name: "semicolon inside single quotes",
			src:  "INSERT INTO t (v) VALUES ('a;b');UPDATE t SET v = 'it''s;fine';",
			want: []string{
				"INSERT INTO t (v) VALUES ('a;b')",
				"UPDATE t SET v = 'it''s;fine'",
			},
		},
		{
			name: "dollar-quoted function body kept whole",
			src: "CREATE FUNCTION f() RETURNS void AS $fn$ BEGIN PERFORM 1; END; $fn$ LANGUAGE plpgsql;" +
				"SELECT 3;",
			want: []string{
				"CREATE FUNCTION f() RETURNS void AS $fn$ BEGIN PERFORM 1; END; $fn$ LANGUAGE plpgsql",
				"SELECT 3",
			},
		},
		{
			name: "empty and whitespace-only input",
			src:  "  \n ;; \n",
			want: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitStatements(tc.src)
			if len(got) != len(tc.want) {
				t.Fatalf("SplitStatements() = %d statements %q, want %d", len(got), got, len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("statement %d = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestIsDuplicateColumn(t *testing.T) {
	dup := &pq.Error{Code: "42701", Message: `column "icon" of relation "tool_configurations" already exists`}
	if !IsDuplicateColumn(dup) {
		t.Error("42701 should classify as duplicate column")
	}
	if !IsDuplicateColumn(fmt.Errorf("exec: %w", dup)) {
		t.Error("wrapped 42701 should classify as duplicate column")
	}
	if IsDuplicateColumn(&pq.Error{Code: "42P07"}) {
		t.Error("42P07 (duplicate table) must not be downgraded")
	}
	if IsDuplicateColumn(errors.New("connection refused")) {
		t.Error("plain errors must not classify as duplicate column")
	}
}

// Re-running the additive icon migration raises 42701 on the ALTER;
// the runner must skip it and still execute the update phase.
func TestRunSkipsDuplicateColumnAndContinues(t *testing.T) {
	conn := &recordingConn{
		failSub: "ADD COLUMN",
		failWith: &pq.Error{
			Code:    "42701",
			Message: `column "icon" of relation "tool_configurations" already exists`,
		},
	}
	db := openRecording(t, conn)

	var buf bytes.Buffer
	r := NewRunner(db, &buf)
	job := Job{
		Name: "002_add_tool_icon_column.sql",
		SQL: "ALTER TABLE tool_configurations ADD COLUMN icon TEXT;\n" +
			"UPDATE tool_configurations SET icon = 'web-search.svg' WHERE name = 'web_search';\n" +
			"UPDATE tool_configurations SET icon = 'speech.svg' WHERE name = 'speech';\n",
	}

	if err := r.Run(context.Background(), job); err != nil {
		t.Fatalf("Run with duplicate column error: %v", err)
	}
	if len(conn.execed) != 3 {
		t.Fatalf("executed %d statements %q, want all 3", len(conn.execed), conn.execed)
	}
	for _, stmt := range conn.execed[1:] {
		if !strings.Contains(stmt, "UPDATE tool_configurations") {
			t.Errorf("statement after the skipped ALTER = %q, want update phase", stmt)
		}
	}
}

func TestRunFatalOnOtherErrors(t *testing.T) {
	conn := &recordingConn{
		failSub:  "ALTER TABLE",
		failWith: &pq.Error{Code: "42P01", Message: `relation "tool_configurations" does not exist`},
	}
	db := openRecording(t, conn)

	var buf bytes.Buffer
	r := NewRunner(db, &buf)
	job := Job{
		Name: "002_add_tool_icon_column.sql",
		SQL: "ALTER TABLE tool_configurations ADD COLUMN icon TEXT;\n" +
			"UPDATE tool_configurations SET icon = 'web-search.svg' WHERE name = 'web_search';\n",
	}

	if err := r.Run(context.Background(), job); err == nil {
		t.Fatal("Run should be fatal on errors other than duplicate column")
	}
	if len(conn.execed) != 1 {
		t.Errorf("executed %d statements %q, want to stop at the failed ALTER", len(conn.execed), conn.execed)
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	r := &Runner{out: &buf}
	r.renderTable("columns of tool_configurations",
		[]string{"column", "type"},
		[][]string{
			{"name", "text"},
			{"icon", "text"},
		})

	out := buf.String()
	for _, want := range []string{"columns of tool_configurations", "column", "icon", "text"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered table missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := &Runner{out: &buf}
	r.renderTable("stored routines", []string{"routine", "type"}, nil)
	if !strings.Contains(buf.String(), "(none)") {
		t.Errorf("empty table should render (none):\n%s", buf.String())
	}
}

func TestRenderTableTruncatesWideCells(t *testing.T) {
	var buf bytes.Buffer
	r := &Runner{out: &buf}
	wide := strings.Repeat("x", 200)
	r.renderTable("indexes", []string{"index", "definition"}, [][]string{{"idx", wide}})
	if strings.Contains(buf.String(), wide) {
		t.Error("cells wider than the cap should be truncated")
	}
	if !strings.Contains(buf.String(), "...") {
		t.Error("truncated cells should carry an ellipsis")
	}
}
