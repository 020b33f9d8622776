package migrations

import (
	"sort"
	"strings"
	"testing"
)

func TestNamesSortedAndNonEmpty(t *testing.T) {
	names := Names()
	if len(names) < 2 {
		t.Fatalf("expected at least 2 embedded migrations, got %v", names)
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
	for _, name := range names {
		if !strings.HasSuffix(name, ".sql") {
			t.Errorf("unexpected embedded file %s", name)
		}
	}
}

func TestReadKnownMigration(t *testing.T) {
	text, err := Read("002_add_tool_icon_column.sql")
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if !strings.Contains(text, "ALTER TABLE tool_configurations ADD COLUMN icon") {
		t.Error("002 should contain the unguarded ADD COLUMN")
	}
	if !strings.Contains(text, "UPDATE tool_configurations") {
		t.Error("002 should contain the update phase")
	}
}

func TestReadUnknownMigration(t *testing.T) {
	if _, err := Read("999_missing.sql"); err == nil {
		t.Error("Read() of a missing migration should fail")
	}
}
