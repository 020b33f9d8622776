// Package migrations embeds the SQL resources shipped with the binary.
// Ordering is by filename convention; there is no dependency tracking
// between files.
package migrations

import (
	"embed"
	"fmt"
	"sort"
)

//go:embed *.sql
var fs embed.FS

// Names returns the embedded migration filenames in lexical order.
func Names() []string {
	entries, err := fs.ReadDir(".")
	if err != nil {
		// embed.FS.ReadDir(".") cannot fail at runtime.
		panic(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// Read returns the SQL text of the named embedded migration.
func Read(name string) (string, error) {
	data, err := fs.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("embedded migration %s: %w", name, err)
	}
	return string(data), nil
}
