package cli

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/voyalab/backplane/internal/db"
	"github.com/voyalab/backplane/internal/logging"
)

// seedIcons maps tool names to their display icon references. Tool
// names are unique; re-running only refreshes the icon column.
var seedIcons = map[string]string{
	"web_search":  "web-search.svg",
	"calculator":  "calculator.svg",
	"code_runner": "code-runner.svg",
	"knowledge":   "knowledge.svg",
	"speech":      "speech.svg",
}

var seedToolsCmd = &cobra.Command{
	Use:   "seed-tools",
	Short: "Upsert tool configuration icons",
	Long: "Administrative one-shot: inserts the known tool configurations and\n" +
		"their icon references, updating icons for tools that already exist.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, err := db.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		conn, err := pool.Conn(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		const upsert = `
			INSERT INTO tool_configurations (id, name, icon)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO UPDATE
			SET icon = EXCLUDED.icon, updated_at = now()`

		for name, icon := range seedIcons {
			if _, err := conn.ExecContext(ctx, upsert, uuid.NewString(), name, icon); err != nil {
				logging.Errorf("seed %s failed: %v", name, err)
				return err
			}
			logging.Successf("tool %s -> %s", name, icon)
		}
		logging.Infof("seeded %d tool configurations", len(seedIcons))
		return nil
	},
}
