package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/voyalab/backplane/internal/db"
	"github.com/voyalab/backplane/internal/logging"
	"github.com/voyalab/backplane/internal/migrate"
	"github.com/voyalab/backplane/migrations"
)

var (
	migrateVerifyTable string
	migrateCountTable  string
	migrateCountColumn string
	migrateNoVerify    bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [file.sql ...]",
	Short: "Run SQL migrations against the managed Postgres",
	Long: "Without arguments, runs the embedded migrations in filename order.\n" +
		"With arguments, runs the given SQL files instead. After the last\n" +
		"migration the schema is introspected and reported; a failed\n" +
		"verification is fatal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, err := db.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		runner := migrate.NewRunner(pool, os.Stdout)
		verify := &migrate.Verification{
			Table:       migrateVerifyTable,
			CountTable:  migrateCountTable,
			CountColumn: migrateCountColumn,
		}
		if migrateNoVerify {
			verify = nil
		}

		if len(args) > 0 {
			for i, path := range args {
				var v *migrate.Verification
				if i == len(args)-1 {
					v = verify
				}
				if err := runner.RunFile(ctx, path, v); err != nil {
					return err
				}
			}
			return nil
		}

		names := migrations.Names()
		logging.Infof("running %d embedded migrations", len(names))
		for i, name := range names {
			text, err := migrations.Read(name)
			if err != nil {
				return err
			}
			job := migrate.Job{Name: name, SQL: text}
			if i == len(names)-1 {
				job.Verify = verify
			}
			if err := runner.Run(ctx, job); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateVerifyTable, "verify-table", "tool_configurations", "table whose columns and indexes are listed after the run")
	migrateCmd.Flags().StringVar(&migrateCountTable, "count-table", "messages", "table for the count-by-category aggregate")
	migrateCmd.Flags().StringVar(&migrateCountColumn, "count-column", "role", "category column for the aggregate")
	migrateCmd.Flags().BoolVar(&migrateNoVerify, "no-verify", false, "skip the verification queries")
}
