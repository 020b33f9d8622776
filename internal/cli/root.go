// Package cli wires the backplane command tree. One-shot commands exit
// 0 on success and 1 on any fatal error; the error handler lives in
// cmd/backplane.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/voyalab/backplane/internal/config"
	"github.com/voyalab/backplane/internal/logging"
)

// cfg is loaded once before any command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "backplane",
	Short:         "Operational backplane for the chat-assistant platform",
	Long:          "backplane bundles the operator-side glue: database migrations,\nthe tool icon proxy, backend API smoke tests, and the speech probe.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logging.Configure(!cfg.Production(), cfg.Debug, cfg.Perf)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedToolsCmd)
	rootCmd.AddCommand(probeSpeechCmd)
	rootCmd.AddCommand(kbCmd)
	rootCmd.AddCommand(versionCmd)
}
