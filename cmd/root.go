package cmd

import (
	"github.com/spf13/cobra"
)

var configPath string

// RootCmd runs serve when no subcommand is given.
var RootCmd = &cobra.Command{
	Use:           "book-review",
	Short:         "Book review GraphQL API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", ".env", "env file with configuration, optional")
	RootCmd.AddCommand(serveCmd, migrateCmd)
}

// Execute runs the command tree.
func Execute() error {
	return RootCmd.Execute()
}
