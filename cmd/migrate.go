package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema or indexes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		config, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		st, err := openStore(cmd.Context(), config, logger)
		if err != nil {
			logger.Error("Failed to connect to store", zap.Error(err))
			return err
		}
		defer st.close(context.Background())

		if err := st.migrate(cmd.Context()); err != nil {
			logger.Error("Migration failed", zap.Error(err))
			return err
		}

		logger.Info("Migration complete", zap.String("driver", string(st.driver)))
		return nil
	},
}
