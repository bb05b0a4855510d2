package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"book-review/internal/wire"
	"book-review/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the GraphQL HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false,
		"do not apply the schema before serving (run book-review migrate separately)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	config, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the store
	st, err := openStore(ctx, config, logger)
	if err != nil {
		logger.Error("Failed to connect to store", zap.Error(err))
		return err
	}
	defer st.close(context.Background())

	// The schema and indexes are idempotent, so a fresh database works out of the box
	if !skipMigrate {
		if err := st.migrate(ctx); err != nil {
			logger.Error("Failed to apply schema; fix the store or run `book-review migrate`",
				zap.Error(err), zap.String("driver", string(st.driver)))
			return err
		}
	} else {
		logger.Info("Schema migration skipped", zap.String("driver", string(st.driver)))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Wire all dependencies
	tokens := utils.NewJWTManager(config.JWT.Secret)
	app, err := wire.Wiring(st.repo, config, tokens, registry, logger)
	if err != nil {
		logger.Error("Failed to wire application", zap.Error(err))
		return err
	}

	// Start server
	return APIServer(ctx, app.Router, config.App.Port, logger)
}
