package cmd

import (
	"context"
	"fmt"
	"log"

	"book-review/internal/data/repository"
	"book-review/pkg/database"
	"book-review/pkg/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// bootstrap loads config and builds the logger shared by every command.
func bootstrap() (*utils.Config, *zap.Logger, error) {
	config, err := utils.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using production logger.", err)
		logger, _ = zap.NewProduction()
	}
	return config, logger, nil
}

// store is an opened backing store and its raw connection.
type store struct {
	driver utils.StoreDriver
	repo   *repository.Repository
	pg     database.PgxIface
	mongo  *mongo.Database
}

func openStore(ctx context.Context, config *utils.Config, logger *zap.Logger) (*store, error) {
	driver, err := config.Database.Driver()
	if err != nil {
		return nil, err
	}

	s := &store{driver: driver}
	switch driver {
	case utils.DriverPostgres:
		db, err := database.InitDB(ctx, config.Database)
		if err != nil {
			return nil, err
		}
		s.pg = db
		s.repo = repository.NewRepository(db, logger)

	case utils.DriverMongo:
		db, err := database.InitMongo(ctx, config.Database)
		if err != nil {
			return nil, err
		}
		s.mongo = db
		s.repo = repository.NewMongoRepository(db, logger)

	case utils.DriverMemory:
		logger.Warn("Using in-memory store, data is lost on restart")
		s.repo = repository.NewMemoryRepository(logger)
	}

	logger.Info("Store connected", zap.String("driver", string(driver)))
	return s, nil
}

// migrate creates tables or indexes; the memory store needs none.
func (s *store) migrate(ctx context.Context) error {
	switch {
	case s.pg != nil:
		return database.MigratePostgres(ctx, s.pg)
	case s.mongo != nil:
		return database.MigrateMongo(ctx, s.mongo)
	}
	return nil
}

func (s *store) close(ctx context.Context) {
	if s.pg != nil {
		s.pg.Close()
	}
	if s.mongo != nil {
		_ = s.mongo.Client().Disconnect(ctx)
	}
}
