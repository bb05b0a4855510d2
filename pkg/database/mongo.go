package database

import (
	"context"
	"fmt"

	"book-review/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names shared by the mongo repositories and migrations.
const (
	UsersCollection   = "users"
	BooksCollection   = "books"
	ReviewsCollection = "reviews"
)

// InitMongo connects to config.URL and returns the configured database.
func InitMongo(ctx context.Context, config utils.DatabaseConfig) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(config.URL).
		SetConnectTimeout(connectTimeout)
	if config.MaxConns > 0 {
		opts.SetMaxPoolSize(uint64(config.MaxConns))
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo failed: %w", err)
	}

	return client.Database(config.MongoDatabase), nil
}

// MigrateMongo creates the unique and lookup indexes the repositories rely on.
func MigrateMongo(ctx context.Context, db *mongo.Database) error {
	users := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := db.Collection(UsersCollection).Indexes().CreateMany(ctx, users); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}

	reviews := []mongo.IndexModel{
		{Keys: bson.D{{Key: "bookId", Value: 1}, {Key: "createdAt", Value: 1}}},
	}
	if _, err := db.Collection(ReviewsCollection).Indexes().CreateMany(ctx, reviews); err != nil {
		return fmt.Errorf("create review indexes: %w", err)
	}

	return nil
}
