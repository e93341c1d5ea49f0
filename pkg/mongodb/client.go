package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config holds MongoDB connection configuration
type Config struct {
	URI      string
	Database string
}

// Connect opens a client and verifies the primary is reachable.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongodb: MONGO_URI not configured")
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}

	return client, nil
}

// OpenCollection returns a handle to a collection of the configured database.
func OpenCollection(client *mongo.Client, database, name string) *mongo.Collection {
	return client.Database(database).Collection(name)
}

// HealthCheck pings the primary.
func HealthCheck(ctx context.Context, client *mongo.Client) error {
	if client == nil {
		return errors.New("mongodb: client not initialized")
	}
	return client.Ping(ctx, readpref.Primary())
}
