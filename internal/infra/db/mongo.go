package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"news-portal/pkg/config"
)

// OpenMongo connects to MongoDB and verifies the primary is reachable.
// MONGO_MAX_POOL_SIZE bounds the driver's connection pool.
func OpenMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, errors.New("MONGO_URI not set")
	}

	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(uint64(config.GetEnvInt("MONGO_MAX_POOL_SIZE", 25))).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	slog.Info("mongo connection established successfully")
	return client, nil
}

// MongoPinger adapts a client to the health check Pinger contract.
type MongoPinger struct {
	Client *mongo.Client
}

// Ping checks the primary.
func (p MongoPinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx, readpref.Primary())
}
