// Package mongo implements order document persistence on MongoDB. The
// connection lifecycle lives here; the pipeline only ever sees the narrow
// port.OrderStore contract.
package mongo

import (
	"context"
	"fmt"

	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"ordersvc/internal/config"
	"ordersvc/internal/domain"
)

// NewClient connects to MongoDB and verifies the connection with a ping
// bounded by cfg.ConnectTimeout.
func NewClient(ctx context.Context, cfg *config.MongoConfig) (*driver.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := driver.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: ping failed: %s", domain.ErrStoreUnavailable, err)
	}
	return client, nil
}
