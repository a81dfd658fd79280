package providers

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"nest/internal/structures"
)

// NewMongoProvider returns a nil client when the document store is disabled.
func NewMongoProvider(conf *structures.Config, logger Logger) (*mongo.Client, func(), error) {
	if !conf.Mongo.Enabled {
		logger.Infof(TypeApp, "MongoDB disabled")
		return nil, func() {}, nil
	}

	timeout := conf.Mongo.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.Mongo.URI).SetTimeout(timeout))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	logger.Infof(TypeApp, "Connected to MongoDB database %s", conf.Mongo.Database)
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.Warnf(TypeApp, "Mongo disconnect: %s", err)
		}
	}
	return client, cleanup, nil
}
