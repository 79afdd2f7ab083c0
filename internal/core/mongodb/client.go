package mongodb

import (
	"context"
	"errors"
	"fmt"

	"parcel-admin/internal/core/config"
	"parcel-admin/internal/core/logger"
	"parcel-admin/internal/core/retry"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
	"go.uber.org/zap"
)

// Connect opens a client and verifies the deployment answers a ping within the
// configured connect timeout.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("parcel-admin").
		SetReadPreference(readpref.SecondaryPreferred())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	logger.Named("mongodb").Info("Connected to MongoDB", zap.String("database", cfg.Database))
	return client, nil
}

// IsTransient reports whether a store error is worth retrying: network failures,
// timeouts, server selection failures and errors labelled transient by the server.
// Caller cancellation is never transient.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return true
	}

	var selection topology.ServerSelectionError
	if errors.As(err, &selection) {
		return true
	}

	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.HasErrorLabel("TransientTransactionError") ||
			serverErr.HasErrorLabel("RetryableWriteError")
	}

	return false
}

// RetryPolicy builds the query retry policy from the report settings.
func RetryPolicy(cfg config.ReportsConfig) retry.Policy {
	return retry.Policy{
		Attempts:    cfg.RetryAttempts,
		BaseDelay:   cfg.RetryBaseDelay,
		IsTransient: IsTransient,
	}
}
