package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// defaultTimeout bounds every single-document store call.
const defaultTimeout = 10 * time.Second

// Config holds the connection settings for the forum database.
type Config struct {
	URI      string
	Database string
	// AppName is reported to the server and shows up in its logs. Defaults to "forum".
	AppName  string
	Timeout  time.Duration
}

// Connect opens a client, pings the primary and returns the client together
// with the forum database handle.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	appName := cfg.AppName
	if appName == "" {
		appName = "forum"
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout).
		SetBSONOptions(&options.BSONOptions{NilSliceAsEmpty: true})

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes creates the secondary indexes every forum collection needs.
// Accounts are keyed by _id and need none.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := NewPostRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("post indexes: %w", err)
	}
	return nil
}
