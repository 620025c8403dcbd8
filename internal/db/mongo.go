package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoOpts struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	PingTimeout    time.Duration
}

// NewMongoConnection opens a *mongo.Database and verifies the deployment is
// reachable before handing it out.
func NewMongoConnection(opts MongoOpts) (*mongo.Database, error) {
	if opts.URI == "" {
		return nil, fmt.Errorf("empty MongoDB URI")
	}
	if opts.Database == "" {
		return nil, fmt.Errorf("empty MongoDB database name")
	}

	connectTimeout := opts.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, err
	}

	pingTimeout := opts.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	pctx, pcancel := context.WithTimeout(context.Background(), pingTimeout)
	defer pcancel()
	if err := client.Ping(pctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client.Database(opts.Database), nil
}
