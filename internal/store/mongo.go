package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection names.
const (
	usersCollection       = "users"
	permissionsCollection = "permissions"
	configCollection      = "config"
)

// configDocID keys the singleton console configuration document.
const configDocID = "console"

// MongoStore implements the Store interface on top of MongoDB.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a MongoDB connection, verifies it with a ping and returns
// a ready MongoStore.
func Connect(ctx context.Context, uri, database string) (*MongoStore, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background()) //nolint:errcheck
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoStore{
		client: client,
		db:     client.Database(database),
	}, nil
}

// Ping verifies the database connection is alive.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects from the database.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) users() *mongo.Collection {
	return s.db.Collection(usersCollection)
}

func (s *MongoStore) permissions() *mongo.Collection {
	return s.db.Collection(permissionsCollection)
}

func (s *MongoStore) config() *mongo.Collection {
	return s.db.Collection(configCollection)
}
