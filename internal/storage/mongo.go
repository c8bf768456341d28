package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	tasksCollection        = "tasks"
	serverSelectionTimeout = 5 * time.Second
)

// Store owns the MongoDB client for the process. It is constructed once at
// startup and closed at shutdown; repositories borrow collections from it.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(serverSelectionTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	log.Printf("connected to mongodb database %q", database)
	return &Store{
		client: client,
		db:     client.Database(database),
	}, nil
}

// Close releases the client connection.
func (s *Store) Close(ctx context.Context) error {
	log.Println("closing mongodb connection")
	return s.client.Disconnect(ctx)
}

// Tasks returns the task collection adapter.
func (s *Store) Tasks() *TaskCollection {
	return &TaskCollection{col: s.db.Collection(tasksCollection)}
}

// EnsureTaskIndexes creates the indexes the list endpoint sorts and filters
// on. Index creation is idempotent.
func (s *Store) EnsureTaskIndexes(ctx context.Context) error {
	col := s.db.Collection(tasksCollection)
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "completed", Value: 1}}},
		{Keys: bson.D{{Key: "startDateTime", Value: 1}}},
	}

	if _, err := col.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create task indexes: %w", err)
	}
	log.Println("task indexes initialized")
	return nil
}
