package runstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoCollection = "runs"

// MongoStore persists runs in MongoDB for server deployments where runs
// must outlive a single process and be shared across instances.
type MongoStore struct {
	client *mongo.Client
	runs   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
// Runs are stored in the "runs" collection of the given database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client: client,
		runs:   client.Database(database).Collection(mongoCollection),
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := s.runs.FindOne(ctx, bson.M{"_id": id}).Decode(&run)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find run: %w", err)
	}
	return &run, nil
}

func (s *MongoStore) Put(ctx context.Context, run *Run) error {
	_, err := s.runs.ReplaceOne(ctx,
		bson.M{"_id": run.ID},
		run,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store run: %w", err)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context, limit int) ([]*Run, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.runs.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer cursor.Close(ctx)

	var runs []*Run
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, fmt.Errorf("decode runs: %w", err)
	}
	return runs, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.runs.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
