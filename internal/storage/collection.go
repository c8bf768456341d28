package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TaskCollection adapts a *mongo.Collection to the narrow interface the task
// repository consumes (task.Collection).
type TaskCollection struct {
	col *mongo.Collection
}

// InsertOne inserts a document and returns the store-assigned ObjectID.
func (c *TaskCollection) InsertOne(ctx context.Context, doc any) (primitive.ObjectID, error) {
	res, err := c.col.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid, nil
}

// FindOne decodes the first match into out. A missing document is reported
// through found, not as an error.
func (c *TaskCollection) FindOne(ctx context.Context, filter bson.M, out any) (bool, error) {
	err := c.col.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Find decodes all matches into out, honoring sort/skip/limit.
func (c *TaskCollection) Find(ctx context.Context, filter bson.M, opts *options.FindOptions, out any) error {
	cursor, err := c.col.Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}

// UpdateOne applies update to the first match and reports the store's
// matched/modified counts.
func (c *TaskCollection) UpdateOne(ctx context.Context, filter, update bson.M) (int64, int64, error) {
	res, err := c.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// DeleteOne removes the first match and reports the deleted count.
func (c *TaskCollection) DeleteOne(ctx context.Context, filter bson.M) (int64, error) {
	res, err := c.col.DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
