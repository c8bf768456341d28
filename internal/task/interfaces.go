package task

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the narrow slice of a document-store collection the
// repository needs. Implementations: storage.TaskCollection (MongoDB).
type Collection interface {
	// InsertOne inserts a document and returns the assigned id.
	InsertOne(ctx context.Context, doc any) (primitive.ObjectID, error)

	// FindOne decodes the first matching document into out. found is false
	// when nothing matches; err is reserved for transport/decoding failures.
	FindOne(ctx context.Context, filter bson.M, out any) (found bool, err error)

	// Find decodes all matching documents into out (a pointer to a slice),
	// honoring sort/skip/limit from opts.
	Find(ctx context.Context, filter bson.M, opts *options.FindOptions, out any) error

	// UpdateOne applies update to the first matching document.
	UpdateOne(ctx context.Context, filter, update bson.M) (matched, modified int64, err error)

	// DeleteOne removes the first matching document.
	DeleteOne(ctx context.Context, filter bson.M) (deleted int64, err error)
}
