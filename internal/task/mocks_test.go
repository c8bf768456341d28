package task

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var errMockStore = errors.New("store unavailable")

// MockCollection implements Collection for testing.
type MockCollection struct {
	InsertOneFunc func(ctx context.Context, doc any) (primitive.ObjectID, error)
	FindOneFunc   func(ctx context.Context, filter bson.M, out any) (bool, error)
	FindFunc      func(ctx context.Context, filter bson.M, opts *options.FindOptions, out any) error
	UpdateOneFunc func(ctx context.Context, filter, update bson.M) (int64, int64, error)
	DeleteOneFunc func(ctx context.Context, filter bson.M) (int64, error)
}

func (m *MockCollection) InsertOne(ctx context.Context, doc any) (primitive.ObjectID, error) {
	if m.InsertOneFunc != nil {
		return m.InsertOneFunc(ctx, doc)
	}
	return primitive.NewObjectID(), nil
}

func (m *MockCollection) FindOne(ctx context.Context, filter bson.M, out any) (bool, error) {
	if m.FindOneFunc != nil {
		return m.FindOneFunc(ctx, filter, out)
	}
	return false, nil
}

func (m *MockCollection) Find(ctx context.Context, filter bson.M, opts *options.FindOptions, out any) error {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, filter, opts, out)
	}
	return nil
}

func (m *MockCollection) UpdateOne(ctx context.Context, filter, update bson.M) (int64, int64, error) {
	if m.UpdateOneFunc != nil {
		return m.UpdateOneFunc(ctx, filter, update)
	}
	return 0, 0, nil
}

func (m *MockCollection) DeleteOne(ctx context.Context, filter bson.M) (int64, error) {
	if m.DeleteOneFunc != nil {
		return m.DeleteOneFunc(ctx, filter)
	}
	return 0, nil
}

// memoryCollection is a tiny in-memory Collection backed by a map, for
// repository tests that need real insert/read-back behavior.
type memoryCollection struct {
	docs map[primitive.ObjectID]Document
}

func newMemoryCollection() *memoryCollection {
	return &memoryCollection{docs: make(map[primitive.ObjectID]Document)}
}

func (c *memoryCollection) InsertOne(_ context.Context, doc any) (primitive.ObjectID, error) {
	d := *doc.(*Document)
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	c.docs[d.ID] = d
	return d.ID, nil
}

func (c *memoryCollection) FindOne(_ context.Context, filter bson.M, out any) (bool, error) {
	id, ok := filter["_id"].(primitive.ObjectID)
	if !ok {
		return false, errors.New("memoryCollection supports _id filters only")
	}
	doc, ok := c.docs[id]
	if !ok {
		return false, nil
	}
	*out.(*Document) = doc
	return true, nil
}

func (c *memoryCollection) Find(_ context.Context, _ bson.M, _ *options.FindOptions, out any) error {
	all := make([]Document, 0, len(c.docs))
	for _, d := range c.docs {
		all = append(all, d)
	}
	*out.(*[]Document) = all
	return nil
}

func (c *memoryCollection) UpdateOne(_ context.Context, filter, update bson.M) (int64, int64, error) {
	id, ok := filter["_id"].(primitive.ObjectID)
	if !ok {
		return 0, 0, errors.New("memoryCollection supports _id filters only")
	}
	doc, ok := c.docs[id]
	if !ok {
		return 0, 0, nil
	}

	set := update["$set"].(bson.M)
	for k, v := range set {
		switch k {
		case "title":
			doc.Title = v.(string)
		case "description":
			doc.Description = v.(string)
		case "startDateTime":
			doc.StartDateTime = v.(time.Time)
		case "endDateTime":
			doc.EndDateTime = v.(time.Time)
		case "estimatedHours":
			doc.EstimatedHours = v.(float64)
		case "completed":
			doc.Completed = v.(bool)
		case "subtasks":
			doc.Subtasks = v.([]SubtaskDocument)
		case "updated_at":
			doc.UpdatedAt = v.(time.Time)
		}
	}
	c.docs[id] = doc
	return 1, 1, nil
}

func (c *memoryCollection) DeleteOne(_ context.Context, filter bson.M) (int64, error) {
	id, ok := filter["_id"].(primitive.ObjectID)
	if !ok {
		return 0, errors.New("memoryCollection supports _id filters only")
	}
	if _, ok := c.docs[id]; !ok {
		return 0, nil
	}
	delete(c.docs, id)
	return 1, nil
}
