package task

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/ZLostTK/IntelliTasker/internal/timeutil"
)

// Repository performs task CRUD against an injected collection. It holds no
// state beyond the collection handle and a clock; every call is independent.
type Repository struct {
	col Collection
	now func() time.Time
}

// NewRepository creates a repository over the given collection.
func NewRepository(col Collection) *Repository {
	return &Repository{col: col, now: time.Now}
}

// NewRepositoryWithClock creates a repository with a fixed clock (for tests).
func NewRepositoryWithClock(col Collection, now func() time.Time) *Repository {
	return &Repository{col: col, now: now}
}

// Create inserts a new task and returns the stored shape. The document is
// re-read after insert so the returned id and timestamps reflect what the
// store actually persisted, not just the caller's input.
func (r *Repository) Create(ctx context.Context, payload Create) (*Response, error) {
	doc, err := ToDocument(payload, r.now())
	if err != nil {
		return nil, err
	}

	id, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	log.Printf("task created: %s", id.Hex())

	var created Document
	found, err := r.col.FindOne(ctx, bson.M{"_id": id}, &created)
	if err != nil {
		return nil, fmt.Errorf("read back task %s: %w", id.Hex(), err)
	}
	if !found {
		return nil, ErrNotFound
	}

	resp := ToResponse(&created)
	return &resp, nil
}

// GetByID returns a task by its external id. A malformed id fails with
// ErrInvalidID, a well-formed id with no match fails with ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id string) (*Response, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var doc Document
	found, err := r.col.FindOne(ctx, bson.M{"_id": oid}, &doc)
	if err != nil {
		return nil, fmt.Errorf("find task %s: %w", id, err)
	}
	if !found {
		return nil, ErrNotFound
	}

	resp := ToResponse(&doc)
	return &resp, nil
}

// List returns tasks matching the options. Empty results are a valid empty
// slice, never an error.
func (r *Repository) List(ctx context.Context, opts ListOptions) ([]Response, error) {
	filter, findOpts, progressSort := opts.Build(r.now())

	var docs []Document
	if err := r.col.Find(ctx, filter, findOpts, &docs); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]Response, 0, len(docs))
	for i := range docs {
		tasks = append(tasks, ToResponse(&docs[i]))
	}

	if progressSort {
		SortByProgress(tasks)
	}

	log.Printf("tasks listed: %d (filterBy=%q sortBy=%q)", len(tasks), opts.FilterBy, opts.SortBy)
	return tasks, nil
}

// Update applies a partial update. Only supplied fields change; a supplied
// subtask list replaces the stored one wholesale with fresh ids; updated_at
// always refreshes. The time range is re-validated against the merged
// (existing-or-new) bounds whenever either is supplied.
func (r *Repository) Update(ctx context.Context, id string, payload Update) (*Response, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var existing Document
	found, err := r.col.FindOne(ctx, bson.M{"_id": oid}, &existing)
	if err != nil {
		return nil, fmt.Errorf("find task %s: %w", id, err)
	}
	if !found {
		return nil, ErrNotFound
	}

	set := bson.M{}
	if payload.Title != nil {
		set["title"] = *payload.Title
	}
	if payload.Description != nil {
		set["description"] = *payload.Description
	}
	if payload.EstimatedHours != nil {
		set["estimatedHours"] = *payload.EstimatedHours
	}
	if payload.Completed != nil {
		set["completed"] = *payload.Completed
	}

	if payload.StartDateTime != nil || payload.EndDateTime != nil {
		start := existing.StartDateTime
		end := existing.EndDateTime
		if payload.StartDateTime != nil {
			if start, err = timeutil.Parse(*payload.StartDateTime); err != nil {
				return nil, fmt.Errorf("startDateTime: %w", err)
			}
		}
		if payload.EndDateTime != nil {
			if end, err = timeutil.Parse(*payload.EndDateTime); err != nil {
				return nil, fmt.Errorf("endDateTime: %w", err)
			}
		}
		if !end.After(start) {
			return nil, ErrInvalidTimeRange
		}
		if payload.StartDateTime != nil {
			set["startDateTime"] = start
		}
		if payload.EndDateTime != nil {
			set["endDateTime"] = end
		}
	}

	if payload.Subtasks != nil {
		set["subtasks"] = newSubtaskDocuments(*payload.Subtasks)
	}

	set["updated_at"] = r.now().UTC()

	matched, modified, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}
	// modified == 0 with a match means a no-op payload; that reads as not
	// found and the frontend depends on it.
	if matched == 0 || modified == 0 {
		log.Printf("task not modified: %s", id)
		return nil, ErrNotFound
	}
	log.Printf("task updated: %s", id)

	var updated Document
	found, err = r.col.FindOne(ctx, bson.M{"_id": oid}, &updated)
	if err != nil {
		return nil, fmt.Errorf("read back task %s: %w", id, err)
	}
	if !found {
		return nil, ErrNotFound
	}

	resp := ToResponse(&updated)
	return &resp, nil
}

// Delete removes a task. It returns true iff a document was actually
// removed; a malformed id fails with ErrInvalidID.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := ParseID(id)
	if err != nil {
		return false, err
	}

	deleted, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete task %s: %w", id, err)
	}
	if deleted == 0 {
		return false, nil
	}
	log.Printf("task deleted: %s", id)
	return true, nil
}
