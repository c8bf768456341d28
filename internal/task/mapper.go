package task

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ZLostTK/IntelliTasker/internal/timeutil"
)

// ToDocument converts a create payload to its persisted shape: dates parsed
// to UTC instants, fresh ids for every subtask, created_at/updated_at stamped
// from now. The end-after-start check here is authoritative and independent
// of any request-time validation, so the mapper is safe to call from any
// entry point.
func ToDocument(payload Create, now time.Time) (*Document, error) {
	start, err := timeutil.Parse(payload.StartDateTime)
	if err != nil {
		return nil, fmt.Errorf("startDateTime: %w", err)
	}
	end, err := timeutil.Parse(payload.EndDateTime)
	if err != nil {
		return nil, fmt.Errorf("endDateTime: %w", err)
	}
	if !end.After(start) {
		return nil, ErrInvalidTimeRange
	}

	now = now.UTC()
	return &Document{
		Title:          payload.Title,
		Description:    payload.Description,
		StartDateTime:  start,
		EndDateTime:    end,
		EstimatedHours: payload.EstimatedHours,
		Completed:      payload.Completed,
		Subtasks:       newSubtaskDocuments(payload.Subtasks),
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// newSubtaskDocuments materializes inbound subtasks with fresh ids. Ids are
// never reused across updates; replacing the list regenerates all of them.
func newSubtaskDocuments(subtasks []SubtaskCreate) []SubtaskDocument {
	docs := make([]SubtaskDocument, 0, len(subtasks))
	for _, st := range subtasks {
		docs = append(docs, SubtaskDocument{
			ID:             primitive.NewObjectID(),
			Title:          st.Title,
			EstimatedHours: st.EstimatedHours,
			Completed:      st.Completed,
		})
	}
	return docs
}

// ToResponse converts a stored document to its API shape: hex ids, ISO 8601
// strings, materialized subtasks. Documents written before the description
// and completed fields existed decode to zero values, which are the correct
// defaults.
func ToResponse(doc *Document) Response {
	subtasks := make([]SubtaskResponse, 0, len(doc.Subtasks))
	for _, st := range doc.Subtasks {
		subtasks = append(subtasks, SubtaskResponse{
			ID:             st.ID.Hex(),
			Title:          st.Title,
			EstimatedHours: st.EstimatedHours,
			Completed:      st.Completed,
		})
	}

	return Response{
		ID:             doc.ID.Hex(),
		Title:          doc.Title,
		Description:    doc.Description,
		StartDateTime:  timeutil.Format(doc.StartDateTime),
		EndDateTime:    timeutil.Format(doc.EndDateTime),
		EstimatedHours: doc.EstimatedHours,
		Completed:      doc.Completed,
		Subtasks:       subtasks,
		CreatedAt:      timeutil.Format(doc.CreatedAt),
		UpdatedAt:      timeutil.Format(doc.UpdatedAt),
	}
}
