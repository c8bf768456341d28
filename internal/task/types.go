package task

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filter option constants for the list endpoint.
const (
	FilterAll        = "all"
	FilterCompleted  = "completed"
	FilterInProgress = "inProgress"
	FilterOverdue    = "overdue"
	FilterToday      = "today"
)

// Sort option constants for the list endpoint.
const (
	SortRecent   = "recent"
	SortOldest   = "oldest"
	SortDueDate  = "dueDate"
	SortTitle    = "title"
	SortDuration = "duration"
	SortProgress = "progress"
)

// Document is the persisted shape of a task. All instants are stored in UTC.
type Document struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Title          string             `bson:"title"`
	Description    string             `bson:"description"`
	StartDateTime  time.Time          `bson:"startDateTime"`
	EndDateTime    time.Time          `bson:"endDateTime"`
	EstimatedHours float64            `bson:"estimatedHours"`
	Completed      bool               `bson:"completed"`
	Subtasks       []SubtaskDocument  `bson:"subtasks"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

// SubtaskDocument is the persisted shape of a subtask. Subtasks live inside
// their parent document and get fresh ids whenever the list is replaced.
type SubtaskDocument struct {
	ID             primitive.ObjectID `bson:"_id"`
	Title          string             `bson:"title"`
	EstimatedHours float64            `bson:"estimatedHours"`
	Completed      bool               `bson:"completed"`
}

// SubtaskCreate is the inbound shape of a subtask.
type SubtaskCreate struct {
	Title          string  `json:"title" binding:"required,min=1,max=200"`
	EstimatedHours float64 `json:"estimatedHours" binding:"required,gt=0"`
	Completed      bool    `json:"completed"`
}

// Create is the inbound payload for creating a task. Date strings are
// ISO 8601; a trailing "Z" means UTC.
type Create struct {
	Title          string          `json:"title" binding:"required,min=1,max=200"`
	Description    string          `json:"description" binding:"max=1000"`
	StartDateTime  string          `json:"startDateTime" binding:"required"`
	EndDateTime    string          `json:"endDateTime" binding:"required"`
	EstimatedHours float64         `json:"estimatedHours" binding:"required,gt=0"`
	Completed      bool            `json:"completed"`
	Subtasks       []SubtaskCreate `json:"subtasks" binding:"dive"`
}

// Update is the inbound payload for a partial update. Only fields present in
// the JSON body are applied; a supplied subtask list replaces the stored one
// wholesale.
type Update struct {
	Title          *string          `json:"title" binding:"omitempty,min=1,max=200"`
	Description    *string          `json:"description" binding:"omitempty,max=1000"`
	StartDateTime  *string          `json:"startDateTime"`
	EndDateTime    *string          `json:"endDateTime"`
	EstimatedHours *float64         `json:"estimatedHours" binding:"omitempty,gt=0"`
	Completed      *bool            `json:"completed"`
	Subtasks       *[]SubtaskCreate `json:"subtasks" binding:"omitempty,dive"`
}

// Response is the API-facing shape of a task.
type Response struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	StartDateTime  string            `json:"startDateTime"`
	EndDateTime    string            `json:"endDateTime"`
	EstimatedHours float64           `json:"estimatedHours"`
	Completed      bool              `json:"completed"`
	Subtasks       []SubtaskResponse `json:"subtasks"`
	CreatedAt      string            `json:"created_at"`
	UpdatedAt      string            `json:"updated_at"`
}

// SubtaskResponse is the API-facing shape of a subtask.
type SubtaskResponse struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	EstimatedHours float64 `json:"estimatedHours"`
	Completed      bool    `json:"completed"`
}

// Progress returns the completed-subtask ratio used by the progress sort.
// A task with no subtasks has progress 0.
func (r Response) Progress() float64 {
	if len(r.Subtasks) == 0 {
		return 0
	}
	done := 0
	for _, st := range r.Subtasks {
		if st.Completed {
			done++
		}
	}
	return float64(done) / float64(len(r.Subtasks))
}
