package tasks

import (
	"time"

	"github.com/google/uuid"

	"github.com/complyline/deadline-service/internal/domain"
)

// CreateInput carries the validated-at-the-edge fields for a new task.
type CreateInput struct {
	OwnerID     uuid.UUID
	Name        string
	Category    string
	Description string
	ClientName  string
	ClientPhone string
	Deadline    time.Time
	Recurrence  string
}

// UpdateInput is a partial update; nil fields are left untouched.
type UpdateInput struct {
	Name        *string
	Category    *string
	Description *string
	ClientName  *string
	ClientPhone *string
	Deadline    *time.Time
	Recurrence  *string
}

// ListInput narrows and scopes a listing.
type ListInput struct {
	OwnerID   *uuid.UUID
	Category  string
	Completed *bool
	Search    string
}

// TaskView pairs a task with its urgency, derived at read time.
type TaskView struct {
	Task           *domain.Task
	Urgency        domain.UrgencyLevel
	UrgencyMessage string
}

// CompleteResult reports a completion and, for recurring tasks, the
// spawned successor. RolloverError is set when the successor insert
// failed; the completion itself has still been persisted.
type CompleteResult struct {
	Task             *domain.Task
	AlreadyCompleted bool
	Successor        *domain.Task
	RolloverError    string
}
