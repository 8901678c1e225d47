package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// TaskNameMinLength and TaskNameMaxLength bound the task name after
	// surrounding whitespace is trimmed.
	TaskNameMinLength = 3
	TaskNameMaxLength = 100
)

// Recurrence determines whether and how a completed task spawns a
// successor occurrence.
type Recurrence string

const (
	RecurrenceOneTime   Recurrence = "one-time"
	RecurrenceWeekly    Recurrence = "weekly"
	RecurrenceMonthly   Recurrence = "monthly"
	RecurrenceQuarterly Recurrence = "quarterly"
	RecurrenceYearly    Recurrence = "yearly"
)

func (r Recurrence) String() string {
	return string(r)
}

// IsRecurring reports whether completing a task with this recurrence
// spawns a successor.
func (r Recurrence) IsRecurring() bool {
	return r != RecurrenceOneTime
}

// ParseRecurrence validates a raw recurrence value.
func ParseRecurrence(raw string) (Recurrence, error) {
	switch Recurrence(raw) {
	case RecurrenceOneTime, RecurrenceWeekly, RecurrenceMonthly, RecurrenceQuarterly, RecurrenceYearly:
		return Recurrence(raw), nil
	default:
		return "", ErrInvalidRecurrence
	}
}

// Task is a compliance deadline tracked for one organization member.
// Invariant: CompletedAt is set if and only if Completed is true.
type Task struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	OwnerID        uuid.UUID
	Name           string
	Category       Category
	Description    string
	ClientName     string
	ClientPhone    string
	Deadline       time.Time
	Recurrence     Recurrence
	Completed      bool
	CompletedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewTask builds a pending task, validating the name and recurrence.
func NewTask(orgID, ownerID uuid.UUID, name string, category Category, deadline time.Time, recurrence Recurrence) (*Task, error) {
	name = strings.TrimSpace(name)
	if len(name) < TaskNameMinLength || len(name) > TaskNameMaxLength {
		return nil, ErrInvalidTaskName
	}

	if _, err := ParseRecurrence(recurrence.String()); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	return &Task{
		ID:             uuid.New(),
		OrganizationID: orgID,
		OwnerID:        ownerID,
		Name:           name,
		Category:       category,
		Deadline:       deadline,
		Recurrence:     recurrence,
		Completed:      false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// MarkCompleted sets the completion flag and timestamp.
func (t *Task) MarkCompleted(now time.Time) {
	t.Completed = true
	completedAt := now.UTC()
	t.CompletedAt = &completedAt
	t.UpdatedAt = completedAt
}

// Reopen clears the completion flag and timestamp. Any successor spawned
// by an earlier completion is left untouched.
func (t *Task) Reopen(now time.Time) {
	t.Completed = false
	t.CompletedAt = nil
	t.UpdatedAt = now.UTC()
}

// Successor returns the next pending occurrence of a recurring task,
// carrying over everything but the deadline and completion state.
func (t *Task) Successor(deadline time.Time) *Task {
	now := time.Now().UTC()

	return &Task{
		ID:             uuid.New(),
		OrganizationID: t.OrganizationID,
		OwnerID:        t.OwnerID,
		Name:           t.Name,
		Category:       t.Category,
		Description:    t.Description,
		ClientName:     t.ClientName,
		ClientPhone:    t.ClientPhone,
		Deadline:       deadline,
		Recurrence:     t.Recurrence,
		Completed:      false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
