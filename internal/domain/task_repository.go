package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=task_repository.go -destination=task_repository_mock.go -package=domain

// TaskFilter narrows a task listing. OrganizationID is mandatory; every
// query is tenant-scoped.
type TaskFilter struct {
	OrganizationID uuid.UUID
	OwnerID        *uuid.UUID
	Category       string
	Completed      *bool
	Search         string
	DueFrom        *time.Time
	DueTo          *time.Time
}

type TaskRepository interface {
	Insert(ctx context.Context, task *Task) error
	Update(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, orgID, taskID uuid.UUID) (*Task, error)
	List(ctx context.Context, filter TaskFilter) ([]*Task, error)
	Delete(ctx context.Context, orgID, taskID uuid.UUID) error
}
