package calendar

import (
	"context"

	"github.com/complyline/deadline-service/internal/domain"
)

//go:generate mockgen -source=syncer.go -destination=mock.go -package=calendar

// Action tells the syncer what happened to the task.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Syncer mirrors task snapshots into an external calendar. Sync failures
// are reported to the caller but are never allowed to fail the task
// write they follow.
type Syncer interface {
	Sync(ctx context.Context, task *domain.Task, action Action) error
}

// NoopSyncer is used when no calendar integration is configured.
type NoopSyncer struct{}

func (NoopSyncer) Sync(context.Context, *domain.Task, Action) error {
	return nil
}
