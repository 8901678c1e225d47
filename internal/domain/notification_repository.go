package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=notification_repository.go -destination=notification_repository_mock.go -package=domain

type NotificationLogRepository interface {
	Insert(ctx context.Context, entry *NotificationLogEntry) error
	ListForTaskBetween(ctx context.Context, taskID uuid.UUID, from, to time.Time) ([]*NotificationLogEntry, error)
}
