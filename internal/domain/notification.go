package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationChannel identifies the transport a reminder went out on.
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
)

// NotificationStatus records the outcome of a send. Entries are only
// written after the transport confirmed the send, so in practice the
// status is always sent; the field exists so the log can also absorb
// entries recorded by other producers.
type NotificationStatus string

const (
	NotificationSent NotificationStatus = "sent"
)

// NotificationLogEntry is an append-only record of one delivered
// reminder. It answers "has a reminder already been sent for this task
// today?" and is never updated after insert.
type NotificationLogEntry struct {
	ID             uuid.UUID
	TaskID         uuid.UUID
	UserID         uuid.UUID
	OrganizationID uuid.UUID
	Channel        NotificationChannel
	SentAt         time.Time
	Status         NotificationStatus
}

// NewNotificationLogEntry records a confirmed send.
func NewNotificationLogEntry(taskID, userID, orgID uuid.UUID, channel NotificationChannel, sentAt time.Time) *NotificationLogEntry {
	return &NotificationLogEntry{
		ID:             uuid.New(),
		TaskID:         taskID,
		UserID:         userID,
		OrganizationID: orgID,
		Channel:        channel,
		SentAt:         sentAt.UTC(),
		Status:         NotificationSent,
	}
}
