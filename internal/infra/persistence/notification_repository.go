package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/complyline/deadline-service/internal/domain"
)

type notificationRecord struct {
	ID             string    `gorm:"type:uuid;primaryKey"`
	TaskID         string    `gorm:"type:uuid;not null;index:idx_notifications_task_sent,priority:1"`
	UserID         string    `gorm:"type:uuid;not null"`
	OrganizationID string    `gorm:"type:uuid;not null;index:idx_notifications_org"`
	Channel        string    `gorm:"size:20;not null"`
	SentAt         time.Time `gorm:"not null;index:idx_notifications_task_sent,priority:2"`
	Status         string    `gorm:"size:20;not null"`
}

func (notificationRecord) TableName() string {
	return "notification_log"
}

type notificationLogRepository struct {
	db *gorm.DB
}

func NewNotificationLogRepository(db *gorm.DB) domain.NotificationLogRepository {
	return &notificationLogRepository{db: db}
}

// Insert appends one entry. The log is append-only; there is no update
// path.
func (r *notificationLogRepository) Insert(ctx context.Context, entry *domain.NotificationLogEntry) error {
	record := notificationRecord{
		ID:             entry.ID.String(),
		TaskID:         entry.TaskID.String(),
		UserID:         entry.UserID.String(),
		OrganizationID: entry.OrganizationID.String(),
		Channel:        string(entry.Channel),
		SentAt:         entry.SentAt,
		Status:         string(entry.Status),
	}

	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert notification log entry: %w", err)
	}
	return nil
}

func (r *notificationLogRepository) ListForTaskBetween(ctx context.Context, taskID uuid.UUID, from, to time.Time) ([]*domain.NotificationLogEntry, error) {
	var records []notificationRecord

	err := r.db.WithContext(ctx).
		Where("task_id = ? AND sent_at >= ? AND sent_at <= ?", taskID.String(), from, to).
		Order("sent_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query notification log: %w", err)
	}

	entries := make([]*domain.NotificationLogEntry, 0, len(records))
	for i := range records {
		entry, err := recordToNotification(&records[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func recordToNotification(record *notificationRecord) (*domain.NotificationLogEntry, error) {
	id, err := uuid.Parse(record.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid notification id %q: %w", record.ID, err)
	}
	taskID, err := uuid.Parse(record.TaskID)
	if err != nil {
		return nil, fmt.Errorf("invalid task id %q: %w", record.TaskID, err)
	}
	userID, err := uuid.Parse(record.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", record.UserID, err)
	}
	orgID, err := uuid.Parse(record.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("invalid organization id %q: %w", record.OrganizationID, err)
	}

	return &domain.NotificationLogEntry{
		ID:             id,
		TaskID:         taskID,
		UserID:         userID,
		OrganizationID: orgID,
		Channel:        domain.NotificationChannel(record.Channel),
		SentAt:         record.SentAt,
		Status:         domain.NotificationStatus(record.Status),
	}, nil
}
