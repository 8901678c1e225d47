package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/complyline/deadline-service/internal/domain"
	"github.com/complyline/deadline-service/internal/testutil"
)

func TestNotificationLogInsertAndQueryByDay(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupSQLiteDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	repo := NewNotificationLogRepository(db)

	taskID := uuid.New()
	userID := uuid.New()
	orgID := uuid.New()

	today := time.Date(2024, 7, 10, 14, 30, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	entries := []*domain.NotificationLogEntry{
		domain.NewNotificationLogEntry(taskID, userID, orgID, domain.ChannelEmail, yesterday),
		domain.NewNotificationLogEntry(taskID, userID, orgID, domain.ChannelEmail, today),
		domain.NewNotificationLogEntry(uuid.New(), userID, orgID, domain.ChannelEmail, today),
	}
	for _, entry := range entries {
		if err := repo.Insert(ctx, entry); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	startOfDay := time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)
	endOfDay := startOfDay.AddDate(0, 0, 1).Add(-time.Nanosecond)

	got, err := repo.ListForTaskBetween(ctx, taskID, startOfDay, endOfDay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d entries for today, want 1", len(got))
	}
	if !got[0].SentAt.Equal(today) {
		t.Errorf("sent_at = %v, want %v", got[0].SentAt, today)
	}
	if got[0].Status != domain.NotificationSent {
		t.Errorf("status = %q, want %q", got[0].Status, domain.NotificationSent)
	}

	// Yesterday's window only sees yesterday's entry.
	got, err = repo.ListForTaskBetween(ctx, taskID, startOfDay.AddDate(0, 0, -1), startOfDay.Add(-time.Nanosecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d entries for yesterday, want 1", len(got))
	}
}

func TestNotificationLogEmptyRange(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupSQLiteDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	repo := NewNotificationLogRepository(db)

	got, err := repo.ListForTaskBetween(ctx, uuid.New(), time.Now().AddDate(0, 0, -1), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d entries", len(got))
	}
}
