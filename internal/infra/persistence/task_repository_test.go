package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/complyline/deadline-service/internal/domain"
	"github.com/complyline/deadline-service/internal/testutil"
)

func setupTaskRepo(t *testing.T) (*gorm.DB, domain.TaskRepository) {
	t.Helper()

	db := testutil.SetupSQLiteDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db, NewTaskRepository(db)
}

func newTestTask(t *testing.T, orgID uuid.UUID, name string, deadline time.Time) *domain.Task {
	t.Helper()

	category, err := domain.ParseCategory("gst")
	if err != nil {
		t.Fatalf("failed to parse category: %v", err)
	}
	task, err := domain.NewTask(orgID, uuid.New(), name, category, deadline, domain.RecurrenceMonthly)
	if err != nil {
		t.Fatalf("failed to build task: %v", err)
	}
	return task
}

func TestTaskRepositoryInsertAndGet(t *testing.T) {
	ctx := context.Background()
	_, repo := setupTaskRepo(t)

	orgID := uuid.New()
	deadline := time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC)
	task := newTestTask(t, orgID, "GSTR-3B filing", deadline)
	task.ClientName = "Acme Traders"

	if err := repo.Insert(ctx, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, orgID, task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Name != task.Name {
		t.Errorf("name = %q, want %q", got.Name, task.Name)
	}
	if got.Category.String() != "gst" || got.Category.IsCustom() {
		t.Errorf("category round-trip failed: %+v", got.Category)
	}
	if !got.Deadline.Equal(deadline) {
		t.Errorf("deadline = %v, want %v", got.Deadline, deadline)
	}
	if got.Completed || got.CompletedAt != nil {
		t.Errorf("new task should be pending, got completed=%v completedAt=%v", got.Completed, got.CompletedAt)
	}
	if got.ClientName != "Acme Traders" {
		t.Errorf("client name = %q", got.ClientName)
	}
}

func TestTaskRepositoryCustomCategoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, repo := setupTaskRepo(t)

	orgID := uuid.New()
	category, err := domain.CustomCategory("Pollution Control Board")
	if err != nil {
		t.Fatalf("failed to build category: %v", err)
	}

	task, err := domain.NewTask(orgID, uuid.New(), "Consent renewal", category, time.Now().AddDate(0, 1, 0), domain.RecurrenceYearly)
	if err != nil {
		t.Fatalf("failed to build task: %v", err)
	}

	if err := repo.Insert(ctx, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, orgID, task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Category.IsCustom() || got.Category.String() != "Pollution Control Board" {
		t.Errorf("custom category round-trip failed: %+v", got.Category)
	}
}

func TestTaskRepositoryUpdateClearsCompletedAt(t *testing.T) {
	ctx := context.Background()
	_, repo := setupTaskRepo(t)

	orgID := uuid.New()
	task := newTestTask(t, orgID, "Insurance renewal", time.Now().AddDate(0, 0, 10))
	if err := repo.Insert(ctx, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	task.MarkCompleted(time.Now())
	if err := repo.Update(ctx, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, orgID, task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Completed || got.CompletedAt == nil {
		t.Fatalf("expected completed with timestamp, got %+v", got)
	}

	task.Reopen(time.Now())
	if err := repo.Update(ctx, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err = repo.GetByID(ctx, orgID, task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Completed {
		t.Error("task should be pending after reopen")
	}
	if got.CompletedAt != nil {
		t.Errorf("completed_at should be cleared after reopen, got %v", got.CompletedAt)
	}
}

func TestTaskRepositoryListFilters(t *testing.T) {
	ctx := context.Background()
	_, repo := setupTaskRepo(t)

	orgID := uuid.New()
	otherOrgID := uuid.New()
	base := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	gstTask := newTestTask(t, orgID, "GSTR-1 filing", base.AddDate(0, 0, 3))
	if err := repo.Insert(ctx, gstTask); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	insurance, err := domain.ParseCategory("insurance")
	if err != nil {
		t.Fatalf("failed to parse category: %v", err)
	}
	insuranceTask, err := domain.NewTask(orgID, uuid.New(), "Fleet insurance", insurance, base.AddDate(0, 0, 1), domain.RecurrenceYearly)
	if err != nil {
		t.Fatalf("failed to build task: %v", err)
	}
	insuranceTask.MarkCompleted(base)
	if err := repo.Insert(ctx, insuranceTask); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	foreign := newTestTask(t, otherOrgID, "Foreign org task", base.AddDate(0, 0, 2))
	if err := repo.Insert(ctx, foreign); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name      string
		filter    domain.TaskFilter
		wantNames []string
	}{
		{
			name:      "organization scoping",
			filter:    domain.TaskFilter{OrganizationID: orgID},
			wantNames: []string{"Fleet insurance", "GSTR-1 filing"},
		},
		{
			name:      "category filter",
			filter:    domain.TaskFilter{OrganizationID: orgID, Category: "gst"},
			wantNames: []string{"GSTR-1 filing"},
		},
		{
			name: "pending only",
			filter: domain.TaskFilter{
				OrganizationID: orgID,
				Completed:      boolPtr(false),
			},
			wantNames: []string{"GSTR-1 filing"},
		},
		{
			name:      "name search is case-insensitive",
			filter:    domain.TaskFilter{OrganizationID: orgID, Search: "gstr"},
			wantNames: []string{"GSTR-1 filing"},
		},
		{
			name: "deadline range",
			filter: domain.TaskFilter{
				OrganizationID: orgID,
				DueFrom:        timePtr(base),
				DueTo:          timePtr(base.AddDate(0, 0, 2)),
			},
			wantNames: []string{"Fleet insurance"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.wantNames) {
				t.Fatalf("got %d tasks, want %d", len(got), len(tt.wantNames))
			}
			for i, want := range tt.wantNames {
				if got[i].Name != want {
					t.Errorf("task %d = %q, want %q", i, got[i].Name, want)
				}
			}
		})
	}
}

func TestTaskRepositoryGetByIDWrongOrg(t *testing.T) {
	ctx := context.Background()
	_, repo := setupTaskRepo(t)

	orgID := uuid.New()
	task := newTestTask(t, orgID, "Road tax", time.Now().AddDate(0, 0, 5))
	if err := repo.Insert(ctx, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := repo.GetByID(ctx, uuid.New(), task.ID)
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound for foreign org, got %v", err)
	}
}

func TestTaskRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	_, repo := setupTaskRepo(t)

	orgID := uuid.New()
	task := newTestTask(t, orgID, "Trade license", time.Now().AddDate(0, 0, 5))
	if err := repo.Insert(ctx, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.Delete(ctx, orgID, task.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.GetByID(ctx, orgID, task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound after delete, got %v", err)
	}

	if err := repo.Delete(ctx, orgID, task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound on double delete, got %v", err)
	}
}

func boolPtr(b bool) *bool           { return &b }
func timePtr(t time.Time) *time.Time { return &t }
