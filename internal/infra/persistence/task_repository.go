package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/complyline/deadline-service/internal/domain"
)

type taskRecord struct {
	ID             string     `gorm:"type:uuid;primaryKey"`
	OrganizationID string     `gorm:"type:uuid;not null;index:idx_tasks_org"`
	OwnerID        string     `gorm:"type:uuid;not null;index:idx_tasks_owner"`
	Name           string     `gorm:"size:100;not null"`
	Category       string     `gorm:"size:100;not null"`
	CategoryCustom bool       `gorm:"not null"`
	Description    string     `gorm:"type:text"`
	ClientName     string     `gorm:"size:100"`
	ClientPhone    string     `gorm:"size:30"`
	Deadline       time.Time  `gorm:"not null;index:idx_tasks_deadline"`
	Recurrence     string     `gorm:"size:20;not null"`
	Completed      bool       `gorm:"not null"`
	CompletedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (taskRecord) TableName() string {
	return "compliance_tasks"
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) domain.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Insert(ctx context.Context, task *domain.Task) error {
	record := taskToRecord(task)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// Update writes every column, including a NULL completed_at when the task
// was reopened.
func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	record := taskToRecord(task)

	result := r.db.WithContext(ctx).
		Where("organization_id = ?", task.OrganizationID.String()).
		Save(&record)
	if result.Error != nil {
		return fmt.Errorf("failed to update task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, orgID, taskID uuid.UUID) (*domain.Task, error) {
	var record taskRecord

	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID.String(), taskID.String()).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return recordToTask(&record)
}

func (r *taskRepository) List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	query := r.db.WithContext(ctx).
		Model(&taskRecord{}).
		Where("organization_id = ?", filter.OrganizationID.String())

	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", filter.OwnerID.String())
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("lower(name) LIKE ? OR lower(client_name) LIKE ?", pattern, pattern)
	}
	if filter.DueFrom != nil {
		query = query.Where("deadline >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		query = query.Where("deadline <= ?", *filter.DueTo)
	}

	var records []taskRecord
	if err := query.Order("deadline ASC, created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(records))
	for i := range records {
		task, err := recordToTask(&records[i])
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (r *taskRepository) Delete(ctx context.Context, orgID, taskID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID.String(), taskID.String()).
		Delete(&taskRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func taskToRecord(task *domain.Task) taskRecord {
	return taskRecord{
		ID:             task.ID.String(),
		OrganizationID: task.OrganizationID.String(),
		OwnerID:        task.OwnerID.String(),
		Name:           task.Name,
		Category:       task.Category.String(),
		CategoryCustom: task.Category.IsCustom(),
		Description:    task.Description,
		ClientName:     task.ClientName,
		ClientPhone:    task.ClientPhone,
		Deadline:       task.Deadline,
		Recurrence:     task.Recurrence.String(),
		Completed:      task.Completed,
		CompletedAt:    task.CompletedAt,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}

func recordToTask(record *taskRecord) (*domain.Task, error) {
	id, err := uuid.Parse(record.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid task id %q: %w", record.ID, err)
	}
	orgID, err := uuid.Parse(record.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("invalid organization id %q: %w", record.OrganizationID, err)
	}
	ownerID, err := uuid.Parse(record.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id %q: %w", record.OwnerID, err)
	}

	var category domain.Category
	if record.CategoryCustom {
		category, err = domain.CustomCategory(record.Category)
	} else {
		category, err = domain.ParseCategory(record.Category)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid category %q: %w", record.Category, err)
	}

	recurrence, err := domain.ParseRecurrence(record.Recurrence)
	if err != nil {
		return nil, fmt.Errorf("invalid recurrence %q: %w", record.Recurrence, err)
	}

	return &domain.Task{
		ID:             id,
		OrganizationID: orgID,
		OwnerID:        ownerID,
		Name:           record.Name,
		Category:       category,
		Description:    record.Description,
		ClientName:     record.ClientName,
		ClientPhone:    record.ClientPhone,
		Deadline:       record.Deadline,
		Recurrence:     recurrence,
		Completed:      record.Completed,
		CompletedAt:    record.CompletedAt,
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}, nil
}
