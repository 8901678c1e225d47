package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/complyline/deadline-service/internal/domain"
	"github.com/complyline/deadline-service/internal/infra/calendar"
	"github.com/complyline/deadline-service/internal/service/recurrence"
	"github.com/complyline/deadline-service/internal/service/urgency"
)

// Service orchestrates the task lifecycle: CRUD, completion with
// recurrence rollover, and reopening. Persistence and calendar sync are
// collaborators; authorization happened upstream.
type Service struct {
	taskRepo   domain.TaskRepository
	engine     *recurrence.Engine
	classifier *urgency.Classifier
	syncer     calendar.Syncer
	now        func() time.Time
}

func NewService(
	taskRepo domain.TaskRepository,
	engine *recurrence.Engine,
	classifier *urgency.Classifier,
	syncer calendar.Syncer,
) *Service {
	if syncer == nil {
		syncer = calendar.NoopSyncer{}
	}
	return &Service{
		taskRepo:   taskRepo,
		engine:     engine,
		classifier: classifier,
		syncer:     syncer,
		now:        time.Now,
	}
}

func (s *Service) Create(ctx context.Context, orgID uuid.UUID, in CreateInput) (*domain.Task, error) {
	category, err := domain.ParseCategory(in.Category)
	if err != nil {
		return nil, err
	}

	recurrenceType, err := domain.ParseRecurrence(in.Recurrence)
	if err != nil {
		return nil, err
	}

	task, err := domain.NewTask(orgID, in.OwnerID, in.Name, category, in.Deadline, recurrenceType)
	if err != nil {
		return nil, err
	}
	task.Description = strings.TrimSpace(in.Description)
	task.ClientName = strings.TrimSpace(in.ClientName)
	task.ClientPhone = strings.TrimSpace(in.ClientPhone)

	if err := s.taskRepo.Insert(ctx, task); err != nil {
		return nil, err
	}

	s.syncCalendar(ctx, task, calendar.ActionCreate)

	return task, nil
}

func (s *Service) Get(ctx context.Context, orgID, taskID uuid.UUID) (*TaskView, error) {
	task, err := s.taskRepo.GetByID(ctx, orgID, taskID)
	if err != nil {
		return nil, err
	}
	return s.view(task), nil
}

// List returns the organization's tasks ordered for display: incomplete
// before completed, nearest deadline first within each group.
func (s *Service) List(ctx context.Context, orgID uuid.UUID, in ListInput) ([]*TaskView, error) {
	tasks, err := s.taskRepo.List(ctx, domain.TaskFilter{
		OrganizationID: orgID,
		OwnerID:        in.OwnerID,
		Category:       in.Category,
		Completed:      in.Completed,
		Search:         in.Search,
	})
	if err != nil {
		return nil, err
	}

	urgency.SortByUrgency(tasks)

	views := make([]*TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, s.view(task))
	}
	return views, nil
}

func (s *Service) Update(ctx context.Context, orgID, taskID uuid.UUID, in UpdateInput) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, orgID, taskID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len(name) < domain.TaskNameMinLength || len(name) > domain.TaskNameMaxLength {
			return nil, domain.ErrInvalidTaskName
		}
		task.Name = name
	}
	if in.Category != nil {
		category, err := domain.ParseCategory(*in.Category)
		if err != nil {
			return nil, err
		}
		task.Category = category
	}
	if in.Description != nil {
		task.Description = strings.TrimSpace(*in.Description)
	}
	if in.ClientName != nil {
		task.ClientName = strings.TrimSpace(*in.ClientName)
	}
	if in.ClientPhone != nil {
		task.ClientPhone = strings.TrimSpace(*in.ClientPhone)
	}
	if in.Deadline != nil {
		task.Deadline = *in.Deadline
	}
	if in.Recurrence != nil {
		recurrenceType, err := domain.ParseRecurrence(*in.Recurrence)
		if err != nil {
			return nil, err
		}
		task.Recurrence = recurrenceType
	}
	task.UpdatedAt = s.now().UTC()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.syncCalendar(ctx, task, calendar.ActionUpdate)

	return task, nil
}

// Complete marks a task done and, for recurring tasks, spawns the next
// occurrence. Completing an already-completed task is a no-op and never
// spawns a duplicate successor. A failed successor insert is reported in
// the result but does not undo the completion.
func (s *Service) Complete(ctx context.Context, orgID, taskID uuid.UUID) (*CompleteResult, error) {
	task, err := s.taskRepo.GetByID(ctx, orgID, taskID)
	if err != nil {
		return nil, err
	}

	if task.Completed {
		return &CompleteResult{Task: task, AlreadyCompleted: true}, nil
	}

	task.MarkCompleted(s.now())
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	result := &CompleteResult{Task: task}

	if task.Recurrence.IsRecurring() {
		nextDeadline, ok := s.engine.NextDeadline(task.Deadline, task.Recurrence)
		if ok {
			successor := task.Successor(nextDeadline)
			if err := s.taskRepo.Insert(ctx, successor); err != nil {
				slog.ErrorContext(ctx, "failed to create recurring successor",
					slog.String("task_id", task.ID.String()),
					slog.String("recurrence", task.Recurrence.String()),
					slog.String("error", err.Error()),
				)
				result.RolloverError = fmt.Sprintf("failed to create next occurrence: %v", err)
			} else {
				result.Successor = successor
				s.syncCalendar(ctx, successor, calendar.ActionCreate)
			}
		}
	}

	s.syncCalendar(ctx, task, calendar.ActionUpdate)

	return result, nil
}

// Reopen marks a completed task pending again and clears completed_at.
// A successor spawned by the earlier completion is left in place.
func (s *Service) Reopen(ctx context.Context, orgID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, orgID, taskID)
	if err != nil {
		return nil, err
	}

	if task.Completed {
		task.Reopen(s.now())
		if err := s.taskRepo.Update(ctx, task); err != nil {
			return nil, err
		}
		s.syncCalendar(ctx, task, calendar.ActionUpdate)
	}

	return task, nil
}

func (s *Service) Delete(ctx context.Context, orgID, taskID uuid.UUID) error {
	task, err := s.taskRepo.GetByID(ctx, orgID, taskID)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, orgID, taskID); err != nil {
		return err
	}

	s.syncCalendar(ctx, task, calendar.ActionDelete)

	return nil
}

// PushToCalendar re-syncs one task on demand.
func (s *Service) PushToCalendar(ctx context.Context, orgID, taskID uuid.UUID, action calendar.Action) error {
	task, err := s.taskRepo.GetByID(ctx, orgID, taskID)
	if err != nil {
		return err
	}
	return s.syncer.Sync(ctx, task, action)
}

func (s *Service) view(task *domain.Task) *TaskView {
	today := s.now()
	return &TaskView{
		Task:           task,
		Urgency:        s.classifier.Classify(task.Deadline, task.Completed, today),
		UrgencyMessage: s.classifier.Message(task.Deadline, task.Completed, today),
	}
}

// syncCalendar is fire-and-forget: a calendar outage must never fail a
// task write.
func (s *Service) syncCalendar(ctx context.Context, task *domain.Task, action calendar.Action) {
	if err := s.syncer.Sync(ctx, task, action); err != nil {
		slog.WarnContext(ctx, "calendar sync failed",
			slog.String("task_id", task.ID.String()),
			slog.String("action", string(action)),
			slog.String("error", err.Error()),
		)
	}
}
