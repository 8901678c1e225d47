package reminder

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/complyline/deadline-service/internal/domain"
	"github.com/complyline/deadline-service/internal/infra/email"
	"github.com/complyline/deadline-service/internal/observability/metrics"
	"github.com/complyline/deadline-service/internal/observability/tracing"
	"github.com/complyline/deadline-service/internal/service/urgency"
)

// Service sends deadline reminder emails. A run selects the pending
// tasks inside the reminder window, groups them per owner, drops any
// task that already got an email today, and sends one digest per
// recipient. Repository failures abort the run; a failed send for one
// recipient does not stop the others.
type Service struct {
	taskRepo    domain.TaskRepository
	profileRepo domain.ProfileRepository
	logRepo     domain.NotificationLogRepository
	transport   email.Transport
	classifier  *urgency.Classifier
	metrics     *metrics.ReminderMetrics
	pace        time.Duration
	now         func() time.Time
}

func NewService(
	taskRepo domain.TaskRepository,
	profileRepo domain.ProfileRepository,
	logRepo domain.NotificationLogRepository,
	transport email.Transport,
	classifier *urgency.Classifier,
	reminderMetrics *metrics.ReminderMetrics,
	pace time.Duration,
) *Service {
	return &Service{
		taskRepo:    taskRepo,
		profileRepo: profileRepo,
		logRepo:     logRepo,
		transport:   transport,
		classifier:  classifier,
		metrics:     reminderMetrics,
		pace:        pace,
		now:         time.Now,
	}
}

// Run executes one reminder pass for the given scope.
func (s *Service) Run(ctx context.Context, scope Scope) (*Report, error) {
	ctx, span := tracing.StartReminderRunSpan(ctx, scope.OrganizationID.String(), scope.Automated)
	defer span.End()

	report, err := s.run(ctx, scope)
	if report != nil {
		tracing.RecordReminderRunResult(span, report.Sent, report.Failed, report.SkippedTasks, err)
	} else {
		tracing.RecordReminderRunResult(span, 0, 0, 0, err)
	}
	return report, err
}

func (s *Service) run(ctx context.Context, scope Scope) (*Report, error) {
	started := time.Now()

	pending := false
	tasks, err := s.taskRepo.List(ctx, domain.TaskFilter{
		OrganizationID: scope.OrganizationID,
		OwnerID:        scope.OwnerID,
		Completed:      &pending,
	})
	if err != nil {
		return nil, fmt.Errorf("list pending tasks: %w", err)
	}

	today := s.now()
	dayStart, dayEnd := dayBounds(today)

	// Group the eligible tasks per owner, keeping first-seen order so
	// runs are deterministic.
	byOwner := make(map[uuid.UUID][]*domain.Task)
	var owners []uuid.UUID
	for _, task := range tasks {
		if !s.classifier.IsReminderEligible(task.Deadline, task.Completed, today) {
			continue
		}
		if _, ok := byOwner[task.OwnerID]; !ok {
			owners = append(owners, task.OwnerID)
		}
		byOwner[task.OwnerID] = append(byOwner[task.OwnerID], task)
	}

	report := &Report{Results: []RecipientResult{}}

	for _, ownerID := range owners {
		due, skipped, err := s.dedupe(ctx, byOwner[ownerID], dayStart, dayEnd)
		if err != nil {
			return nil, fmt.Errorf("check notification log: %w", err)
		}
		report.SkippedTasks += skipped
		if len(due) == 0 {
			continue
		}

		result := RecipientResult{ProfileID: ownerID, TaskCount: len(due)}

		profile, err := s.profileRepo.GetByID(ctx, scope.OrganizationID, ownerID)
		if errors.Is(err, domain.ErrProfileNotFound) {
			result.Error = "no profile for task owner"
			report.Failed++
			report.Results = append(report.Results, result)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load profile: %w", err)
		}
		result.Email = profile.Email

		// Space sends out so the provider is not hit with a burst.
		if report.Sent+report.Failed > 0 && s.pace > 0 {
			select {
			case <-ctx.Done():
				return report, ctx.Err()
			case <-time.After(s.pace):
			}
		}

		subject := fmt.Sprintf("Compliance reminder: %d %s due soon", len(due), pluralTasks(len(due)))
		sendCtx, sendSpan := tracing.StartEmailSendSpan(ctx, len(due))
		err = s.transport.Send(sendCtx, profile.Email, subject, s.renderBody(profile, due, today))
		sendSpan.End()
		if err != nil {
			slog.WarnContext(ctx, "reminder send failed",
				slog.String("event", "reminder_send_failed"),
				slog.String("profile_id", ownerID.String()),
				slog.String("error", err.Error()),
			)
			result.Error = err.Error()
			report.Failed++
			report.Results = append(report.Results, result)
			continue
		}

		// Only confirmed sends are logged; a failed send stays eligible
		// for the next run today.
		for _, task := range due {
			entry := domain.NewNotificationLogEntry(task.ID, ownerID, scope.OrganizationID, domain.ChannelEmail, s.now())
			if err := s.logRepo.Insert(ctx, entry); err != nil {
				slog.WarnContext(ctx, "failed to record notification",
					slog.String("event", "notification_log_insert_failed"),
					slog.String("task_id", task.ID.String()),
					slog.String("error", err.Error()),
				)
			}
		}

		report.Sent++
		report.Results = append(report.Results, result)
	}

	if s.metrics != nil {
		s.metrics.RecordRun(ctx, scope.Automated, report.Sent, report.Failed, report.SkippedTasks, time.Since(started))
	}

	slog.InfoContext(ctx, "reminder run finished",
		slog.String("event", "reminder_run_finished"),
		slog.String("organization_id", scope.OrganizationID.String()),
		slog.Bool("automated", scope.Automated),
		slog.Int("sent", report.Sent),
		slog.Int("failed", report.Failed),
		slog.Int("skipped_tasks", report.SkippedTasks),
	)

	return report, nil
}

// dedupe drops tasks that already have a confirmed email in the log
// for the current day.
func (s *Service) dedupe(ctx context.Context, tasks []*domain.Task, dayStart, dayEnd time.Time) ([]*domain.Task, int, error) {
	due := make([]*domain.Task, 0, len(tasks))
	skipped := 0
	for _, task := range tasks {
		entries, err := s.logRepo.ListForTaskBetween(ctx, task.ID, dayStart, dayEnd)
		if err != nil {
			return nil, 0, err
		}
		alreadySent := false
		for _, entry := range entries {
			if entry.Channel == domain.ChannelEmail {
				alreadySent = true
				break
			}
		}
		if alreadySent {
			skipped++
			continue
		}
		due = append(due, task)
	}
	return due, skipped, nil
}

// renderBody builds the digest HTML. Task names, categories, and
// profile names are user-controlled and must be escaped.
func (s *Service) renderBody(profile *domain.Profile, tasks []*domain.Task, today time.Time) string {
	var b strings.Builder
	name := profile.FullName
	if name == "" {
		name = profile.Email
	}
	fmt.Fprintf(&b, "<p>Hello %s,</p>", html.EscapeString(name))
	b.WriteString("<p>The following compliance deadlines need your attention:</p><ul>")
	for _, task := range tasks {
		fmt.Fprintf(&b, "<li><strong>%s</strong> (%s), due %s. %s</li>",
			html.EscapeString(task.Name),
			html.EscapeString(task.Category.String()),
			task.Deadline.Format("02 Jan 2006"),
			s.classifier.Message(task.Deadline, task.Completed, today),
		)
	}
	b.WriteString("</ul><p>ComplyLine</p>")
	return b.String()
}

func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}

func pluralTasks(n int) string {
	if n == 1 {
		return "task"
	}
	return "tasks"
}
