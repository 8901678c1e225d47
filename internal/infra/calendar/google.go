package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendarapi "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/complyline/deadline-service/internal/domain"
)

const taskIDProperty = "deadline_task_id"

// GoogleSyncer pushes task snapshots into a Google Calendar as all-day
// events. The task ID travels in a private extended property so events
// can be found again without local state.
type GoogleSyncer struct {
	srv        *calendarapi.Service
	calendarID string
}

// GoogleConfig carries the OAuth client credentials and a previously
// obtained refresh token. Token refresh itself is the oauth2 package's
// business.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	CalendarID   string
}

func NewGoogleSyncer(ctx context.Context, cfg GoogleConfig) (*GoogleSyncer, error) {
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{calendarapi.CalendarEventsScope},
	}

	tokenSource := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	srv, err := calendarapi.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("unable to build calendar client: %w", err)
	}

	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	return &GoogleSyncer{srv: srv, calendarID: calendarID}, nil
}

func (s *GoogleSyncer) Sync(ctx context.Context, task *domain.Task, action Action) error {
	existing, err := s.findByTaskID(ctx, task.ID.String())
	if err != nil {
		return fmt.Errorf("error searching for event: %w", err)
	}

	switch action {
	case ActionDelete:
		if existing == nil {
			return nil
		}
		if err := s.srv.Events.Delete(s.calendarID, existing.Id).Context(ctx).Do(); err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}
		return nil

	case ActionCreate, ActionUpdate:
		event := taskToEvent(task)
		if existing != nil {
			if _, err := s.srv.Events.Patch(s.calendarID, existing.Id, event).Context(ctx).Do(); err != nil {
				return fmt.Errorf("failed to update event: %w", err)
			}
			return nil
		}
		if _, err := s.srv.Events.Insert(s.calendarID, event).Context(ctx).Do(); err != nil {
			return fmt.Errorf("failed to insert event: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unknown calendar action %q", action)
	}
}

func (s *GoogleSyncer) findByTaskID(ctx context.Context, taskID string) (*calendarapi.Event, error) {
	events, err := s.srv.Events.List(s.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", taskIDProperty, taskID)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(events.Items) > 0 {
		return events.Items[0], nil
	}
	return nil, nil
}

func taskToEvent(task *domain.Task) *calendarapi.Event {
	deadline := task.Deadline.Format("2006-01-02")

	summary := task.Name
	if task.Completed {
		summary = "[done] " + summary
	}

	description := task.Description
	if task.ClientName != "" {
		if description != "" {
			description += "\n"
		}
		description += "Client: " + task.ClientName
	}

	slog.Debug("building calendar event",
		slog.String("task_id", task.ID.String()),
		slog.String("deadline", deadline),
	)

	return &calendarapi.Event{
		Summary:     summary,
		Description: description,
		Start:       &calendarapi.EventDateTime{Date: deadline},
		End:         &calendarapi.EventDateTime{Date: task.Deadline.AddDate(0, 0, 1).Format("2006-01-02")},
		ExtendedProperties: &calendarapi.EventExtendedProperties{
			Private: map[string]string{
				taskIDProperty: task.ID.String(),
				"category":     task.Category.String(),
				"recurrence":   task.Recurrence.String(),
				"updated_at":   task.UpdatedAt.Format(time.RFC3339),
			},
		},
	}
}
