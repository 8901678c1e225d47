package urgency

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/complyline/deadline-service/internal/domain"
)

var today = time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)

func deadlineIn(days int) time.Time {
	return today.AddDate(0, 0, days)
}

func TestClassifierClassify(t *testing.T) {
	classifier := NewClassifier()

	tests := []struct {
		name      string
		deadline  time.Time
		completed bool
		want      domain.UrgencyLevel
	}{
		{
			name:     "overdue by two days is urgent",
			deadline: deadlineIn(-2),
			want:     domain.UrgencyUrgent,
		},
		{
			name:     "overdue by one day is urgent",
			deadline: deadlineIn(-1),
			want:     domain.UrgencyUrgent,
		},
		{
			name:     "due today is urgent",
			deadline: deadlineIn(0),
			want:     domain.UrgencyUrgent,
		},
		{
			name:     "one day left is urgent",
			deadline: deadlineIn(1),
			want:     domain.UrgencyUrgent,
		},
		{
			name:     "two days left is warning",
			deadline: deadlineIn(2),
			want:     domain.UrgencyWarning,
		},
		{
			name:     "three days left is warning",
			deadline: deadlineIn(3),
			want:     domain.UrgencyWarning,
		},
		{
			name:     "four days left is upcoming",
			deadline: deadlineIn(4),
			want:     domain.UrgencyUpcoming,
		},
		{
			name:     "five days left is upcoming",
			deadline: deadlineIn(5),
			want:     domain.UrgencyUpcoming,
		},
		{
			name:     "six days left is normal",
			deadline: deadlineIn(6),
			want:     domain.UrgencyNormal,
		},
		{
			name:      "completed task is completed regardless of deadline",
			deadline:  deadlineIn(-30),
			completed: true,
			want:      domain.UrgencyCompleted,
		},
		{
			name:      "completed future task is completed",
			deadline:  deadlineIn(30),
			completed: true,
			want:      domain.UrgencyCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.deadline, tt.completed, today)
			if got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifierClassifyIgnoresTimeOfDay(t *testing.T) {
	classifier := NewClassifier()

	// Deadline later today but at an earlier clock time must still be
	// "due today", not overdue.
	deadline := time.Date(2024, 6, 10, 0, 15, 0, 0, time.UTC)

	if got := DaysLeft(deadline, today); got != 0 {
		t.Errorf("DaysLeft() = %d, want 0", got)
	}
	if got := classifier.Classify(deadline, false, today); got != domain.UrgencyUrgent {
		t.Errorf("Classify() = %v, want %v", got, domain.UrgencyUrgent)
	}
}

func TestClassifierMessage(t *testing.T) {
	classifier := NewClassifier()

	tests := []struct {
		name      string
		deadline  time.Time
		completed bool
		want      string
	}{
		{name: "overdue plural", deadline: deadlineIn(-3), want: "Overdue by 3 days"},
		{name: "overdue singular", deadline: deadlineIn(-1), want: "Overdue by 1 day"},
		{name: "due today", deadline: deadlineIn(0), want: "Due today"},
		{name: "last day tomorrow", deadline: deadlineIn(1), want: "Last day tomorrow"},
		{name: "approaching at two days", deadline: deadlineIn(2), want: "Deadline approaching"},
		{name: "approaching at three days", deadline: deadlineIn(3), want: "Deadline approaching"},
		{name: "upcoming at five days", deadline: deadlineIn(5), want: "Upcoming deadline"},
		{name: "remaining beyond window", deadline: deadlineIn(12), want: "12 days remaining"},
		{name: "completed", deadline: deadlineIn(2), completed: true, want: "Completed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Message(tt.deadline, tt.completed, today)
			if got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifierIsReminderEligible(t *testing.T) {
	classifier := NewClassifier()

	tests := []struct {
		name      string
		deadline  time.Time
		completed bool
		want      bool
	}{
		{name: "overdue excluded from window", deadline: deadlineIn(-2), want: false},
		{name: "overdue yesterday excluded", deadline: deadlineIn(-1), want: false},
		{name: "due today eligible", deadline: deadlineIn(0), want: true},
		{name: "five days left eligible", deadline: deadlineIn(5), want: true},
		{name: "six days left not eligible", deadline: deadlineIn(6), want: false},
		{name: "completed not eligible", deadline: deadlineIn(2), completed: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.IsReminderEligible(tt.deadline, tt.completed, today)
			if got != tt.want {
				t.Errorf("IsReminderEligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortByUrgency(t *testing.T) {
	mkTask := func(name string, deadline time.Time, completed bool) *domain.Task {
		return &domain.Task{
			ID:        uuid.New(),
			Name:      name,
			Deadline:  deadline,
			Completed: completed,
		}
	}

	tasks := []*domain.Task{
		mkTask("done-early", deadlineIn(-5), true),
		mkTask("late", deadlineIn(9), false),
		mkTask("soon", deadlineIn(1), false),
		mkTask("done-late", deadlineIn(20), true),
		mkTask("soon-tie", deadlineIn(1), false),
	}

	SortByUrgency(tasks)

	wantOrder := []string{"soon", "soon-tie", "late", "done-early", "done-late"}
	for i, want := range wantOrder {
		if tasks[i].Name != want {
			t.Fatalf("position %d = %q, want %q", i, tasks[i].Name, want)
		}
	}
}

func TestSortByUrgencyCompletedAlwaysLast(t *testing.T) {
	tasks := []*domain.Task{
		{Name: "completed-overdue", Deadline: deadlineIn(-10), Completed: true},
		{Name: "pending-far", Deadline: deadlineIn(60), Completed: false},
	}

	SortByUrgency(tasks)

	if tasks[0].Name != "pending-far" {
		t.Errorf("expected incomplete task first, got %q", tasks[0].Name)
	}
}
