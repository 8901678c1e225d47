package urgency

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/complyline/deadline-service/internal/domain"
)

const (
	// UrgentThresholdDays and friends are the tier boundaries in days
	// remaining until the deadline, evaluated at start-of-day.
	UrgentThresholdDays   = 1
	WarningThresholdDays  = 3
	UpcomingThresholdDays = 5

	// ReminderWindowDays is the upper bound of the reminder window.
	// Overdue tasks stay urgent in-app but stop generating emails.
	ReminderWindowDays = UpcomingThresholdDays
)

// Classifier derives urgency tiers from deadlines. The reference time is
// always passed in by the caller; urgency is never cached or persisted.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// DaysLeft returns the signed number of calendar days between today and
// the deadline. Time-of-day is ignored; negative means overdue.
func DaysLeft(deadline, today time.Time) int {
	diff := startOfDay(deadline).Sub(startOfDay(today))
	return int(math.Round(diff.Hours() / 24))
}

// Classify maps a task's deadline and completion state to an urgency tier.
func (c *Classifier) Classify(deadline time.Time, completed bool, today time.Time) domain.UrgencyLevel {
	if completed {
		return domain.UrgencyCompleted
	}

	daysLeft := DaysLeft(deadline, today)
	switch {
	case daysLeft < 0:
		return domain.UrgencyUrgent
	case daysLeft <= UrgentThresholdDays:
		return domain.UrgencyUrgent
	case daysLeft <= WarningThresholdDays:
		return domain.UrgencyWarning
	case daysLeft <= UpcomingThresholdDays:
		return domain.UrgencyUpcoming
	default:
		return domain.UrgencyNormal
	}
}

// Message produces the tier-appropriate display text for a task.
func (c *Classifier) Message(deadline time.Time, completed bool, today time.Time) string {
	if completed {
		return "Completed"
	}

	daysLeft := DaysLeft(deadline, today)
	switch {
	case daysLeft < 0:
		return fmt.Sprintf("Overdue by %s", pluralDays(-daysLeft))
	case daysLeft == 0:
		return "Due today"
	case daysLeft == 1:
		return "Last day tomorrow"
	case daysLeft <= WarningThresholdDays:
		return "Deadline approaching"
	case daysLeft <= UpcomingThresholdDays:
		return "Upcoming deadline"
	default:
		return fmt.Sprintf("%d days remaining", daysLeft)
	}
}

// IsReminderEligible reports whether a task falls inside the reminder
// window: incomplete and due within ReminderWindowDays, overdue excluded.
func (c *Classifier) IsReminderEligible(deadline time.Time, completed bool, today time.Time) bool {
	if completed {
		return false
	}

	daysLeft := DaysLeft(deadline, today)
	return daysLeft >= 0 && daysLeft <= ReminderWindowDays
}

// SortByUrgency orders tasks for display: incomplete before completed,
// ascending deadline within each group. The sort is stable so ties keep
// their original order.
func SortByUrgency(tasks []*domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Completed != tasks[j].Completed {
			return !tasks[i].Completed
		}
		return tasks[i].Deadline.Before(tasks[j].Deadline)
	})
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
