package recurrence

import (
	"time"

	"github.com/complyline/deadline-service/internal/domain"
)

// Engine computes successor deadlines for recurring tasks.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// NextDeadline returns the deadline of the next occurrence. The second
// return value is false for one-time tasks, which have no successor.
// Month and year additions clamp to the last day of a shorter target
// month (Jan 31 + 1 month = Feb 29 or Feb 28).
func (e *Engine) NextDeadline(current time.Time, recurrence domain.Recurrence) (time.Time, bool) {
	switch recurrence {
	case domain.RecurrenceWeekly:
		return current.AddDate(0, 0, 7), true
	case domain.RecurrenceMonthly:
		return addMonthsClamped(current, 1), true
	case domain.RecurrenceQuarterly:
		return addMonthsClamped(current, 3), true
	case domain.RecurrenceYearly:
		return addMonthsClamped(current, 12), true
	default:
		return time.Time{}, false
	}
}

// addMonthsClamped adds calendar months keeping the day-of-month, or the
// last day of the target month when it is shorter. time.AddDate cannot be
// used directly because it normalizes Jan 31 + 1 month into March.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := daysInMonth(firstOfTarget.Year(), firstOfTarget.Month())
	if day > lastDay {
		day = lastDay
	}

	hour, minute, sec := t.Clock()
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
