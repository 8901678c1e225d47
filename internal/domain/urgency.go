package domain

// UrgencyLevel classifies a task's temporal proximity to its deadline.
// It is derived from the deadline and completion state at read time and
// is never persisted.
type UrgencyLevel string

const (
	UrgencyUrgent    UrgencyLevel = "urgent"
	UrgencyWarning   UrgencyLevel = "warning"
	UrgencyUpcoming  UrgencyLevel = "upcoming"
	UrgencyNormal    UrgencyLevel = "normal"
	UrgencyCompleted UrgencyLevel = "completed"
)

func (u UrgencyLevel) String() string {
	return string(u)
}
