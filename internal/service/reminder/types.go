package reminder

import "github.com/google/uuid"

// Scope restricts which tasks a run considers. A zero OwnerID pointer
// means every member of the organization; Automated marks scheduler
// runs so they can be told apart from manual triggers in the log.
type Scope struct {
	OrganizationID uuid.UUID
	OwnerID        *uuid.UUID
	Automated      bool
}

// RecipientResult is the per-recipient outcome of a run.
type RecipientResult struct {
	ProfileID uuid.UUID `json:"profileId"`
	Email     string    `json:"email"`
	TaskCount int       `json:"taskCount"`
	Error     string    `json:"error,omitempty"`
}

// Report summarizes a reminder run. Sent and Failed count recipients;
// SkippedTasks counts tasks dropped by the same-day dedup check.
type Report struct {
	Sent         int               `json:"sent"`
	Failed       int               `json:"failed"`
	SkippedTasks int               `json:"skippedTasks"`
	Results      []RecipientResult `json:"results"`
}
