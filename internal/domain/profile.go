package domain

import "github.com/google/uuid"

// Profile is the recipient directory entry for an organization member.
type Profile struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Email          string
	FullName       string
}
