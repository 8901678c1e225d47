package domain

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=profile_repository.go -destination=profile_repository_mock.go -package=domain

type ProfileRepository interface {
	GetByID(ctx context.Context, orgID, profileID uuid.UUID) (*Profile, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*Profile, error)
}
