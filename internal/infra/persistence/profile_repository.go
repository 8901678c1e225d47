package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/complyline/deadline-service/internal/domain"
)

type profileRecord struct {
	ID             string `gorm:"type:uuid;primaryKey"`
	OrganizationID string `gorm:"type:uuid;not null;index:idx_profiles_org"`
	Email          string `gorm:"size:254;not null"`
	FullName       string `gorm:"size:100"`
}

func (profileRecord) TableName() string {
	return "profiles"
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) domain.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(ctx context.Context, orgID, profileID uuid.UUID) (*domain.Profile, error) {
	var record profileRecord

	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID.String(), profileID.String()).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return recordToProfile(&record)
}

func (r *profileRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*domain.Profile, error) {
	var records []profileRecord

	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID.String()).
		Order("full_name ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	profiles := make([]*domain.Profile, 0, len(records))
	for i := range records {
		profile, err := recordToProfile(&records[i])
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func recordToProfile(record *profileRecord) (*domain.Profile, error) {
	id, err := uuid.Parse(record.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid profile id %q: %w", record.ID, err)
	}
	orgID, err := uuid.Parse(record.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("invalid organization id %q: %w", record.OrganizationID, err)
	}

	return &domain.Profile{
		ID:             id,
		OrganizationID: orgID,
		Email:          record.Email,
		FullName:       record.FullName,
	}, nil
}
