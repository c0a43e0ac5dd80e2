package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/masum-diu/nishaan/models"
	"gorm.io/gorm"
)

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, profile *models.Profile) error {
	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	if profile.Email == "" || profile.ID == "" {
		return fmt.Errorf("%w: profile id and email required", ErrInvalidInput)
	}
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", translate(err))
	}
	return nil
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *profileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&profile).Error
	if err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *profileRepo) ListByRole(ctx context.Context, role models.Role) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.WithContext(ctx).Where("role = ?", role).Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func (r *profileRepo) UpdateFullName(ctx context.Context, id, fullName string) error {
	res := r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Update("full_name", fullName)
	if res.Error != nil {
		return fmt.Errorf("failed to update profile: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
