package repository

import (
	"context"
	"fmt"

	"github.com/masum-diu/nishaan/models"
	"gorm.io/gorm"
)

type bannerRepo struct {
	db *gorm.DB
}

func NewBannerRepository(db *gorm.DB) BannerRepository {
	return &bannerRepo{db: db}
}

func (r *bannerRepo) List(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var banners []models.Banner
	if err := query.Find(&banners).Error; err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	return banners, nil
}

func (r *bannerRepo) GetByID(ctx context.Context, id uint) (*models.Banner, error) {
	var banner models.Banner
	if err := r.db.WithContext(ctx).First(&banner, id).Error; err != nil {
		return nil, translate(err)
	}
	return &banner, nil
}

func (r *bannerRepo) Create(ctx context.Context, banner *models.Banner) error {
	if banner.Image == "" {
		return fmt.Errorf("%w: banner image required", ErrInvalidInput)
	}
	if err := r.db.WithContext(ctx).Create(banner).Error; err != nil {
		return fmt.Errorf("failed to create banner: %w", err)
	}
	return nil
}

func (r *bannerRepo) Update(ctx context.Context, banner *models.Banner) error {
	res := r.db.WithContext(ctx).Model(&models.Banner{ID: banner.ID}).
		Select("title", "image").
		Updates(banner)
	if res.Error != nil {
		return fmt.Errorf("failed to update banner %d: %w", banner.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActive touches only is_active.
func (r *bannerRepo) SetActive(ctx context.Context, id uint, active bool) error {
	res := r.db.WithContext(ctx).Model(&models.Banner{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return fmt.Errorf("failed to update banner %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *bannerRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Banner{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete banner %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
