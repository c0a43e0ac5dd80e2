package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/masum-diu/nishaan/models"
	"gorm.io/gorm"
)

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return fmt.Errorf("%w: category name required", ErrInvalidInput)
	}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", translate(err))
	}
	return nil
}

func (r *categoryRepo) Update(ctx context.Context, category *models.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return fmt.Errorf("%w: category name required", ErrInvalidInput)
	}
	res := r.db.WithContext(ctx).Model(&models.Category{ID: category.ID}).
		Select("name", "image").
		Updates(category)
	if res.Error != nil {
		return fmt.Errorf("failed to update category %d: %w", category.ID, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the category; its products keep existing uncategorised via
// ON DELETE SET NULL.
func (r *categoryRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
