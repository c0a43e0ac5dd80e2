package admin

import (
	"context"
	"strings"
	"time"

	"github.com/masum-diu/nishaan/models"
	"github.com/masum-diu/nishaan/repository"
	"github.com/masum-diu/nishaan/storage"
	"go.uber.org/zap"
)

type Categories struct {
	repo   repository.CategoryRepository
	images imageStore
	logger *zap.Logger
}

func NewCategories(repo repository.CategoryRepository, bucket storage.Bucket, logger *zap.Logger) *Categories {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Categories{
		repo:   repo,
		images: imageStore{bucket: bucket, prefix: "category", logger: logger, now: time.Now},
		logger: logger,
	}
}

func (c *Categories) List(ctx context.Context) ([]models.Category, error) {
	return c.repo.List(ctx)
}

// Create uploads the optional image first and writes the row only after the
// upload succeeded.
func (c *Categories) Create(ctx context.Context, name string, image *Upload) (*models.Category, error) {
	category := &models.Category{Name: strings.TrimSpace(name)}
	if image != nil {
		url, err := c.images.upload(ctx, *image)
		if err != nil {
			return nil, err
		}
		category.Image = url
	}
	if err := c.repo.Create(ctx, category); err != nil {
		c.images.remove(ctx, category.Image)
		return nil, err
	}
	c.logger.Info("category created", zap.Uint("category_id", category.ID))
	return category, nil
}

// Update renames the category and optionally swaps its image. The previous
// image is removed only once the row points at the new one.
func (c *Categories) Update(ctx context.Context, id uint, name string, image *Upload) (*models.Category, error) {
	existing, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := &models.Category{ID: id, Name: strings.TrimSpace(name), Image: existing.Image, CreatedAt: existing.CreatedAt}
	if image != nil {
		url, err := c.images.upload(ctx, *image)
		if err != nil {
			return nil, err
		}
		updated.Image = url
	}
	if err := c.repo.Update(ctx, updated); err != nil {
		if image != nil {
			c.images.remove(ctx, updated.Image)
		}
		return nil, err
	}
	if image != nil {
		c.images.remove(ctx, existing.Image)
	}
	return updated, nil
}

func (c *Categories) Delete(ctx context.Context, id uint) error {
	existing, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := c.repo.Delete(ctx, id); err != nil {
		return err
	}
	c.images.remove(ctx, existing.Image)
	c.logger.Info("category deleted", zap.Uint("category_id", id))
	return nil
}
