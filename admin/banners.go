package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/masum-diu/nishaan/models"
	"github.com/masum-diu/nishaan/repository"
	"github.com/masum-diu/nishaan/storage"
	"go.uber.org/zap"
)

type Banners struct {
	repo   repository.BannerRepository
	images imageStore
	logger *zap.Logger
}

func NewBanners(repo repository.BannerRepository, bucket storage.Bucket, logger *zap.Logger) *Banners {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Banners{
		repo:   repo,
		images: imageStore{bucket: bucket, prefix: "banner", logger: logger, now: time.Now},
		logger: logger,
	}
}

// List returns every banner, active or not, newest first.
func (b *Banners) List(ctx context.Context) ([]models.Banner, error) {
	return b.repo.List(ctx, false)
}

// Create requires an image. New banners start active.
func (b *Banners) Create(ctx context.Context, title string, image *Upload) (*models.Banner, error) {
	if image == nil {
		return nil, fmt.Errorf("%w: banner image required", repository.ErrInvalidInput)
	}
	url, err := b.images.upload(ctx, *image)
	if err != nil {
		return nil, err
	}
	banner := &models.Banner{Title: strings.TrimSpace(title), Image: url, IsActive: true}
	if err := b.repo.Create(ctx, banner); err != nil {
		b.images.remove(ctx, url)
		return nil, err
	}
	b.logger.Info("banner created", zap.Uint("banner_id", banner.ID))
	return banner, nil
}

func (b *Banners) Update(ctx context.Context, id uint, title string, image *Upload) (*models.Banner, error) {
	existing, err := b.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := *existing
	updated.Title = strings.TrimSpace(title)
	if image != nil {
		url, err := b.images.upload(ctx, *image)
		if err != nil {
			return nil, err
		}
		updated.Image = url
	}
	if err := b.repo.Update(ctx, &updated); err != nil {
		if image != nil {
			b.images.remove(ctx, updated.Image)
		}
		return nil, err
	}
	if image != nil {
		b.images.remove(ctx, existing.Image)
	}
	return &updated, nil
}

// SetActive writes only is_active.
func (b *Banners) SetActive(ctx context.Context, id uint, active bool) error {
	if err := b.repo.SetActive(ctx, id, active); err != nil {
		return err
	}
	b.logger.Info("banner visibility changed", zap.Uint("banner_id", id), zap.Bool("active", active))
	return nil
}

func (b *Banners) Delete(ctx context.Context, id uint) error {
	existing, err := b.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := b.repo.Delete(ctx, id); err != nil {
		return err
	}
	b.images.remove(ctx, existing.Image)
	b.logger.Info("banner deleted", zap.Uint("banner_id", id))
	return nil
}
