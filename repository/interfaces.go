// Package repository is the data-access boundary. Records are parsed into the
// typed models here so callers never deal with loosely shaped rows.
package repository

import (
	"context"

	"github.com/masum-diu/nishaan/models"
)

type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	// Update writes the product's own fields and, when replaceVariants is
	// set, syncs the variant set with product.Variants: variants with an ID
	// are edited in place, new ones inserted and unlisted ones deleted.
	Update(ctx context.Context, product *models.Product, replaceVariants bool) error
	Delete(ctx context.Context, id uint) error
	VariantsByIDs(ctx context.Context, ids []uint) ([]models.Variant, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
}

type BannerRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.Banner, error)
	GetByID(ctx context.Context, id uint) (*models.Banner, error)
	Create(ctx context.Context, banner *models.Banner) error
	Update(ctx context.Context, banner *models.Banner) error
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	List(ctx context.Context) ([]models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	TransitionStatus(ctx context.Context, id uint, next models.OrderStatus) (*models.Order, error)
	Delete(ctx context.Context, id uint) error
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.Profile, error)
	// UpdateFullName returns ErrNotFound when no profile has id.
	UpdateFullName(ctx context.Context, id, fullName string) error
}
