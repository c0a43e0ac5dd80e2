package repository

import (
	"context"
	"fmt"

	"github.com/masum-diu/nishaan/models"
	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func preloadCatalog(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Variants", func(tx *gorm.DB) *gorm.DB { return tx.Order("product_variants.id ASC") }).
		Preload("Variants.Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("product_images.position ASC") })
}

func (r *productRepo) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := preloadCatalog(r.db.WithContext(ctx)).Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *productRepo) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := preloadCatalog(r.db.WithContext(ctx)).First(&product, id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return fmt.Errorf("%w: product name required", ErrInvalidInput)
	}
	for _, v := range product.Variants {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", translate(err))
	}
	return nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product, replaceVariants bool) error {
	if product.Name == "" {
		return fmt.Errorf("%w: product name required", ErrInvalidInput)
	}
	for _, v := range product.Variants {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{ID: product.ID}).
			Select("name", "description", "category_id", "is_featured", "is_best_selling", "is_on_sale").
			Updates(product)
		if res.Error != nil {
			return fmt.Errorf("failed to update product %d: %w", product.ID, translate(res.Error))
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if !replaceVariants {
			return nil
		}

		return syncVariants(tx, product)
	})
}

// syncVariants makes the stored variant set match product.Variants. Variants
// carrying an ID are edited in place so cart lines keyed by it stay valid;
// the rest are inserted, and stored variants not listed are deleted. Image
// lists are rewritten per variant.
func syncVariants(tx *gorm.DB, product *models.Product) error {
	var current []uint
	if err := tx.Model(&models.Variant{}).Where("product_id = ?", product.ID).Pluck("id", &current).Error; err != nil {
		return fmt.Errorf("failed to load variants of product %d: %w", product.ID, err)
	}
	owned := make(map[uint]bool, len(current))
	for _, id := range current {
		owned[id] = true
	}

	kept := map[uint]bool{}
	for i := range product.Variants {
		v := &product.Variants[i]
		v.ProductID = product.ID
		images := v.Images
		v.Images = nil

		if v.ID != 0 {
			if !owned[v.ID] {
				return fmt.Errorf("%w: variant %d does not belong to product %d", ErrInvalidInput, v.ID, product.ID)
			}
			kept[v.ID] = true
			if err := tx.Model(&models.Variant{ID: v.ID}).
				Select("size", "price", "old_price", "stock").
				Updates(v).Error; err != nil {
				return fmt.Errorf("failed to update variant %d: %w", v.ID, err)
			}
			if err := tx.Where("variant_id = ?", v.ID).Delete(&models.ProductImage{}).Error; err != nil {
				return fmt.Errorf("failed to clear images of variant %d: %w", v.ID, err)
			}
		} else if err := tx.Create(v).Error; err != nil {
			return fmt.Errorf("failed to create variant of product %d: %w", product.ID, err)
		}

		for j := range images {
			images[j].ID = 0
			images[j].VariantID = v.ID
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return fmt.Errorf("failed to store images of variant %d: %w", v.ID, err)
			}
		}
		v.Images = images
	}

	var gone []uint
	for _, id := range current {
		if !kept[id] {
			gone = append(gone, id)
		}
	}
	if len(gone) == 0 {
		return nil
	}
	if err := tx.Where("variant_id IN ?", gone).Delete(&models.ProductImage{}).Error; err != nil {
		return fmt.Errorf("failed to delete images of removed variants: %w", err)
	}
	if err := tx.Delete(&models.Variant{}, gone).Error; err != nil {
		return fmt.Errorf("failed to delete removed variants: %w", err)
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) VariantsByIDs(ctx context.Context, ids []uint) ([]models.Variant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var variants []models.Variant
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&variants).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch variants: %w", err)
	}
	return variants, nil
}
