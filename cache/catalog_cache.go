// Package cache puts a Redis read-through layer in front of the catalog
// repositories. Reads fall back to the database on any Redis problem and
// writes drop every cached catalog key.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/masum-diu/nishaan/models"
	"github.com/masum-diu/nishaan/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyProducts      = "catalog:products"
	keyCategories    = "catalog:categories"
	keyBannersAll    = "catalog:banners:all"
	keyBannersActive = "catalog:banners:active"
	notFoundMarker   = "notfound"
	notFoundTTL      = time.Minute
)

func productKey(id uint) string { return fmt.Sprintf("catalog:product:%d", id) }

// Catalog holds the Redis client shared by the cached repositories.
type Catalog struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCatalog(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Catalog{redis: rdb, ttl: ttl, logger: logger}
}

// get returns (true, nil) on a hit, (false, nil) on a miss or any cache
// problem, and (true, ErrNotFound) for a cached negative lookup.
func (c *Catalog) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			return true, repository.ErrNotFound
		}
		if err := json.Unmarshal(data, dst); err != nil {
			c.logger.Warn("failed to unmarshal cached value, continuing with DB", zap.String("key", key), zap.Error(err))
			return false, nil
		}
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		c.logger.Warn("redis error, continuing with DB", zap.String("key", key), zap.Error(err))
		return false, nil
	}
}

func (c *Catalog) set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("failed to marshal cache value", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to cache value", zap.String("key", key), zap.Error(err))
	}
}

func (c *Catalog) setNotFound(ctx context.Context, key string) {
	if err := c.redis.Set(ctx, key, notFoundMarker, notFoundTTL).Err(); err != nil {
		c.logger.Warn("failed to cache notfound", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops every catalog key. Product detail keys are found by scan.
func (c *Catalog) Invalidate(ctx context.Context) {
	keys := []string{keyProducts, keyCategories, keyBannersAll, keyBannersActive}
	iter := c.redis.Scan(ctx, 0, "catalog:product:*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("failed to scan product cache keys", zap.Error(err))
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("failed to invalidate catalog cache", zap.Error(err))
	}
}

// CachedProductRepository caches the list and detail reads. VariantsByIDs is
// always served live since checkout depends on current stock.
type CachedProductRepository struct {
	realRepo repository.ProductRepository
	cache    *Catalog
}

func NewCachedProductRepository(realRepo repository.ProductRepository, cache *Catalog) *CachedProductRepository {
	return &CachedProductRepository{realRepo: realRepo, cache: cache}
}

func (r *CachedProductRepository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if hit, _ := r.cache.get(ctx, keyProducts, &products); hit {
		return products, nil
	}
	products, err := r.realRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.set(ctx, keyProducts, products)
	return products, nil
}

func (r *CachedProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	key := productKey(id)
	var product models.Product
	if hit, err := r.cache.get(ctx, key, &product); hit {
		if err != nil {
			return nil, err
		}
		return &product, nil
	}

	p, err := r.realRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			r.cache.setNotFound(ctx, key)
		}
		return nil, err
	}
	r.cache.set(ctx, key, p)
	return p, nil
}

func (r *CachedProductRepository) Create(ctx context.Context, product *models.Product) error {
	defer r.cache.Invalidate(ctx)
	return r.realRepo.Create(ctx, product)
}

func (r *CachedProductRepository) Update(ctx context.Context, product *models.Product, replaceVariants bool) error {
	defer r.cache.Invalidate(ctx)
	return r.realRepo.Update(ctx, product, replaceVariants)
}

func (r *CachedProductRepository) Delete(ctx context.Context, id uint) error {
	defer r.cache.Invalidate(ctx)
	return r.realRepo.Delete(ctx, id)
}

func (r *CachedProductRepository) VariantsByIDs(ctx context.Context, ids []uint) ([]models.Variant, error) {
	return r.realRepo.VariantsByIDs(ctx, ids)
}

type CachedCategoryRepository struct {
	realRepo repository.CategoryRepository
	cache    *Catalog
}

func NewCachedCategoryRepository(realRepo repository.CategoryRepository, cache *Catalog) *CachedCategoryRepository {
	return &CachedCategoryRepository{realRepo: realRepo, cache: cache}
}

func (r *CachedCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if hit, _ := r.cache.get(ctx, keyCategories, &categories); hit {
		return categories, nil
	}
	categories, err := r.realRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.set(ctx, keyCategories, categories)
	return categories, nil
}

func (r *CachedCategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return r.realRepo.GetByID(ctx, id)
}

// Category writes also drop product keys since products embed their category.
func (r *CachedCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	defer r.cache.Invalidate(ctx)
	return r.realRepo.Create(ctx, category)
}

func (r *CachedCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	defer r.cache.Invalidate(ctx)
	return r.realRepo.Update(ctx, category)
}

func (r *CachedCategoryRepository) Delete(ctx context.Context, id uint) error {
	defer r.cache.Invalidate(ctx)
	return r.realRepo.Delete(ctx, id)
}

type CachedBannerRepository struct {
	realRepo repository.BannerRepository
	cache    *Catalog
}

func NewCachedBannerRepository(realRepo repository.BannerRepository, cache *Catalog) *CachedBannerRepository {
	return &CachedBannerRepository{realRepo: realRepo, cache: cache}
}

func (r *CachedBannerRepository) List(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	key := keyBannersAll
	if activeOnly {
		key = keyBannersActive
	}
	var banners []models.Banner
	if hit, _ := r.cache.get(ctx, key, &banners); hit {
		return banners, nil
	}
	banners, err := r.realRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	r.cache.set(ctx, key, banners)
	return banners, nil
}

func (r *CachedBannerRepository) GetByID(ctx context.Context, id uint) (*models.Banner, error) {
	return r.realRepo.GetByID(ctx, id)
}

func (r *CachedBannerRepository) Create(ctx context.Context, banner *models.Banner) error {
	defer r.cache.Invalidate(ctx)
	return r.realRepo.Create(ctx, banner)
}

func (r *CachedBannerRepository) Update(ctx context.Context, banner *models.Banner) error {
	defer r.cache.Invalidate(ctx)
	return r.realRepo.Update(ctx, banner)
}

func (r *CachedBannerRepository) SetActive(ctx context.Context, id uint, active bool) error {
	defer r.cache.Invalidate(ctx)
	return r.realRepo.SetActive(ctx, id, active)
}

func (r *CachedBannerRepository) Delete(ctx context.Context, id uint) error {
	defer r.cache.Invalidate(ctx)
	return r.realRepo.Delete(ctx, id)
}

var (
	_ repository.ProductRepository  = (*CachedProductRepository)(nil)
	_ repository.CategoryRepository = (*CachedCategoryRepository)(nil)
	_ repository.BannerRepository   = (*CachedBannerRepository)(nil)
)
