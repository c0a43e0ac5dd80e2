package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/masum-diu/nishaan/models"
	"github.com/masum-diu/nishaan/repository"
	"github.com/redis/go-redis/v9"
)

type countingProducts struct {
	products []models.Product
	lists    int
	creates  int
}

func (f *countingProducts) List(context.Context) ([]models.Product, error) {
	f.lists++
	return f.products, nil
}

func (f *countingProducts) GetByID(_ context.Context, id uint) (*models.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *countingProducts) Create(_ context.Context, p *models.Product) error {
	f.creates++
	f.products = append(f.products, *p)
	return nil
}

func (f *countingProducts) Update(context.Context, *models.Product, bool) error { return nil }
func (f *countingProducts) Delete(context.Context, uint) error                  { return nil }

func (f *countingProducts) VariantsByIDs(context.Context, []uint) ([]models.Variant, error) {
	return nil, nil
}

// unreachable returns a client whose every command fails fast.
func unreachable() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestCachedProductRepository_FallsBackWhenRedisDown(t *testing.T) {
	rdb := unreachable()
	defer rdb.Close()

	real := &countingProducts{products: []models.Product{{ID: 1, Name: "Shirt"}}}
	repo := NewCachedProductRepository(real, NewCatalog(rdb, time.Minute, nil))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		got, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Name != "Shirt" {
			t.Fatalf("unexpected products %+v", got)
		}
	}
	if real.lists != 2 {
		t.Errorf("expected every read to reach the database, got %d", real.lists)
	}

	if _, err := repo.GetByID(ctx, 99); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := repo.Create(ctx, &models.Product{Name: "Pant"}); err != nil {
		t.Fatalf("create should not depend on redis: %v", err)
	}
	if real.creates != 1 {
		t.Errorf("expected create to reach the database")
	}
}
