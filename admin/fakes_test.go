package admin

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/masum-diu/nishaan/models"
	"github.com/masum-diu/nishaan/repository"
)

// memoryBucket mirrors LocalBucket's URL scheme without touching disk.
type memoryBucket struct {
	mu        sync.Mutex
	objects   map[string]string
	uploadErr error
	removeErr error
	removed   []string
}

func newMemoryBucket() *memoryBucket {
	return &memoryBucket{objects: map[string]string{}}
}

func (b *memoryBucket) Upload(_ context.Context, name string, r io.Reader) (string, error) {
	if b.uploadErr != nil {
		return "", b.uploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[name] = string(data)
	return b.PublicURL(name), nil
}

func (b *memoryBucket) Remove(_ context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removed = append(b.removed, name)
	if b.removeErr != nil {
		return b.removeErr
	}
	delete(b.objects, name)
	return nil
}

func (b *memoryBucket) PublicURL(name string) string { return "http://cdn.test/" + name }

func (b *memoryBucket) ObjectName(url string) (string, bool) {
	if !strings.HasPrefix(url, "http://cdn.test/") {
		return "", false
	}
	return strings.TrimPrefix(url, "http://cdn.test/"), true
}

func (b *memoryBucket) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}

type memoryBanners struct {
	rows      map[uint]models.Banner
	next      uint
	createErr error
	writes    int
}

func newMemoryBanners() *memoryBanners { return &memoryBanners{rows: map[uint]models.Banner{}} }

func (m *memoryBanners) List(_ context.Context, activeOnly bool) ([]models.Banner, error) {
	var out []models.Banner
	for _, b := range m.rows {
		if activeOnly && !b.IsActive {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryBanners) GetByID(_ context.Context, id uint) (*models.Banner, error) {
	b, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (m *memoryBanners) Create(_ context.Context, b *models.Banner) error {
	m.writes++
	if m.createErr != nil {
		return m.createErr
	}
	m.next++
	b.ID = m.next
	b.CreatedAt = time.Unix(int64(m.next), 0)
	m.rows[b.ID] = *b
	return nil
}

func (m *memoryBanners) Update(_ context.Context, b *models.Banner) error {
	m.writes++
	cur, ok := m.rows[b.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Title, cur.Image = b.Title, b.Image
	m.rows[b.ID] = cur
	return nil
}

func (m *memoryBanners) SetActive(_ context.Context, id uint, active bool) error {
	m.writes++
	cur, ok := m.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	cur.IsActive = active
	m.rows[id] = cur
	return nil
}

func (m *memoryBanners) Delete(_ context.Context, id uint) error {
	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type memoryProducts struct {
	rows        map[uint]models.Product
	next        uint
	nextVariant uint
	createErr   error
}

func newMemoryProducts() *memoryProducts { return &memoryProducts{rows: map[uint]models.Product{}} }

func (m *memoryProducts) List(context.Context) ([]models.Product, error) {
	var out []models.Product
	for _, p := range m.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memoryProducts) GetByID(_ context.Context, id uint) (*models.Product, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (m *memoryProducts) Create(_ context.Context, p *models.Product) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.next++
	p.ID = m.next
	for i := range p.Variants {
		m.nextVariant++
		p.Variants[i].ID = m.nextVariant
		p.Variants[i].ProductID = p.ID
	}
	m.rows[p.ID] = *p
	return nil
}

// Update mirrors the gorm repository: listed ids are kept, zero ids get a
// fresh one and unknown ids are rejected.
func (m *memoryProducts) Update(_ context.Context, p *models.Product, replaceVariants bool) error {
	cur, ok := m.rows[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	variants := cur.Variants
	if replaceVariants {
		owned := map[uint]bool{}
		for _, v := range cur.Variants {
			owned[v.ID] = true
		}
		variants = make([]models.Variant, len(p.Variants))
		for i, v := range p.Variants {
			switch {
			case v.ID == 0:
				m.nextVariant++
				v.ID = m.nextVariant
			case !owned[v.ID]:
				return repository.ErrInvalidInput
			}
			v.ProductID = p.ID
			variants[i] = v
		}
	}
	updated := *p
	updated.Variants = variants
	m.rows[p.ID] = updated
	return nil
}

func (m *memoryProducts) Delete(_ context.Context, id uint) error {
	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryProducts) VariantsByIDs(context.Context, []uint) ([]models.Variant, error) {
	return nil, nil
}

var errUpload = errors.New("bucket unavailable")
