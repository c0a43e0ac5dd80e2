package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/masum-diu/nishaan/catalog"
	"github.com/masum-diu/nishaan/models"
	"github.com/masum-diu/nishaan/repository"
	"github.com/masum-diu/nishaan/storage"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
)

var validate = validator.New()

type ProductInput struct {
	Name          string `validate:"required,max=200"`
	Description   string `validate:"max=5000"`
	CategoryID    *uint
	IsFeatured    bool
	IsBestSelling bool
	IsOnSale      bool
	// Variants nil on update leaves the stored variants alone.
	Variants []VariantInput `validate:"omitempty,dive"`
}

type VariantInput struct {
	// ID names a stored variant to edit in place. Zero adds a new variant.
	ID       uint
	Size     string `validate:"max=32"`
	Price    decimal.Decimal
	OldPrice decimal.Decimal
	Stock    int `validate:"gte=0"`
	// ImageURLs are images the product already has, to keep in this order.
	// Uploads are appended after them.
	ImageURLs []string
	Uploads   []Upload
}

type Products struct {
	repo   repository.ProductRepository
	images imageStore
	logger *zap.Logger
}

func NewProducts(repo repository.ProductRepository, bucket storage.Bucket, logger *zap.Logger) *Products {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Products{
		repo:   repo,
		images: imageStore{bucket: bucket, prefix: "product", logger: logger, now: time.Now},
		logger: logger,
	}
}

// checkInput reports the first failing field as ErrInvalidInput.
func checkInput(in ProductInput) error {
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			switch f := verrs[0]; f.Field() {
			case "Name":
				return fmt.Errorf("%w: name is required and must be at most 200 characters", repository.ErrInvalidInput)
			case "Stock":
				return fmt.Errorf("%w: %s", repository.ErrInvalidInput, models.ErrNegativeStock)
			default:
				return fmt.Errorf("%w: %s failed %s", repository.ErrInvalidInput, f.Namespace(), f.Tag())
			}
		}
		return fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
	}
	return nil
}

func (p *Products) List(ctx context.Context) ([]models.Product, error) {
	return p.repo.List(ctx)
}

func (p *Products) Get(ctx context.Context, id uint) (*models.Product, error) {
	return p.repo.GetByID(ctx, id)
}

// buildVariants validates inputs, then uploads every new image. Variant ids
// and kept image URLs must belong to existing, which is nil on create. On
// any failure the images uploaded so far are removed and nothing is returned.
func (p *Products) buildVariants(ctx context.Context, inputs []VariantInput, existing *models.Product) ([]models.Variant, []string, error) {
	ownVariants := map[uint]bool{}
	ownImages := map[string]bool{}
	if existing != nil {
		for _, v := range existing.Variants {
			ownVariants[v.ID] = true
		}
		for _, url := range imageURLs(existing) {
			ownImages[url] = true
		}
	}

	seen := map[uint]bool{}
	variants := make([]models.Variant, 0, len(inputs))
	for i, in := range inputs {
		if in.ID != 0 {
			if !ownVariants[in.ID] || seen[in.ID] {
				return nil, nil, fmt.Errorf("%w: variant %d: unknown variant id %d", repository.ErrInvalidInput, i+1, in.ID)
			}
			seen[in.ID] = true
		}
		for _, url := range in.ImageURLs {
			if !ownImages[url] {
				return nil, nil, fmt.Errorf("%w: variant %d: image %q is not part of this product", repository.ErrInvalidInput, i+1, url)
			}
		}
		v := models.Variant{ID: in.ID, Size: in.Size, Price: in.Price, OldPrice: in.OldPrice, Stock: in.Stock}
		if err := v.Validate(); err != nil {
			return nil, nil, fmt.Errorf("%w: variant %d: %v", repository.ErrInvalidInput, i+1, err)
		}
		variants = append(variants, v)
	}

	var uploaded []string
	for i, in := range inputs {
		pos := 0
		for _, url := range in.ImageURLs {
			variants[i].Images = append(variants[i].Images, models.ProductImage{URL: url, Position: pos})
			pos++
		}
		for _, u := range in.Uploads {
			url, err := p.images.upload(ctx, u)
			if err != nil {
				p.images.remove(ctx, uploaded...)
				return nil, nil, err
			}
			uploaded = append(uploaded, url)
			variants[i].Images = append(variants[i].Images, models.ProductImage{URL: url, Position: pos})
			pos++
		}
	}
	return variants, uploaded, nil
}

func (p *Products) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	variants, uploaded, err := p.buildVariants(ctx, in.Variants, nil)
	if err != nil {
		return nil, err
	}
	product := &models.Product{
		Name:          in.Name,
		Description:   in.Description,
		CategoryID:    in.CategoryID,
		IsFeatured:    in.IsFeatured,
		IsBestSelling: in.IsBestSelling,
		IsOnSale:      in.IsOnSale,
		Variants:      variants,
	}
	if err := p.repo.Create(ctx, product); err != nil {
		p.images.remove(ctx, uploaded...)
		return nil, err
	}
	p.logger.Info("product created", zap.Uint("product_id", product.ID), zap.Int("variants", len(variants)))
	return product, nil
}

func (p *Products) Update(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	existing, err := p.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	replace := in.Variants != nil
	var uploaded []string
	product := &models.Product{
		ID:            id,
		Name:          in.Name,
		Description:   in.Description,
		CategoryID:    in.CategoryID,
		IsFeatured:    in.IsFeatured,
		IsBestSelling: in.IsBestSelling,
		IsOnSale:      in.IsOnSale,
	}
	if replace {
		product.Variants, uploaded, err = p.buildVariants(ctx, in.Variants, existing)
		if err != nil {
			return nil, err
		}
	}

	if err := p.repo.Update(ctx, product, replace); err != nil {
		p.images.remove(ctx, uploaded...)
		return nil, err
	}

	if replace {
		kept := map[string]bool{}
		for _, v := range product.Variants {
			for _, img := range v.Images {
				kept[img.URL] = true
			}
		}
		var dropped []string
		for _, url := range imageURLs(existing) {
			if !kept[url] {
				dropped = append(dropped, url)
			}
		}
		p.images.remove(ctx, dropped...)
	}
	return p.repo.GetByID(ctx, id)
}

// Delete removes the product then, best effort, its images.
func (p *Products) Delete(ctx context.Context, id uint) error {
	existing, err := p.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := p.repo.Delete(ctx, id); err != nil {
		return err
	}
	p.images.remove(ctx, imageURLs(existing)...)
	p.logger.Info("product deleted", zap.Uint("product_id", id))
	return nil
}

func imageURLs(p *models.Product) []string {
	var urls []string
	for _, v := range p.Variants {
		for _, img := range v.Images {
			urls = append(urls, img.URL)
		}
	}
	return urls
}

var exportHeaders = []string{
	"ProductID", "Name", "Category", "VariantID", "Size",
	"Price", "OldPrice", "Stock", "Image", "Featured", "BestSelling", "OnSale", "CreatedAt",
}

// ExportXLSX writes one row per variant. Products without variants still get
// a row with the variant columns blank.
func (p *Products) ExportXLSX(ctx context.Context, w io.Writer) error {
	products, err := p.repo.List(ctx)
	if err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetValue(h)
	}

	for _, prod := range products {
		category := ""
		if prod.Category != nil {
			category = prod.Category.Name
		}
		if len(prod.Variants) == 0 {
			row := sheet.AddRow()
			row.AddCell().SetValue(prod.ID)
			row.AddCell().SetValue(prod.Name)
			row.AddCell().SetValue(category)
			for i := 0; i < 6; i++ {
				row.AddCell()
			}
			addFlags(row, prod)
			continue
		}
		for _, v := range prod.Variants {
			image := catalog.PlaceholderImage
			if len(v.Images) > 0 {
				image = v.Images[0].URL
			}
			row := sheet.AddRow()
			row.AddCell().SetValue(prod.ID)
			row.AddCell().SetValue(prod.Name)
			row.AddCell().SetValue(category)
			row.AddCell().SetValue(v.ID)
			row.AddCell().SetValue(v.Size)
			row.AddCell().SetValue(v.Price.StringFixed(2))
			row.AddCell().SetValue(v.OldPrice.StringFixed(2))
			row.AddCell().SetValue(v.Stock)
			row.AddCell().SetValue(image)
			addFlags(row, prod)
		}
	}
	return file.Write(w)
}

func addFlags(row *xlsx.Row, p models.Product) {
	row.AddCell().SetValue(strconv.FormatBool(p.IsFeatured))
	row.AddCell().SetValue(strconv.FormatBool(p.IsBestSelling))
	row.AddCell().SetValue(strconv.FormatBool(p.IsOnSale))
	row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
}
