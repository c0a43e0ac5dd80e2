package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativePrice = errors.New("price cannot be negative")
	ErrNegativeStock = errors.New("stock cannot be negative")
)

type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Description   string    `json:"description"`
	CategoryID    *uint     `gorm:"index" json:"category_id"`
	Category      *Category `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	IsFeatured    bool      `gorm:"default:false" json:"is_featured"`
	IsBestSelling bool      `gorm:"default:false" json:"is_best_selling"`
	IsOnSale      bool      `gorm:"default:false" json:"is_on_sale"`
	Variants      []Variant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Variant is one purchasable size or colour of a product.
type Variant struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint            `gorm:"index;not null" json:"product_id"`
	Size      string          `gorm:"size:32" json:"size"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	OldPrice  decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"old_price"`
	Stock     int             `gorm:"not null;default:0" json:"stock"`
	Images    []ProductImage  `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE" json:"images"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Variant) TableName() string { return "product_variants" }

// Available reports whether the variant can be put in a cart.
func (v Variant) Available() bool {
	return v.Stock > 0
}

func (v Variant) Validate() error {
	if v.Price.IsNegative() || v.OldPrice.IsNegative() {
		return ErrNegativePrice
	}
	if v.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	VariantID uint   `gorm:"index;not null" json:"variant_id"`
	URL       string `gorm:"not null" json:"image_url"`
	Position  int    `gorm:"default:0" json:"position"`
}

func (ProductImage) TableName() string { return "product_images" }
