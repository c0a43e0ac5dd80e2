// Package cart holds the shopper's line items and derives checkout totals
// from them.
package cart

import (
	"github.com/masum-diu/nishaan/models"
	"github.com/shopspring/decimal"
)

// Key identifies a line. No two lines in a Store share a Key.
type Key struct {
	ProductID uint `json:"product_id"`
	VariantID uint `json:"variant_id"`
}

// LineItem is a cart row. Name, size, price and image are snapshotted when the
// item is first added and are not refreshed from the catalog.
type LineItem struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"name"`
	VariantID   uint            `json:"variant_id"`
	Size        string          `json:"size"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Quantity    int             `json:"quantity"`
}

func (l LineItem) Key() Key {
	return Key{ProductID: l.ProductID, VariantID: l.VariantID}
}

// LineTotal is price times quantity.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Snapshot builds the line for one variant of a product, quantity unset.
func Snapshot(p models.Product, v models.Variant, image string) LineItem {
	return LineItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		VariantID:   v.ID,
		Size:        v.Size,
		Price:       v.Price,
		Image:       image,
	}
}

// ToOrderItem freezes the line into an order snapshot.
func (l LineItem) ToOrderItem() models.OrderItem {
	return models.OrderItem{
		ProductID:   l.ProductID,
		ProductName: l.ProductName,
		VariantID:   l.VariantID,
		Size:        l.Size,
		Price:       l.Price,
		Image:       l.Image,
		Quantity:    l.Quantity,
	}
}
