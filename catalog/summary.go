// Package catalog derives storefront views from fetched product data.
package catalog

import (
	"github.com/masum-diu/nishaan/models"
	"github.com/shopspring/decimal"
)

// PlaceholderImage is shown when no variant carries an image.
const PlaceholderImage = "/no-image.png"

type Summary struct {
	LowestPrice     decimal.Decimal `json:"lowest_price"`
	HighestOldPrice decimal.Decimal `json:"highest_old_price"`
	MainImage       string          `json:"main_image"`
	InStock         bool            `json:"in_stock"`
	IsOnSale        bool            `json:"is_on_sale"`
}

// Summarize computes display price, discount price, main image and stock
// availability from a product's variants. An empty or nil slice yields the
// zero summary with the placeholder image.
func Summarize(variants []models.Variant) Summary {
	s := Summary{
		LowestPrice:     decimal.Zero,
		HighestOldPrice: decimal.Zero,
		MainImage:       PlaceholderImage,
	}

	imageSet := false
	for i, v := range variants {
		if i == 0 || v.Price.LessThan(s.LowestPrice) {
			s.LowestPrice = v.Price
		}
		if v.OldPrice.GreaterThan(s.HighestOldPrice) {
			s.HighestOldPrice = v.OldPrice
		}
		if v.Stock > 0 {
			s.InStock = true
		}
		if !imageSet && len(v.Images) > 0 {
			s.MainImage = v.Images[0].URL
			imageSet = true
		}
	}

	s.IsOnSale = s.HighestOldPrice.GreaterThan(s.LowestPrice)
	return s
}

// Listing is a product together with its derived summary, as served to the
// storefront.
type Listing struct {
	models.Product
	Summary Summary `json:"summary"`
}

func NewListings(products []models.Product) []Listing {
	out := make([]Listing, 0, len(products))
	for _, p := range products {
		out = append(out, Listing{Product: p, Summary: Summarize(p.Variants)})
	}
	return out
}
