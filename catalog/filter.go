package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/masum-diu/nishaan/models"
)

// AllCategories disables the category predicate.
const AllCategories = "all"

// Filter holds the three independent storefront predicates. The zero value
// matches every product.
type Filter struct {
	Category    string
	InStockOnly bool
	Sizes       []string
}

// ParseFilter reads category, in_stock and sizes from a query string. Sizes
// may be comma separated, repeated, or both.
func ParseFilter(q url.Values) Filter {
	f := Filter{Category: strings.TrimSpace(q.Get("category"))}
	if v, err := strconv.ParseBool(q.Get("in_stock")); err == nil {
		f.InStockOnly = v
	}
	for _, raw := range q["sizes"] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				f.Sizes = append(f.Sizes, s)
			}
		}
	}
	return f
}

// Apply returns the products matching every active predicate, in input order.
// The input slice is never modified.
func Apply(products []models.Product, f Filter) []models.Product {
	sizes := make(map[string]struct{}, len(f.Sizes))
	for _, s := range f.Sizes {
		sizes[s] = struct{}{}
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !f.matchCategory(p) {
			continue
		}
		if f.InStockOnly && !anyInStock(p.Variants) {
			continue
		}
		if len(sizes) > 0 && !anySize(p.Variants, sizes) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (f Filter) matchCategory(p models.Product) bool {
	if f.Category == "" || strings.EqualFold(f.Category, AllCategories) {
		return true
	}
	if p.CategoryID != nil && strconv.FormatUint(uint64(*p.CategoryID), 10) == f.Category {
		return true
	}
	return p.Category != nil && strings.EqualFold(p.Category.Name, f.Category)
}

func anyInStock(variants []models.Variant) bool {
	for _, v := range variants {
		if v.Stock > 0 {
			return true
		}
	}
	return false
}

func anySize(variants []models.Variant, sizes map[string]struct{}) bool {
	for _, v := range variants {
		if _, ok := sizes[v.Size]; ok {
			return true
		}
	}
	return false
}
