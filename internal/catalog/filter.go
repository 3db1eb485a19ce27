package catalog

import (
	"sort"
	"strings"

	"github.com/angelmondragon/izishop-backend/pkg/types"
)

type SortMode string

const (
	SortFeatured  SortMode = "featured"
	SortName      SortMode = "name"
	SortPriceAsc  SortMode = "price-asc"
	SortPriceDesc SortMode = "price-desc"
	SortRating    SortMode = "rating"
	SortNewest    SortMode = "newest"
)

var sortModes = map[SortMode]struct{}{
	SortFeatured:  {},
	SortName:      {},
	SortPriceAsc:  {},
	SortPriceDesc: {},
	SortRating:    {},
	SortNewest:    {},
}

// ParseSortMode reports whether raw names a supported sort.
func ParseSortMode(raw string) (SortMode, bool) {
	mode := SortMode(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := sortModes[mode]
	return mode, ok
}

// Filter describes one pass of the listing pipeline. The zero value keeps every product in
// catalog order.
type Filter struct {
	Query       string
	SearchTags  bool
	Category    string
	MinPrice    *types.Cents
	MaxPrice    *types.Cents
	InStockOnly bool
	OnSaleOnly  bool
	Sort        SortMode
}

// ListingFilter is the preset used by the all-products page.
func ListingFilter() Filter {
	return Filter{SearchTags: true, Sort: SortFeatured}
}

// CategoryFilter is the preset used by a category page: name/description search, name order.
func CategoryFilter(categoryID string) Filter {
	return Filter{Category: categoryID, Sort: SortName}
}

// Apply filters and orders products without touching the input slice. Identical inputs
// always yield identical output.
func Apply(products []Product, f Filter) []Product {
	needle := fold(strings.TrimSpace(f.Query))
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.matches(p, needle) {
			out = append(out, p.Clone())
		}
	}
	sortProducts(out, f.Sort)
	return out
}

func (f Filter) matches(p Product, needle string) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.InStockOnly && !p.InStock() {
		return false
	}
	if f.OnSaleOnly && !p.OnSale() {
		return false
	}
	if needle == "" {
		return true
	}
	if containsFolded(p.Name, needle) || containsFolded(p.Description, needle) {
		return true
	}
	if f.SearchTags {
		for _, tag := range p.Tags {
			if containsFolded(tag, needle) {
				return true
			}
		}
	}
	return false
}

func sortProducts(products []Product, mode SortMode) {
	var less func(a, b Product) bool
	switch mode {
	case SortName:
		col := newCollator()
		less = func(a, b Product) bool { return col.CompareString(a.Name, b.Name) < 0 }
	case SortPriceAsc:
		less = func(a, b Product) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b Product) bool { return a.Price > b.Price }
	case SortRating:
		less = func(a, b Product) bool { return a.Rating > b.Rating }
	case SortNewest:
		less = func(a, b Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortFeatured:
		less = func(a, b Product) bool { return a.Featured && !b.Featured }
	default:
		return
	}
	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}
