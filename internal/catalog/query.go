package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/angelmondragon/izishop-backend/pkg/types"
)

// URL query parameters mirrored by the listing page.
const (
	ParamCategory = "category"
	ParamQuery    = "q"
	ParamSort     = "sort"
	ParamInStock  = "stock"
	ParamOnSale   = "sale"
	ParamMinPrice = "min_price"
	ParamMaxPrice = "max_price"
)

// FilterError reports a query parameter that could not be turned into a filter.
type FilterError struct {
	Param  string
	Reason string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// ParseListingValues builds a listing filter from URL query values. Unknown sort modes fall
// back to featured.
func ParseListingValues(values url.Values) (Filter, error) {
	f := ListingFilter()
	f.Category = strings.TrimSpace(values.Get(ParamCategory))
	f.Query = strings.TrimSpace(values.Get(ParamQuery))
	if mode, ok := ParseSortMode(values.Get(ParamSort)); ok {
		f.Sort = mode
	}
	f.InStockOnly = values.Get(ParamInStock) == "true"
	f.OnSaleOnly = values.Get(ParamOnSale) == "true"

	var err error
	if f.MinPrice, err = parseCents(values, ParamMinPrice); err != nil {
		return Filter{}, err
	}
	if f.MaxPrice, err = parseCents(values, ParamMaxPrice); err != nil {
		return Filter{}, err
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return Filter{}, &FilterError{Param: ParamMinPrice, Reason: "greater than max_price"}
	}
	return f, nil
}

// ParseCategoryValues builds a category-page filter; only q and sort are honoured.
func ParseCategoryValues(categoryID string, values url.Values) Filter {
	f := CategoryFilter(categoryID)
	f.Query = strings.TrimSpace(values.Get(ParamQuery))
	if mode, ok := ParseSortMode(values.Get(ParamSort)); ok {
		f.Sort = mode
	}
	return f
}

// ListingValues mirrors the active listing filters back into query values, omitting defaults,
// so the resulting URL can be bookmarked.
func (f Filter) ListingValues() url.Values {
	params := url.Values{}
	if f.Category != "" {
		params.Set(ParamCategory, f.Category)
	}
	if f.Query != "" {
		params.Set(ParamQuery, f.Query)
	}
	if f.Sort != "" && f.Sort != SortFeatured {
		params.Set(ParamSort, string(f.Sort))
	}
	if f.InStockOnly {
		params.Set(ParamInStock, "true")
	}
	if f.OnSaleOnly {
		params.Set(ParamOnSale, "true")
	}
	if f.MinPrice != nil {
		params.Set(ParamMinPrice, strconv.FormatInt(int64(*f.MinPrice), 10))
	}
	if f.MaxPrice != nil {
		params.Set(ParamMaxPrice, strconv.FormatInt(int64(*f.MaxPrice), 10))
	}
	return params
}

func parseCents(values url.Values, key string) (*types.Cents, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &FilterError{Param: key, Reason: "must be an integer amount in cents"}
	}
	if n < 0 {
		return nil, &FilterError{Param: key, Reason: "must not be negative"}
	}
	c := types.Cents(n)
	return &c, nil
}
