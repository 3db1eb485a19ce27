package catalog

import (
	"github.com/angelmondragon/izishop-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// DiscountPercent returns round((original-price)/original*100), or 0 when original does not
// exceed price.
func DiscountPercent(price, original types.Cents) int {
	if original <= 0 || original <= price {
		return 0
	}
	diff := decimal.NewFromInt(int64(original - price))
	pct := diff.Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(original)))
	return int(pct.Round(0).IntPart())
}

// PriceBounds returns the cheapest and most expensive prices in products.
func PriceBounds(products []Product) (types.Cents, types.Cents) {
	if len(products) == 0 {
		return 0, 0
	}
	lo, hi := products[0].Price, products[0].Price
	for _, p := range products[1:] {
		lo = min(lo, p.Price)
		hi = max(hi, p.Price)
	}
	return lo, hi
}
