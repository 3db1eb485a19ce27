package cart

import (
	"golang.org/x/text/language"

	cartdto "github.com/angelmondragon/izishop-backend/api/controllers/cart/dto"
	cartsvc "github.com/angelmondragon/izishop-backend/internal/cart"
)

var displayLocale = language.French

func newCart(state cartsvc.State, policy cartsvc.Policy) cartdto.Cart {
	items := make([]cartdto.LineItem, 0, len(state.Cart.Items))
	for _, item := range state.Cart.Items {
		var image string
		if len(item.Product.Images) > 0 {
			image = item.Product.Images[0]
		}
		items = append(items, cartdto.LineItem{
			ProductID:      item.ProductID,
			Name:           item.Product.Name,
			Image:          image,
			Category:       item.Product.Category,
			UnitPrice:      item.Product.Price,
			Quantity:       item.Quantity,
			Stock:          item.Product.Stock,
			LineTotal:      item.LineTotal(),
			FormattedPrice: item.Product.Price.Format(displayLocale),
			FormattedTotal: item.LineTotal().Format(displayLocale),
		})
	}

	totals := state.Cart.Totals
	return cartdto.Cart{
		Items:                 items,
		ItemCount:             state.Cart.ItemCount(),
		Subtotal:              totals.Subtotal,
		Shipping:              totals.Shipping,
		Tax:                   totals.Tax,
		Total:                 totals.Total,
		FreeShippingRemaining: policy.FreeShippingRemaining(totals.Subtotal),
		Formatted: cartdto.FormattedTotal{
			Subtotal: totals.Subtotal.Format(displayLocale),
			Shipping: totals.Shipping.Format(displayLocale),
			Tax:      totals.Tax.Format(displayLocale),
			Total:    totals.Total.Format(displayLocale),
		},
		IsOpen: state.Open,
	}
}
