package cartdto

import "github.com/angelmondragon/izishop-backend/pkg/types"

// Cart is the cart snapshot exposed through the API. Amounts are minor units; the
// formatted block carries the display strings used by the drawer.
type Cart struct {
	Items                 []LineItem     `json:"items"`
	ItemCount             int            `json:"item_count"`
	Subtotal              types.Cents    `json:"subtotal"`
	Shipping              types.Cents    `json:"shipping"`
	Tax                   types.Cents    `json:"tax"`
	Total                 types.Cents    `json:"total"`
	FreeShippingRemaining types.Cents    `json:"free_shipping_remaining"`
	Formatted             FormattedTotal `json:"formatted"`
	IsOpen                bool           `json:"is_open"`
}

type LineItem struct {
	ProductID      string      `json:"product_id"`
	Name           string      `json:"name"`
	Image          string      `json:"image,omitempty"`
	Category       string      `json:"category"`
	UnitPrice      types.Cents `json:"unit_price"`
	Quantity       int         `json:"quantity"`
	Stock          int         `json:"stock"`
	LineTotal      types.Cents `json:"line_total"`
	FormattedPrice string      `json:"formatted_price"`
	FormattedTotal string      `json:"formatted_total"`
}

type FormattedTotal struct {
	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}
