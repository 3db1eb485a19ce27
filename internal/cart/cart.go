// Package cart holds the shopping cart state machine: line items, derived totals, the closed
// set of mutations and the engine that persists snapshots after every cart change.
package cart

import (
	"slices"

	"github.com/angelmondragon/izishop-backend/internal/catalog"
	"github.com/angelmondragon/izishop-backend/pkg/types"
)

// LineItem is one product in the cart. Product is a value copy taken when the line was added.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
}

// LineTotal is price times quantity for the line.
func (l LineItem) LineTotal() types.Cents {
	return l.Product.Price.Times(l.Quantity)
}

// Totals are always derived from the items, never stored on their own.
type Totals struct {
	Subtotal types.Cents `json:"subtotal"`
	Shipping types.Cents `json:"shipping"`
	Tax      types.Cents `json:"tax"`
	Total    types.Cents `json:"total"`
}

// Cart is the ordered line items plus their derived totals.
type Cart struct {
	Items []LineItem `json:"items"`
	Totals
}

// ItemCount is the number of units across all lines.
func (c Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Item looks up the line for productID.
func (c Cart) Item(productID string) (LineItem, bool) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return LineItem{}, false
	}
	return c.Items[idx], true
}

func (c Cart) indexOf(productID string) int {
	return slices.IndexFunc(c.Items, func(item LineItem) bool { return item.ProductID == productID })
}

// clone copies the item slice and each embedded product so the result shares nothing with c.
func (c Cart) clone() Cart {
	out := Cart{Totals: c.Totals, Items: make([]LineItem, len(c.Items))}
	for i, item := range c.Items {
		item.Product = item.Product.Clone()
		out.Items[i] = item
	}
	return out
}

// State is the cart plus the drawer visibility flag.
type State struct {
	Cart Cart `json:"cart"`
	Open bool `json:"is_open"`
}

// Empty is the initial state: no items, zero totals, closed.
func Empty() State {
	return State{Cart: Cart{Items: []LineItem{}}}
}

func (s State) clone() State {
	return State{Cart: s.Cart.clone(), Open: s.Open}
}
