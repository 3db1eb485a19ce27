package cart

import (
	"slices"

	"github.com/angelmondragon/izishop-backend/internal/catalog"
)

// Mutation is one of AddItem, RemoveItem, SetQuantity, Clear or ToggleOpen.
type Mutation interface {
	// Kind names the mutation for logs and metrics.
	Kind() string
	// ChangesCart reports whether the mutation can alter items, and so needs persisting.
	ChangesCart() bool
	mutation()
}

// AddItem merges Quantity into the existing line for Product or appends a new line. A
// non-positive Quantity or a product without an id leaves the cart unchanged.
type AddItem struct {
	Product  catalog.Product
	Quantity int
}

// RemoveItem drops the line for ProductID; absent ids are a no-op.
type RemoveItem struct {
	ProductID string
}

// SetQuantity replaces the quantity of an existing line. Zero or less removes it.
type SetQuantity struct {
	ProductID string
	Quantity  int
}

type Clear struct{}

type ToggleOpen struct{}

func (AddItem) Kind() string     { return "add" }
func (RemoveItem) Kind() string  { return "remove" }
func (SetQuantity) Kind() string { return "set_quantity" }
func (Clear) Kind() string       { return "clear" }
func (ToggleOpen) Kind() string  { return "toggle_open" }

func (AddItem) ChangesCart() bool     { return true }
func (RemoveItem) ChangesCart() bool  { return true }
func (SetQuantity) ChangesCart() bool { return true }
func (Clear) ChangesCart() bool       { return true }
func (ToggleOpen) ChangesCart() bool  { return false }

func (AddItem) mutation()     {}
func (RemoveItem) mutation()  {}
func (SetQuantity) mutation() {}
func (Clear) mutation()       {}
func (ToggleOpen) mutation()  {}

// Apply returns the state after m. The input state is never modified and the result shares
// no slices with it. Cart totals are recomputed from scratch whenever items change.
func Apply(p Policy, s State, m Mutation) State {
	next := s.clone()
	switch m := m.(type) {
	case AddItem:
		if m.Quantity <= 0 || m.Product.ID == "" {
			return next
		}
		next.Cart.Items = addItem(next.Cart.Items, m)
	case RemoveItem:
		next.Cart.Items = removeItem(next.Cart.Items, m.ProductID)
	case SetQuantity:
		if m.Quantity <= 0 {
			next.Cart.Items = removeItem(next.Cart.Items, m.ProductID)
			break
		}
		if idx := next.Cart.indexOf(m.ProductID); idx >= 0 {
			next.Cart.Items[idx].Quantity = m.Quantity
		}
	case Clear:
		next.Cart.Items = []LineItem{}
	case ToggleOpen:
		next.Open = !next.Open
		return next
	default:
		return next
	}
	next.Cart.Totals = ComputeTotals(p, next.Cart.Items)
	return next
}

func addItem(items []LineItem, m AddItem) []LineItem {
	for i := range items {
		if items[i].ProductID == m.Product.ID {
			items[i].Quantity += m.Quantity
			return items
		}
	}
	return append(items, LineItem{
		ProductID: m.Product.ID,
		Product:   m.Product.Clone(),
		Quantity:  m.Quantity,
	})
}

func removeItem(items []LineItem, productID string) []LineItem {
	return slices.DeleteFunc(items, func(item LineItem) bool { return item.ProductID == productID })
}
