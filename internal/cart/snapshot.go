package cart

import (
	"encoding/json"
	"fmt"

	"github.com/angelmondragon/izishop-backend/internal/catalog"
)

// encodeSnapshot renders the persisted form {items, subtotal, shipping, tax, total}.
func encodeSnapshot(c Cart) (string, error) {
	if c.Items == nil {
		c.Items = []LineItem{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode cart snapshot: %w", err)
	}
	return string(b), nil
}

type storedItem struct {
	ProductID string          `json:"product_id"`
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
}

type storedCart struct {
	Items []storedItem `json:"items"`
}

// decodeSnapshot returns the stored items. Stored totals are ignored and re-derived on replay.
func decodeSnapshot(raw string) ([]storedItem, error) {
	var stored storedCart
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	return stored.Items, nil
}

// replayable reports whether a stored entry can be fed back through AddItem. The line's
// product_id wins over the embedded product's id when they disagree.
func (s storedItem) replayable() (AddItem, bool) {
	id := s.ProductID
	if id == "" {
		id = s.Product.ID
	}
	if id == "" || s.Quantity <= 0 {
		return AddItem{}, false
	}
	product := s.Product
	product.ID = id
	return AddItem{Product: product, Quantity: s.Quantity}, true
}
