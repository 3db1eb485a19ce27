package catalog

import (
	"maps"
	"slices"
	"time"

	"github.com/angelmondragon/izishop-backend/pkg/types"
)

// Product is an immutable catalog record. Cart line items embed a copy of it.
type Product struct {
	ID            string            `yaml:"id" json:"id"`
	Name          string            `yaml:"name" json:"name"`
	Description   string            `yaml:"description" json:"description"`
	Price         types.Cents       `yaml:"price" json:"price"`
	OriginalPrice *types.Cents      `yaml:"original_price,omitempty" json:"original_price,omitempty"`
	Images        []string          `yaml:"images" json:"images"`
	Category      string            `yaml:"category" json:"category"`
	Rating        float64           `yaml:"rating" json:"rating"`
	Stock         int               `yaml:"stock" json:"stock"`
	Featured      bool              `yaml:"featured,omitempty" json:"featured,omitempty"`
	Tags          []string          `yaml:"tags,omitempty" json:"tags,omitempty"`
	Seller        string            `yaml:"seller,omitempty" json:"seller,omitempty"`
	Attributes    map[string]string `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	CreatedAt     time.Time         `yaml:"created_at" json:"created_at"`
}

// Clone returns a deep copy so callers cannot reach the catalog's backing storage.
func (p Product) Clone() Product {
	out := p
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		out.OriginalPrice = &v
	}
	out.Images = slices.Clone(p.Images)
	out.Tags = slices.Clone(p.Tags)
	out.Attributes = maps.Clone(p.Attributes)
	return out
}

func (p Product) InStock() bool {
	return p.Stock > 0
}

func (p Product) OnSale() bool {
	return p.OriginalPrice != nil
}

// DiscountPercent is the rounded markdown against the original price, 0 when there is none.
func (p Product) DiscountPercent() int {
	if p.OriginalPrice == nil {
		return 0
	}
	return DiscountPercent(p.Price, *p.OriginalPrice)
}

type Category struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Icon        string `yaml:"icon,omitempty" json:"icon,omitempty"`
	Image       string `yaml:"image,omitempty" json:"image,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}
