package catalog

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/angelmondragon/izishop-backend/pkg/types"
)

// Catalog is the read-only source of truth for products and categories. Every accessor hands
// out copies, so a Catalog is safe to share between goroutines.
type Catalog struct {
	products   []Product
	byID       map[string]int
	categories []Category
	catByID    map[string]int
}

// New validates the records and builds the lookup indexes.
func New(products []Product, categories []Category) (*Catalog, error) {
	c := &Catalog{
		byID:    make(map[string]int, len(products)),
		catByID: make(map[string]int, len(categories)),
	}
	for _, cat := range categories {
		id := strings.TrimSpace(cat.ID)
		if id == "" {
			return nil, fmt.Errorf("category %q: id is required", cat.Name)
		}
		if _, dup := c.catByID[id]; dup {
			return nil, fmt.Errorf("duplicate category id %q", id)
		}
		c.catByID[id] = len(c.categories)
		c.categories = append(c.categories, cat)
	}
	for _, p := range products {
		if err := c.validateProduct(p); err != nil {
			return nil, err
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p.Clone())
	}
	return c, nil
}

func (c *Catalog) validateProduct(p Product) error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return fmt.Errorf("product %q: id is required", p.Name)
	case p.Price < 0:
		return fmt.Errorf("product %s: negative price", p.ID)
	case p.Stock < 0:
		return fmt.Errorf("product %s: negative stock", p.ID)
	case p.OriginalPrice != nil && *p.OriginalPrice < 0:
		return fmt.Errorf("product %s: negative original price", p.ID)
	}
	if _, dup := c.byID[p.ID]; dup {
		return fmt.Errorf("duplicate product id %q", p.ID)
	}
	if _, ok := c.catByID[p.Category]; !ok {
		return fmt.Errorf("product %s: unknown category %q", p.ID, p.Category)
	}
	return nil
}

func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	for i, p := range c.products {
		out[i] = p.Clone()
	}
	return out
}

func (c *Catalog) Product(id string) (Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx].Clone(), true
}

func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

func (c *Catalog) Category(id string) (Category, bool) {
	idx, ok := c.catByID[id]
	if !ok {
		return Category{}, false
	}
	return c.categories[idx], true
}

// List runs the filter pipeline over the whole catalog.
func (c *Catalog) List(f Filter) []Product {
	return Apply(c.products, f)
}

func (c *Catalog) Featured() []Product {
	out := make([]Product, 0)
	for _, p := range c.products {
		if p.Featured {
			out = append(out, p.Clone())
		}
	}
	return out
}

// NewArrivals returns the n most recently created products.
func (c *Catalog) NewArrivals(n int) []Product {
	out := Apply(c.products, Filter{Sort: SortNewest})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func (c *Catalog) PriceBounds() (types.Cents, types.Cents) {
	return PriceBounds(c.products)
}

// Related returns up to count other products from p's category, in catalog order.
func (c *Catalog) Related(p Product, count int) []Product {
	out := make([]Product, 0, count)
	for _, candidate := range c.products {
		if len(out) == count {
			break
		}
		if candidate.Category == p.Category && candidate.ID != p.ID {
			out = append(out, candidate.Clone())
		}
	}
	return out
}

// RelatedShuffled picks same-category products first and tops up from other categories, both
// drawn in random order from rng.
func (c *Catalog) RelatedShuffled(p Product, count int, rng *rand.Rand) []Product {
	var same, other []Product
	for _, candidate := range c.products {
		if candidate.ID == p.ID {
			continue
		}
		if candidate.Category == p.Category {
			same = append(same, candidate.Clone())
		} else {
			other = append(other, candidate.Clone())
		}
	}
	shuffle := func(list []Product) {
		rng.Shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })
	}
	if len(same) >= count {
		shuffle(same)
		return same[:count]
	}
	shuffle(other)
	need := min(count-len(same), len(other))
	return append(same, other[:need]...)
}

// CountByCategory returns how many products each category holds, keyed by category id.
func (c *Catalog) CountByCategory() map[string]int {
	counts := make(map[string]int, len(c.categories))
	for _, cat := range c.categories {
		counts[cat.ID] = 0
	}
	for _, p := range c.products {
		counts[p.Category]++
	}
	return counts
}
