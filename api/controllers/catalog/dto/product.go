package catalogdto

import (
	"time"

	"github.com/angelmondragon/izishop-backend/pkg/types"
)

// ProductSummary is the card view of a product used by listings.
type ProductSummary struct {
	ID                     string       `json:"id"`
	Slug                   string       `json:"slug"`
	Name                   string       `json:"name"`
	Summary                string       `json:"summary"`
	Price                  types.Cents  `json:"price"`
	OriginalPrice          *types.Cents `json:"original_price,omitempty"`
	DiscountPercent        int          `json:"discount_percent,omitempty"`
	FormattedPrice         string       `json:"formatted_price"`
	FormattedOriginalPrice string       `json:"formatted_original_price,omitempty"`
	Image                  string       `json:"image,omitempty"`
	Category               string       `json:"category"`
	Rating                 float64      `json:"rating"`
	Stock                  int          `json:"stock"`
	InStock                bool         `json:"in_stock"`
	Featured               bool         `json:"featured"`
	Tags                   []string     `json:"tags,omitempty"`
}

// ProductDetail is the full product page payload.
type ProductDetail struct {
	ProductSummary
	Description string            `json:"description"`
	Images      []string          `json:"images"`
	Seller      string            `json:"seller,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	CategoryRef *Category         `json:"category_ref,omitempty"`
	Related     []ProductSummary  `json:"related"`
}
