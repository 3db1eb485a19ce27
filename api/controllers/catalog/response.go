package catalog

import (
	"golang.org/x/text/language"

	catalogdto "github.com/angelmondragon/izishop-backend/api/controllers/catalog/dto"
	catalogsvc "github.com/angelmondragon/izishop-backend/internal/catalog"
)

const summaryLength = 100

var displayLocale = language.French

func newProductSummary(p catalogsvc.Product) catalogdto.ProductSummary {
	out := catalogdto.ProductSummary{
		ID:              p.ID,
		Slug:            catalogsvc.Slug(p.Name),
		Name:            p.Name,
		Summary:         catalogsvc.Truncate(p.Description, summaryLength),
		Price:           p.Price,
		DiscountPercent: p.DiscountPercent(),
		FormattedPrice:  p.Price.Format(displayLocale),
		Category:        p.Category,
		Rating:          p.Rating,
		Stock:           p.Stock,
		InStock:         p.InStock(),
		Featured:        p.Featured,
		Tags:            p.Tags,
	}
	if p.OriginalPrice != nil {
		original := *p.OriginalPrice
		out.OriginalPrice = &original
		out.FormattedOriginalPrice = original.Format(displayLocale)
	}
	if len(p.Images) > 0 {
		out.Image = p.Images[0]
	}
	return out
}

func newProductSummaries(products []catalogsvc.Product) []catalogdto.ProductSummary {
	out := make([]catalogdto.ProductSummary, 0, len(products))
	for _, p := range products {
		out = append(out, newProductSummary(p))
	}
	return out
}

func newProductDetail(p catalogsvc.Product, category *catalogdto.Category, related []catalogsvc.Product) catalogdto.ProductDetail {
	return catalogdto.ProductDetail{
		ProductSummary: newProductSummary(p),
		Description:    p.Description,
		Images:         p.Images,
		Seller:         p.Seller,
		Attributes:     p.Attributes,
		CreatedAt:      p.CreatedAt,
		CategoryRef:    category,
		Related:        newProductSummaries(related),
	}
}

func newCategory(c catalogsvc.Category, count int) catalogdto.Category {
	return catalogdto.Category{
		ID:           c.ID,
		Name:         c.Name,
		Icon:         c.Icon,
		Image:        c.Image,
		Description:  c.Description,
		ProductCount: count,
	}
}

func newCategories(cat *catalogsvc.Catalog) []catalogdto.Category {
	counts := cat.CountByCategory()
	categories := cat.Categories()
	out := make([]catalogdto.Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, newCategory(c, counts[c.ID]))
	}
	return out
}
