package catalog

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	catalogdto "github.com/angelmondragon/izishop-backend/api/controllers/catalog/dto"
	"github.com/angelmondragon/izishop-backend/api/responses"
	"github.com/angelmondragon/izishop-backend/api/validators"
	catalogsvc "github.com/angelmondragon/izishop-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/izishop-backend/pkg/errors"
	"github.com/angelmondragon/izishop-backend/pkg/logger"
	"github.com/angelmondragon/izishop-backend/pkg/types"
)

const (
	maxQueryLength     = 100
	defaultRelated     = 4
	maxRelated         = 12
	defaultNewArrivals = 4
	maxNewArrivals     = 16
)

// CategoryList returns every category with its product count.
func CategoryList(cat *catalogsvc.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		categories := newCategories(cat)
		responses.WriteList(w, categories, types.ListMeta{Count: len(categories)})
	}
}

// CategoryPage lists one category's products, honouring q and sort.
func CategoryPage(cat *catalogsvc.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		categoryID := strings.TrimSpace(chi.URLParam(r, "categoryId"))
		category, ok := cat.Category(categoryID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "category not found"))
			return
		}

		values := r.URL.Query()
		values.Set(catalogsvc.ParamQuery, validators.SanitizeString(values.Get(catalogsvc.ParamQuery), maxQueryLength))
		filter := catalogsvc.ParseCategoryValues(category.ID, values)
		products := cat.List(filter)

		counts := cat.CountByCategory()
		responses.WriteSuccess(w, catalogdto.CategoryPage{
			Category: newCategory(category, counts[category.ID]),
			Sort:     string(filter.Sort),
			Query:    filter.Query,
			Products: newProductSummaries(products),
		})
	}
}

// ProductList runs the listing pipeline and echoes the canonical query for the active filters.
func ProductList(cat *catalogsvc.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		values := r.URL.Query()
		values.Set(catalogsvc.ParamQuery, validators.SanitizeString(values.Get(catalogsvc.ParamQuery), maxQueryLength))
		filter, err := catalogsvc.ParseListingValues(values)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, filterError(err))
			return
		}

		products := cat.List(filter)
		low, high := cat.PriceBounds()
		responses.WriteList(w, newProductSummaries(products), types.ListMeta{
			Count:          len(products),
			CanonicalQuery: filter.ListingValues().Encode(),
			PriceBounds:    &types.PriceRange{Min: low, Max: high},
		})
	}
}

// ProductDetail returns one product with its related picks. shuffle=true draws related
// products at random and tops up from other categories.
func ProductDetail(cat *catalogsvc.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		product, ok := cat.Product(productID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		count, err := validators.ParseQueryInt(r, "related", defaultRelated, 0, maxRelated)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shuffle, err := validators.ParseQueryBool(r, "shuffle", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var related []catalogsvc.Product
		if shuffle {
			seed := uint64(time.Now().UnixNano())
			related = cat.RelatedShuffled(product, count, rand.New(rand.NewPCG(seed, seed>>1)))
		} else {
			related = cat.Related(product, count)
		}

		var categoryRef *catalogdto.Category
		if category, ok := cat.Category(product.Category); ok {
			ref := newCategory(category, cat.CountByCategory()[category.ID])
			categoryRef = &ref
		}

		responses.WriteSuccess(w, newProductDetail(product, categoryRef, related))
	}
}

// Home returns the landing page selection: categories, featured products and new arrivals.
func Home(cat *catalogsvc.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "new_arrivals", defaultNewArrivals, 0, maxNewArrivals)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, catalogdto.Home{
			Categories:  newCategories(cat),
			Featured:    newProductSummaries(cat.Featured()),
			NewArrivals: newProductSummaries(cat.NewArrivals(limit)),
		})
	}
}

func filterError(err error) error {
	var fe *catalogsvc.FilterError
	if errors.As(err, &fe) {
		return pkgerrors.New(pkgerrors.CodeValidation, fe.Error()).WithDetails(map[string]any{"field": fe.Param, "reason": fe.Reason})
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid filter")
}
