package cart

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	cartdto "github.com/angelmondragon/izishop-backend/api/controllers/cart/dto"
	"github.com/angelmondragon/izishop-backend/api/middleware"
	"github.com/angelmondragon/izishop-backend/api/responses"
	"github.com/angelmondragon/izishop-backend/api/validators"
	cartsvc "github.com/angelmondragon/izishop-backend/internal/cart"
	pkgerrors "github.com/angelmondragon/izishop-backend/pkg/errors"
	"github.com/angelmondragon/izishop-backend/pkg/logger"
)

// CartFetch returns the session's cart.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		state := svc.Get(r.Context(), middleware.SessionIDFromContext(r.Context()))
		responses.WriteSuccess(w, newCart(state, svc.Policy()))
	}
}

// CartAddItem adds a product to the cart; quantity defaults to 1.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload cartdto.AddItemRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := svc.Add(r.Context(), middleware.SessionIDFromContext(r.Context()), payload.ProductID, addQuantity(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newCart(state, svc.Policy()))
	}
}

// CartSetQuantity replaces a line quantity. Zero or less removes the line.
func CartSetQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartdto.SetQuantityRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := svc.SetQuantity(r.Context(), middleware.SessionIDFromContext(r.Context()), productID, setQuantity(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCart(state, svc.Policy()))
	}
}

// CartRemoveItem deletes a line; absent lines are not an error.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := svc.Remove(r.Context(), middleware.SessionIDFromContext(r.Context()), productID)
		responses.WriteSuccess(w, newCart(state, svc.Policy()))
	}
}

func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		state := svc.Clear(r.Context(), middleware.SessionIDFromContext(r.Context()))
		responses.WriteSuccess(w, newCart(state, svc.Policy()))
	}
}

// CartToggle flips the drawer visibility flag.
func CartToggle(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		state := svc.ToggleOpen(r.Context(), middleware.SessionIDFromContext(r.Context()))
		responses.WriteSuccess(w, newCart(state, svc.Policy()))
	}
}

func productIDParam(r *http.Request) (string, error) {
	productID := strings.TrimSpace(chi.URLParam(r, "productId"))
	if productID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return productID, nil
}
