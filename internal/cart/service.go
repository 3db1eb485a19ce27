package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/izishop-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/izishop-backend/pkg/errors"
)

type productLookup interface {
	Product(id string) (catalog.Product, bool)
}

// Service exposes cart operations keyed by session, resolving product ids through the catalog.
type Service interface {
	Get(ctx context.Context, sessionID string) State
	Add(ctx context.Context, sessionID, productID string, quantity int) (State, error)
	SetQuantity(ctx context.Context, sessionID, productID string, quantity int) (State, error)
	Remove(ctx context.Context, sessionID, productID string) State
	Clear(ctx context.Context, sessionID string) State
	ToggleOpen(ctx context.Context, sessionID string) State
	Policy() Policy
}

type service struct {
	sessions *Sessions
	products productLookup
}

// NewService builds a cart service over the session registry and catalog.
func NewService(sessions *Sessions, products productLookup) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("cart sessions required")
	}
	if products == nil {
		return nil, fmt.Errorf("product lookup required")
	}
	return &service{sessions: sessions, products: products}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) State {
	return s.sessions.Snapshot(ctx, sessionID)
}

// Add validates the request against the catalog before dispatching. Stock is checked against
// the requested quantity only, not the merged line.
func (s *service) Add(ctx context.Context, sessionID, productID string, quantity int) (State, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return State{}, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}
	if quantity < 1 {
		return State{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
			WithDetails(map[string]any{"quantity": quantity})
	}
	product, ok := s.products.Product(productID)
	if !ok {
		return State{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if quantity > product.Stock {
		return State{}, pkgerrors.New(pkgerrors.CodeConflict, "requested quantity exceeds stock").
			WithDetails(map[string]any{"product_id": productID, "requested": quantity, "stock": product.Stock})
	}
	return s.sessions.Engine(ctx, sessionID).Add(ctx, product, quantity), nil
}

// SetQuantity replaces a line's quantity; zero or less removes it and unknown lines are left
// alone. Only quantities above the product's stock are rejected.
func (s *service) SetQuantity(ctx context.Context, sessionID, productID string, quantity int) (State, error) {
	if product, ok := s.products.Product(productID); ok && quantity > product.Stock {
		return State{}, pkgerrors.New(pkgerrors.CodeConflict, "requested quantity exceeds stock").
			WithDetails(map[string]any{"product_id": productID, "requested": quantity, "stock": product.Stock})
	}
	return s.sessions.Engine(ctx, sessionID).SetQuantity(ctx, productID, quantity), nil
}

func (s *service) Remove(ctx context.Context, sessionID, productID string) State {
	return s.sessions.Engine(ctx, sessionID).Remove(ctx, productID)
}

func (s *service) Clear(ctx context.Context, sessionID string) State {
	return s.sessions.Engine(ctx, sessionID).Clear(ctx)
}

func (s *service) ToggleOpen(ctx context.Context, sessionID string) State {
	return s.sessions.Engine(ctx, sessionID).ToggleOpen(ctx)
}

func (s *service) Policy() Policy {
	return s.sessions.policy
}
