package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/angelmondragon/izishop-backend/internal/catalog"
	"github.com/angelmondragon/izishop-backend/pkg/kv"
	"github.com/angelmondragon/izishop-backend/pkg/logger"
	"github.com/angelmondragon/izishop-backend/pkg/metrics"
)

// Engine owns one cart. Mutations are serialised; every cart change is written to the store
// before the call returns.
type Engine struct {
	mu      sync.Mutex
	state   State
	store   kv.Store
	key     string
	policy  Policy
	logg    *logger.Logger
	metrics *metrics.CartMetrics
}

// EngineOptions wires an engine. Logger and Metrics may be nil.
type EngineOptions struct {
	Store   kv.Store
	Key     string
	Policy  Policy
	Logger  *logger.Logger
	Metrics *metrics.CartMetrics
}

// NewEngine builds an engine and restores its slot once. A missing or unreadable slot yields
// an empty cart; restore never fails.
func NewEngine(ctx context.Context, opts EngineOptions) *Engine {
	logg := opts.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	store := opts.Store
	if store == nil {
		store = kv.NewMemory()
	}
	e := &Engine{
		state:   Empty(),
		store:   store,
		key:     opts.Key,
		policy:  opts.Policy,
		logg:    logg,
		metrics: opts.Metrics,
	}
	e.restore(logg.WithField(ctx, "cart_key", e.key))
	return e
}

func (e *Engine) restore(ctx context.Context) {
	raw, err := e.store.Get(ctx, e.key)
	if errors.Is(err, kv.ErrNotFound) {
		e.metrics.IncRestore(metrics.RestoreEmpty)
		return
	}
	if err != nil {
		e.logg.Error(ctx, "cart restore read failed; starting empty", err)
		e.metrics.IncRestore(metrics.RestoreFailed)
		return
	}

	items, err := decodeSnapshot(raw)
	if err != nil {
		e.logg.Warn(e.logg.WithField(ctx, "error", err.Error()), "persisted cart unreadable; starting empty")
		e.metrics.IncRestore(metrics.RestoreCorrupt)
		// unreadable slots are dropped so later restores see a missing cart
		if err := e.store.Delete(ctx, e.key); err != nil {
			e.logg.Error(ctx, "failed to drop unreadable cart slot", err)
		}
		return
	}

	state := Empty()
	skipped := 0
	for _, item := range items {
		add, ok := item.replayable()
		if !ok {
			skipped++
			continue
		}
		state = Apply(e.policy, state, add)
	}
	e.state = state
	if skipped > 0 {
		e.logg.Warn(e.logg.WithField(ctx, "skipped", skipped), "dropped invalid persisted cart lines")
	}
	e.metrics.IncRestore(metrics.RestoreLoaded)
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.clone()
}

// Dispatch applies m, persists the cart when m changes it, and returns the new state. Write
// failures are logged and counted; the in-memory state stays authoritative.
func (e *Engine) Dispatch(ctx context.Context, m Mutation) State {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = Apply(e.policy, e.state, m)
	e.metrics.IncMutation(m.Kind())
	if m.ChangesCart() {
		e.persist(ctx, m)
	}
	return e.state.clone()
}

// persist runs detached from ctx cancellation: the mutation is already applied in memory.
func (e *Engine) persist(ctx context.Context, m Mutation) {
	ctx = e.logg.WithFields(context.WithoutCancel(ctx), map[string]any{"cart_key": e.key, "mutation": m.Kind()})
	raw, err := encodeSnapshot(e.state.Cart)
	if err == nil {
		err = e.store.Set(ctx, e.key, raw)
	}
	if err != nil {
		e.logg.Error(ctx, "persist cart snapshot failed", err)
		e.metrics.IncPersistFailure(m.Kind())
	}
}

func (e *Engine) Add(ctx context.Context, product catalog.Product, quantity int) State {
	return e.Dispatch(ctx, AddItem{Product: product, Quantity: quantity})
}

func (e *Engine) Remove(ctx context.Context, productID string) State {
	return e.Dispatch(ctx, RemoveItem{ProductID: productID})
}

func (e *Engine) SetQuantity(ctx context.Context, productID string, quantity int) State {
	return e.Dispatch(ctx, SetQuantity{ProductID: productID, Quantity: quantity})
}

func (e *Engine) Clear(ctx context.Context) State {
	return e.Dispatch(ctx, Clear{})
}

func (e *Engine) ToggleOpen(ctx context.Context) State {
	return e.Dispatch(ctx, ToggleOpen{})
}

// Key is the storage slot this engine writes to.
func (e *Engine) Key() string {
	return e.key
}
