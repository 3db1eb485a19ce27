package cart

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/angelmondragon/izishop-backend/pkg/kv"
	"github.com/angelmondragon/izishop-backend/pkg/logger"
	"github.com/angelmondragon/izishop-backend/pkg/metrics"
)

// Registry defaults applied when SessionsOptions leaves them unset.
const (
	DefaultMaxSessions = 10000
	DefaultIdleTTL     = 30 * time.Minute
)

// Sessions hands out one Engine per session id, restoring each from its own slot on first use.
// Engines are held in a size-capped LRU and dropped after IdleTTL without access; a dropped
// session restores from its slot on the next request.
type Sessions struct {
	engines *expirable.LRU[string, *Engine]
	sfg     singleflight.Group // concurrent first requests share one restore

	store   kv.Store
	baseKey string
	policy  Policy
	logg    *logger.Logger
	metrics *metrics.CartMetrics
}

// SessionsOptions wires the registry. BaseKey is the application slot key, e.g. "izishop-cart".
type SessionsOptions struct {
	Store       kv.Store
	BaseKey     string
	Policy      Policy
	Logger      *logger.Logger
	Metrics     *metrics.CartMetrics
	MaxSessions int
	IdleTTL     time.Duration
}

func NewSessions(opts SessionsOptions) *Sessions {
	logg := opts.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	store := opts.Store
	if store == nil {
		store = kv.NewMemory()
	}
	size := opts.MaxSessions
	if size <= 0 {
		size = DefaultMaxSessions
	}
	ttl := opts.IdleTTL
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	m := opts.Metrics
	// runs under the LRU lock: must not call back into the registry
	onEvict := func(string, *Engine) { m.IncSessionEviction() }
	return &Sessions{
		engines: expirable.NewLRU[string, *Engine](size, onEvict, ttl),
		store:   store,
		baseKey: opts.BaseKey,
		policy:  opts.Policy,
		logg:    logg,
		metrics: m,
	}
}

// StorageKey is the slot for sessionID: the base key, suffixed with ":<id>" when an id is set.
func (s *Sessions) StorageKey(sessionID string) string {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return s.baseKey
	}
	return s.baseKey + ":" + sessionID
}

// Engine returns the engine for sessionID, restoring it on first access.
func (s *Sessions) Engine(ctx context.Context, sessionID string) *Engine {
	key := s.StorageKey(sessionID)
	if e := s.lookup(key); e != nil {
		return e
	}

	// shared by every waiter, so detached from this caller's cancellation
	restoreCtx := context.WithoutCancel(ctx)
	v, _, _ := s.sfg.Do(key, func() (any, error) {
		if e := s.lookup(key); e != nil {
			return e, nil
		}
		e := NewEngine(restoreCtx, EngineOptions{
			Store:   s.store,
			Key:     key,
			Policy:  s.policy,
			Logger:  s.logg,
			Metrics: s.metrics,
		})
		s.engines.Add(key, e)
		s.metrics.SetActiveSessions(s.engines.Len())
		return e, nil
	})
	return v.(*Engine)
}

// Snapshot returns the session's cart state. A session with no engine in memory and nothing
// in its slot reads as an empty cart without registering an engine.
func (s *Sessions) Snapshot(ctx context.Context, sessionID string) State {
	key := s.StorageKey(sessionID)
	if e := s.lookup(key); e != nil {
		return e.State()
	}
	if _, err := s.store.Get(ctx, key); errors.Is(err, kv.ErrNotFound) {
		return Empty()
	}
	return s.Engine(ctx, sessionID).State()
}

func (s *Sessions) lookup(key string) *Engine {
	e, ok := s.engines.Get(key)
	if !ok {
		return nil
	}
	// re-adding pushes the idle deadline out
	s.engines.Add(key, e)
	return e
}

// Forget drops the in-memory engine for sessionID. Its slot is left in the store, so the next
// access restores it.
func (s *Sessions) Forget(sessionID string) {
	s.engines.Remove(s.StorageKey(sessionID))
	s.metrics.SetActiveSessions(s.engines.Len())
}

// Len reports how many engines are held in memory.
func (s *Sessions) Len() int {
	return s.engines.Len()
}
