// Package store runs the shop reducer behind a single event loop.
//
// A Store is built once with New, which hydrates products and cart items
// from storage, and then driven by Run. Actions are queued in FIFO order and
// reduced one at a time on the goroutine that called Run. After every
// reduction the changed collections are written back to storage, subscribers
// receive the new state and, when a publisher is configured, an event is
// published for the action.
//
// On start Run loads the catalog once: when no products were hydrated the
// catalog is fetched in the background and its outcome comes back through
// the queue as LoadingSuccess or LoadingError; otherwise LoadingSuccess is
// queued straight away.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/internal/shop"
	"github.com/Skotchmaster/shoe_shop/internal/storage"
)

const (
	ProductsKey  = "products"
	CartItemsKey = "cartItems"

	persistTimeout = 3 * time.Second
	publishTimeout = 5 * time.Second
)

var (
	ErrStopped        = errors.New("store stopped")
	ErrAlreadyRunning = errors.New("store already running")
	ErrNoCatalog      = errors.New("no catalog configured")
)

type CatalogFetcher interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
}

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type Deps struct {
	Storage   storage.Storage
	Catalog   CatalogFetcher
	Publisher Publisher
	Logger    *slog.Logger
}

type envelope struct {
	action shop.Action
	done   chan models.AppState
}

type Store struct {
	storage   storage.Storage
	catalog   CatalogFetcher
	publisher Publisher
	logger    *slog.Logger

	queue   actionQueue
	running atomic.Bool
	stopped chan struct{}

	mu    sync.RWMutex
	state models.AppState

	subMu   sync.Mutex
	subs    map[int]func(models.AppState)
	nextSub int
}

// New hydrates a store from deps.Storage. Missing or unreadable values
// start out empty.
func New(ctx context.Context, deps Deps) (*Store, error) {
	if deps.Storage == nil {
		return nil, errors.New("store: storage is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	products := storage.Load(ctx, deps.Storage, ProductsKey, []models.Product{})
	if products == nil {
		products = []models.Product{}
	}
	cartItems := storage.Load(ctx, deps.Storage, CartItemsKey, []models.CartItem{})
	if cartItems == nil {
		cartItems = []models.CartItem{}
	}

	logger.Info("store_hydrated", "products", len(products), "cart_items", len(cartItems))

	return &Store{
		storage:   deps.Storage,
		catalog:   deps.Catalog,
		publisher: deps.Publisher,
		logger:    logger,
		queue:     newActionQueue(),
		stopped:   make(chan struct{}),
		state: models.AppState{
			Products:  products,
			CartItems: cartItems,
		},
		subs: make(map[int]func(models.AppState)),
	}, nil
}

// Run processes queued actions until ctx is done. It returns nil on
// cancellation and an error wrapping shop.ErrUnhandledAction if an action
// the reducer does not know reaches it. A Store runs at most once.
func (s *Store) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(s.stopped)

	s.startInitialLoad(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("store_stopped")
			return nil
		case <-s.queue.ready():
			for _, env := range s.queue.drain() {
				if err := s.apply(ctx, env); err != nil {
					s.logger.Error("store_failed", "kind", kindOf(env.action), "error", err)
					return err
				}
			}
		}
	}
}

// Done is closed once Run has returned.
func (s *Store) Done() <-chan struct{} {
	return s.stopped
}

func (s *Store) startInitialLoad(ctx context.Context) {
	if len(s.Products()) > 0 {
		s.logger.Info("catalog_cached")
		s.Dispatch(shop.LoadingSuccess{})
		return
	}
	if s.catalog == nil {
		s.Dispatch(shop.LoadingError{Err: ErrNoCatalog})
		return
	}

	go func() {
		products, err := s.catalog.GetProducts(ctx)
		if err != nil {
			s.logger.Warn("catalog_fetch_failed", "error", err)
			s.Dispatch(shop.LoadingError{Err: err})
			return
		}
		if products == nil {
			products = []models.Product{}
		}
		s.logger.Info("catalog_fetched", "products", len(products))
		s.Dispatch(shop.LoadingSuccess{Data: products})
	}()
}

func (s *Store) apply(ctx context.Context, env envelope) error {
	s.mu.RLock()
	prev := s.state
	s.mu.RUnlock()

	next, err := shop.Reduce(prev, env.action)
	if err != nil {
		return fmt.Errorf("reduce: %w", err)
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	productsChanged := !slices.Equal(prev.Products, next.Products)
	cartChanged := !slices.Equal(prev.CartItems, next.CartItems)

	if productsChanged {
		s.persist(ctx, ProductsKey, next.Products)
	}
	if cartChanged {
		s.persist(ctx, CartItemsKey, next.CartItems)
	}

	s.logger.Debug("action_reduced",
		"kind", env.action.Kind(),
		"product_id", shop.ProductID(env.action),
		"products_changed", productsChanged,
		"cart_changed", cartChanged,
	)

	if productsChanged || cartChanged || prev.Loading != next.Loading {
		s.notify(next)
	}
	s.publish(ctx, env.action, next)

	if env.done != nil {
		env.done <- cloneState(next)
	}
	return nil
}

func (s *Store) persist(ctx context.Context, key string, v any) {
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	if err := storage.Save(wctx, s.storage, key, v); err != nil {
		s.logger.Error("persist_failed", "storage_key", key, "error", err)
	}
}

func (s *Store) notify(state models.AppState) {
	s.subMu.Lock()
	fns := make([]func(models.AppState), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(cloneState(state))
	}
}

// Subscribe registers fn to receive every new state. fn runs on the event
// loop and must not block on the store.
func (s *Store) Subscribe(fn func(models.AppState)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Dispatch queues a for reduction and returns immediately. Actions sent
// after Run has returned are dropped.
func (s *Store) Dispatch(a shop.Action) {
	if !s.enqueue(envelope{action: a}) {
		s.logger.Warn("dispatch_dropped", "kind", kindOf(a), "reason", "store stopped")
	}
}

// DispatchSync queues a and waits until it has been reduced, returning the
// resulting state.
func (s *Store) DispatchSync(ctx context.Context, a shop.Action) (models.AppState, error) {
	done := make(chan models.AppState, 1)
	if !s.enqueue(envelope{action: a, done: done}) {
		return models.AppState{}, ErrStopped
	}

	select {
	case st := <-done:
		return st, nil
	case <-s.stopped:
		select {
		case st := <-done:
			return st, nil
		default:
			return models.AppState{}, ErrStopped
		}
	case <-ctx.Done():
		return models.AppState{}, ctx.Err()
	}
}

func (s *Store) enqueue(env envelope) bool {
	select {
	case <-s.stopped:
		return false
	default:
	}
	s.queue.push(env)
	return true
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() models.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(s.state)
}

func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.Products)
}

func (s *Store) CartItems() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.CartItems)
}

func (s *Store) Loading() models.Loading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Loading
}

func cloneState(st models.AppState) models.AppState {
	st.Products = slices.Clone(st.Products)
	st.CartItems = slices.Clone(st.CartItems)
	return st
}

func kindOf(a shop.Action) shop.Kind {
	if a == nil {
		return "<nil>"
	}
	return a.Kind()
}
