package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"mealorders/pkg/session"
)

// Order is a meal the user has asked for.
type Order struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Completed bool   `json:"completed"`
}

// Keys under which the store persists its state.
const (
	KeyOrders = "orders"
	KeyLastID = "lastOrderId"
)

var (
	// ErrNotFound indicates the requested order does not exist.
	ErrNotFound = errors.New("order not found")
	// ErrAlreadyComplete indicates the order was completed earlier.
	ErrAlreadyComplete = errors.New("order already complete")
)

// Predicate selects orders for List.
type Predicate func(Order) bool

// Predicates used by the two views.
var (
	All       Predicate = func(Order) bool { return true }
	Pending   Predicate = func(o Order) bool { return !o.Completed }
	Completed Predicate = func(o Order) bool { return o.Completed }
)

// Store keeps the order list of one session in a session.Store. Every
// mutation is a locked read-modify-write against the backing store.
type Store struct {
	kv session.Store
	mu sync.Locker
}

// Option configures a Store.
type Option func(*Store)

// WithLock makes the store serialize on l instead of a private mutex, so
// several Store values over the same session can share one lock.
func WithLock(l sync.Locker) Option {
	return func(s *Store) { s.mu = l }
}

// NewStore returns a Store backed by kv.
func NewStore(kv session.Store, opts ...Option) *Store {
	s := &Store{kv: kv, mu: &sync.Mutex{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create appends a pending order and advances the id counter.
func (s *Store) Create(ctx context.Context, name, image string) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, next, err := s.load(ctx)
	if err != nil {
		return Order{}, err
	}
	o := Order{ID: next, Name: name, Image: image}
	orders = append(orders, o)
	if err := s.saveOrders(ctx, orders); err != nil {
		return Order{}, err
	}
	if err := s.kv.Set(ctx, KeyLastID, strconv.Itoa(next+1)); err != nil {
		return Order{}, fmt.Errorf("saving %s: %w", KeyLastID, err)
	}
	return o, nil
}

// List returns the orders matching p in insertion order.
func (s *Store) List(ctx context.Context, p Predicate) ([]Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if p(o) {
			out = append(out, o)
		}
	}
	return out, nil
}

// Snapshot reads the list once and splits it into pending and completed.
func (s *Store) Snapshot(ctx context.Context) (pending, completed []Order, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, _, err := s.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	pending = make([]Order, 0, len(orders))
	completed = make([]Order, 0, len(orders))
	for _, o := range orders {
		if o.Completed {
			completed = append(completed, o)
		} else {
			pending = append(pending, o)
		}
	}
	return pending, completed, nil
}

// Complete marks order id as completed. Completion is one-way.
func (s *Store) Complete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, _, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		if orders[i].Completed {
			return ErrAlreadyComplete
		}
		orders[i].Completed = true
		return s.saveOrders(ctx, orders)
	}
	return ErrNotFound
}

// NextID reports the id the next Create will assign.
func (s *Store) NextID(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, next, err := s.load(ctx)
	return next, err
}

// load reads the order list and the id counter. Missing keys mean an
// empty list and a counter of 1. The counter is never allowed to fall at
// or below an id that is already in use.
func (s *Store) load(ctx context.Context) ([]Order, int, error) {
	var orders []Order
	raw, ok, err := s.kv.Get(ctx, KeyOrders)
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", KeyOrders, err)
	}
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &orders); err != nil {
			return nil, 0, fmt.Errorf("decoding %s: %w", KeyOrders, err)
		}
	}

	next := 1
	raw, ok, err = s.kv.Get(ctx, KeyLastID)
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", KeyLastID, err)
	}
	if ok {
		if n, err := strconv.Atoi(raw); err == nil && n > next {
			next = n
		}
	}
	for _, o := range orders {
		if o.ID >= next {
			next = o.ID + 1
		}
	}
	return orders, next, nil
}

func (s *Store) saveOrders(ctx context.Context, orders []Order) error {
	if orders == nil {
		orders = []Order{}
	}
	b, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", KeyOrders, err)
	}
	if err := s.kv.Set(ctx, KeyOrders, string(b)); err != nil {
		return fmt.Errorf("saving %s: %w", KeyOrders, err)
	}
	return nil
}
