package services

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"dronedelivery/internal/core/domain/model/order"
)

// ErrOrderNotInPool is returned when a selection names an order the pool does not hold.
var ErrOrderNotInPool = errors.New("order is not in the pool")

// OrderPool is the shared backlog a planning run consumes. Accepted orders
// vanish for every later drone, and the orders left behind keep their relative order.
//
// Claim is the only mutating operation and runs under a single lock, so each
// drone's accept/remove step is atomic even if drones were planned concurrently.
type OrderPool struct {
	mu     sync.Mutex
	orders []*order.Order
}

// NewOrderPool copies orders into a new pool.
func NewOrderPool(orders []*order.Order) *OrderPool {
	return &OrderPool{orders: slices.Clone(orders)}
}

// Claim lets choose pick from the current candidates and removes whatever it
// returns. choose sees a copy and may not retain it.
func (p *OrderPool) Claim(choose func(candidates []*order.Order) []*order.Order) ([]*order.Order, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	accepted := choose(slices.Clone(p.orders))
	if len(accepted) == 0 {
		return nil, nil
	}

	if err := p.removeLocked(accepted); err != nil {
		return nil, err
	}
	return accepted, nil
}

// Remaining returns the orders nobody has claimed, in pool order.
func (p *OrderPool) Remaining() []*order.Order {
	p.mu.Lock()
	defer p.mu.Unlock()

	return slices.Clone(p.orders)
}

// Len returns the number of unclaimed orders.
func (p *OrderPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.orders)
}

func (p *OrderPool) removeLocked(accepted []*order.Order) error {
	drop := make(map[*order.Order]struct{}, len(accepted))
	for _, o := range accepted {
		if !slices.Contains(p.orders, o) {
			return fmt.Errorf("%w: %s", ErrOrderNotInPool, o.ID())
		}
		drop[o] = struct{}{}
	}

	p.orders = slices.DeleteFunc(p.orders, func(o *order.Order) bool {
		_, ok := drop[o]
		return ok
	})
	return nil
}
