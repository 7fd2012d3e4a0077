package services

import (
	"dronedelivery/internal/core/domain/model/drone"
	"dronedelivery/internal/core/domain/model/order"
)

// OrderSelector packs orders for one drone from the current pool candidates.
// Implementations must return a subset of candidates and must not mutate them.
type OrderSelector interface {
	Select(d *drone.Drone, candidates []*order.Order) []*order.Order
}

// FirstFitSelector scans candidates once, left to right, and accepts every
// feasible order that fits the payload still free at that moment. It never
// backtracks, so it is a first-fit heuristic rather than an optimal knapsack.
type FirstFitSelector struct{}

// NewFirstFitSelector creates the default OrderSelector.
func NewFirstFitSelector() FirstFitSelector {
	return FirstFitSelector{}
}

// Select implements OrderSelector.
func (FirstFitSelector) Select(d *drone.Drone, candidates []*order.Order) []*order.Order {
	remaining := d.MaxPayload()
	var accepted []*order.Order

	for _, o := range candidates {
		if !IsFeasible(d, o) || o.Weight() > remaining {
			continue
		}
		accepted = append(accepted, o)
		remaining -= o.Weight()
	}

	return accepted
}

// TourRangeSelector is FirstFitSelector plus a range check on the whole tour:
// an order is rejected if adding it would push the drone's route past max_distance.
// It is opt-in; the default planner checks range per order only.
type TourRangeSelector struct {
	router RoutePlanner
}

// NewTourRangeSelector creates a TourRangeSelector that measures tours with router.
func NewTourRangeSelector(router RoutePlanner) TourRangeSelector {
	return TourRangeSelector{router: router}
}

// Select implements OrderSelector.
func (s TourRangeSelector) Select(d *drone.Drone, candidates []*order.Order) []*order.Order {
	remaining := d.MaxPayload()
	var accepted []*order.Order

	for _, o := range candidates {
		if !IsFeasible(d, o) || o.Weight() > remaining {
			continue
		}
		tour := s.router.Route(append(accepted[:len(accepted):len(accepted)], o))
		if float64(tour.Distance) > d.MaxDistance() {
			continue
		}
		accepted = append(accepted, o)
		remaining -= o.Weight()
	}

	return accepted
}
