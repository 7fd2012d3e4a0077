package services

import (
	"slices"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/order"
)

// Route is a drone's visiting order and the tour length base -> stops -> base.
type Route struct {
	Stops    []*order.Order
	Distance int
}

// RoutePlanner sequences the orders already chosen for one drone.
type RoutePlanner interface {
	Route(orders []*order.Order) Route
}

// NearestNeighborRoutePlanner builds a tour by always flying to the closest
// unvisited stop. It is a greedy approximation, not an exact shortest tour.
//
// Ties go to the order encountered first among the remaining ones, which keep
// their input order. Identical inputs therefore always produce identical routes.
type NearestNeighborRoutePlanner struct{}

// NewNearestNeighborRoutePlanner creates the default RoutePlanner.
func NewNearestNeighborRoutePlanner() NearestNeighborRoutePlanner {
	return NearestNeighborRoutePlanner{}
}

// Route implements RoutePlanner. An empty input yields an empty route of length 0.
func (NearestNeighborRoutePlanner) Route(orders []*order.Order) Route {
	if len(orders) == 0 {
		return Route{}
	}

	remaining := slices.Clone(orders)
	stops := make([]*order.Order, 0, len(orders))
	current := kernel.Base
	total := 0

	for len(remaining) > 0 {
		best := 0
		bestDistance := current.Distance(remaining[0].Destination())
		for i := 1; i < len(remaining); i++ {
			if d := current.Distance(remaining[i].Destination()); d < bestDistance {
				best, bestDistance = i, d
			}
		}

		next := remaining[best]
		total += bestDistance
		current = next.Destination()
		stops = append(stops, next)
		remaining = slices.Delete(remaining, best, best+1)
	}

	total += current.Distance(kernel.Base)

	return Route{Stops: stops, Distance: total}
}

// PlanRoute returns only the nearest-neighbor tour length for orders.
func PlanRoute(orders []*order.Order) int {
	return NearestNeighborRoutePlanner{}.Route(orders).Distance
}
