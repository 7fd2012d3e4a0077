package services

import (
	"dronedelivery/internal/core/domain/model/drone"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/order"
)

// RoundTripDistance is the length of base -> destination -> base.
func RoundTripDistance(o *order.Order) int {
	return 2 * kernel.Base.Distance(o.Destination())
}

// IsFeasible reports whether d could ever carry o on its own: the package fits
// the payload and the single-order round trip fits the range.
//
// The check looks at one order in isolation. Cumulative payload is enforced by
// the packing strategy, and the combined multi-stop tour is not checked against
// range unless the TourRangeSelector is used.
func IsFeasible(d *drone.Drone, o *order.Order) bool {
	return o.Weight() <= d.MaxPayload() && float64(RoundTripDistance(o)) <= d.MaxDistance()
}
