package services

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"dronedelivery/internal/core/domain/model/drone"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/order"
	"dronedelivery/internal/core/domain/model/plan"
)

// AssignmentEngine turns a fleet and a backlog into a Plan.
//
// Algorithm:
//   - Drones are ordered by max payload descending, then speed ascending; the sort is stable
//   - Unavailable drones are skipped without consuming anything
//   - Each remaining drone claims orders from the shared pool through the OrderSelector
//   - Claimed orders are sequenced by the RoutePlanner and recorded as an Assignment
//   - Whatever is left in the pool after the last drone becomes Plan.Unassigned
//
// Example usage:
//
//	engine := services.NewAssignmentEngine()
//	p, err := engine.Assign(drones, orders)
//	if err != nil {
//	    // unconstructed drone or order
//	}
//	for _, a := range p.Assignments() {
//	    fmt.Println(a.DroneID(), a.OrderIDs(), a.TotalDistance())
//	}
type AssignmentEngine struct {
	selector OrderSelector
	router   RoutePlanner
}

// EngineOption customizes an AssignmentEngine.
type EngineOption func(*AssignmentEngine)

// WithSelector replaces the packing strategy.
func WithSelector(s OrderSelector) EngineOption {
	return func(e *AssignmentEngine) {
		e.selector = s
	}
}

// WithRoutePlanner replaces the tour strategy.
func WithRoutePlanner(r RoutePlanner) EngineOption {
	return func(e *AssignmentEngine) {
		e.router = r
	}
}

// NewAssignmentEngine creates an engine with first-fit packing and
// nearest-neighbor routing unless options say otherwise.
func NewAssignmentEngine(opts ...EngineOption) AssignmentEngine {
	e := AssignmentEngine{
		selector: NewFirstFitSelector(),
		router:   NewNearestNeighborRoutePlanner(),
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Assign builds the plan. Empty fleets or backlogs yield an empty plan, and
// orders no drone can take are reported in Plan.Unassigned rather than as an error.
// The inputs are not modified.
func (e AssignmentEngine) Assign(drones []*drone.Drone, orders []*order.Order) (*plan.Plan, error) {
	if err := validateInputs(drones, orders); err != nil {
		return nil, err
	}

	fleet := SortFleet(drones)
	pool := NewOrderPool(orders)
	assignments := make([]plan.Assignment, 0)

	for _, d := range fleet {
		if pool.Len() == 0 {
			break
		}
		if !d.IsAvailable() {
			continue
		}

		accepted, err := pool.Claim(func(candidates []*order.Order) []*order.Order {
			return e.selector.Select(d, candidates)
		})
		if err != nil {
			return nil, fmt.Errorf("drone %s: %w", d.ID(), err)
		}
		if len(accepted) == 0 {
			continue
		}

		route := e.router.Route(accepted)
		assignment, err := plan.NewAssignment(d.ID(), orderIDs(route.Stops), route.Distance)
		if err != nil {
			return nil, fmt.Errorf("drone %s: %w", d.ID(), err)
		}
		assignments = append(assignments, assignment)
	}

	return plan.NewPlan(assignments, orderIDs(pool.Remaining()))
}

// SortFleet returns the drones in planning order: max payload descending, then
// speed ascending. Drones equal on both keep their input order.
func SortFleet(drones []*drone.Drone) []*drone.Drone {
	fleet := slices.Clone(drones)
	slices.SortStableFunc(fleet, func(a, b *drone.Drone) int {
		if c := cmp.Compare(b.MaxPayload(), a.MaxPayload()); c != 0 {
			return c
		}
		return cmp.Compare(a.Speed(), b.Speed())
	})
	return fleet
}

func validateInputs(drones []*drone.Drone, orders []*order.Order) error {
	var err error
	for i, d := range drones {
		if vErr := d.Validate(); vErr != nil {
			err = errors.Join(err, fmt.Errorf("drone %d: %w", i, vErr))
		}
	}
	for i, o := range orders {
		if vErr := o.Validate(); vErr != nil {
			err = errors.Join(err, fmt.Errorf("order %d: %w", i, vErr))
		}
	}
	return err
}

func orderIDs(orders []*order.Order) []kernel.ID {
	ids := make([]kernel.ID, len(orders))
	for i, o := range orders {
		ids[i] = o.ID()
	}
	return ids
}
