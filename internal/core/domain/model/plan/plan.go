package plan

import (
	"errors"
	"fmt"
	"slices"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/pkg/errs"
	"dronedelivery/internal/pkg/guard"
)

var (
	// ErrAssignmentIsNotConstructed is returned when an Assignment was not created through NewAssignment.
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")
	// ErrOrderAssignedTwice is returned when a plan would contain the same order in two places.
	ErrOrderAssignedTwice = errors.New("order is assigned more than once")
)

// Assignment is one drone's share of the plan: the orders it delivers in
// visiting order and the length of the round trip from base.
type Assignment struct {
	droneID       kernel.ID
	orderIDs      []kernel.ID
	totalDistance int
	guard         guard.ConstructorGuard
}

// NewAssignment creates an Assignment. A drone with no orders gets no assignment,
// so an empty order list is rejected.
func NewAssignment(droneID kernel.ID, orderIDs []kernel.ID, totalDistance int) (Assignment, error) {
	if err := droneID.Validate(); err != nil {
		return Assignment{}, err
	}
	if len(orderIDs) == 0 {
		return Assignment{}, errs.NewValueIsRequiredError("orders")
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return Assignment{}, err
		}
	}
	if totalDistance < 0 {
		return Assignment{}, errs.NewValueIsOutOfRangeError("total_distance", totalDistance, 0, "unbounded")
	}

	return Assignment{
		droneID:       droneID,
		orderIDs:      slices.Clone(orderIDs),
		totalDistance: totalDistance,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Assignment was created through NewAssignment.
func (a Assignment) Validate() error {
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

// DroneID returns the drone that flies this assignment.
func (a Assignment) DroneID() kernel.ID {
	return a.droneID
}

// OrderIDs returns the orders in route order. The slice is a copy.
func (a Assignment) OrderIDs() []kernel.ID {
	return slices.Clone(a.orderIDs)
}

// TotalDistance returns the tour length base -> orders -> base.
func (a Assignment) TotalDistance() int {
	return a.totalDistance
}

// Plan is the complete output of one planning run.
type Plan struct {
	assignments []Assignment
	unassigned  []kernel.ID
}

// NewPlan validates that no order appears twice across assignments and the
// unassigned list, then builds the plan.
func NewPlan(assignments []Assignment, unassigned []kernel.ID) (*Plan, error) {
	seen := make(map[kernel.ID]string)
	mark := func(id kernel.ID, where string) error {
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s in %s and %s", ErrOrderAssignedTwice, id, prev, where)
		}
		seen[id] = where
		return nil
	}

	for _, a := range assignments {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		for _, id := range a.orderIDs {
			if err := mark(id, "drone "+a.droneID.String()); err != nil {
				return nil, err
			}
		}
	}
	for _, id := range unassigned {
		if err := mark(id, "unassigned"); err != nil {
			return nil, err
		}
	}

	return &Plan{
		assignments: slices.Clone(assignments),
		unassigned:  slices.Clone(unassigned),
	}, nil
}

// EmptyPlan returns a plan with no assignments and nothing left over.
func EmptyPlan() *Plan {
	return &Plan{}
}

// Assignments returns the per-drone entries in planning order.
func (p *Plan) Assignments() []Assignment {
	return slices.Clone(p.assignments)
}

// Unassigned returns the orders no drone could take, in backlog order.
func (p *Plan) Unassigned() []kernel.ID {
	return slices.Clone(p.unassigned)
}

// IsEmpty reports whether no drone received an order.
func (p *Plan) IsEmpty() bool {
	return len(p.assignments) == 0
}

// AssignedOrders counts orders placed on some drone.
func (p *Plan) AssignedOrders() int {
	n := 0
	for _, a := range p.assignments {
		n += len(a.orderIDs)
	}
	return n
}

// TotalDistance sums the tour lengths of every assignment.
func (p *Plan) TotalDistance() int {
	total := 0
	for _, a := range p.assignments {
		total += a.totalDistance
	}
	return total
}
