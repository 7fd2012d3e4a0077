package order

import (
	"errors"
	"fmt"

	"dronedelivery/internal/core/domain/model/kernel"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is a single pending delivery: one package of a given weight to one grid point.
//
// Order follows these invariants:
//   - Must have a valid identifier
//   - Weight must be finite and non-negative
//   - Orders are atomic and never split across drones
//   - Can only be created through NewOrder
type Order struct {
	// id is the identifier from the snapshot
	id kernel.ID

	// destination is the delivery point
	destination kernel.Point

	// weight is the package weight
	weight float64

	// isConstructed ensures the order was created via NewOrder
	isConstructed bool
}

// NewOrder creates a new Order instance with validation.
//
// Parameters:
//   - id: identifier as read from the snapshot
//   - destination: delivery point on the grid
//   - weight: package weight (non-negative)
//
// Example:
//
//	o, err := order.NewOrder(kernel.MustNewID("O1"), kernel.NewPoint(2, 3), 5)
func NewOrder(id kernel.ID, destination kernel.Point, weight float64) (*Order, error) {
	o := &Order{
		destination:   destination,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setWeight(weight),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.ID {
	return o.id
}

// Destination returns the delivery point.
func (o *Order) Destination() kernel.Point {
	return o.destination
}

// Weight returns the package weight.
func (o *Order) Weight() float64 {
	return o.weight
}

// String implements fmt.Stringer for log output.
func (o *Order) String() string {
	return fmt.Sprintf("Order(%s to %s weight=%g)", o.id, o.destination, o.weight)
}

func (o *Order) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setWeight(weight float64) error {
	if err := kernel.CheckNonNegative("package_weight", weight); err != nil {
		return err
	}
	o.weight = weight
	return nil
}
