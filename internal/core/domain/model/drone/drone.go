package drone

import (
	"errors"
	"fmt"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/pkg/guard"
)

// ErrDroneIsNotConstructed is returned when using a Drone that was not created through NewDrone.
var ErrDroneIsNotConstructed = errors.New("Drone must be created via NewDrone constructor")

// Drone is a fleet member as described by the input snapshot.
//
// A Drone is immutable for the duration of a planning run. Capacity consumed while
// packing orders is tracked by the packing strategy, never on the entity, so the
// same Drone value can be planned repeatedly with identical results.
//
// Business rules:
//   - Drone must have a non-blank identifier
//   - MaxPayload, MaxDistance and Speed must be finite and non-negative
//   - Unavailable drones are kept in the fleet but never receive orders
//
// Example usage:
//
//	d, err := drone.NewDrone(kernel.MustNewID("D1"), 10, 20, 1, true)
//	if err != nil {
//	    // malformed fleet record
//	}
type Drone struct {
	// id identifies the drone in the snapshot and in the plan output
	id kernel.ID
	// maxPayload is the total weight the drone can carry in one sortie
	maxPayload float64
	// maxDistance is the range limit, compared against each order's round trip
	maxDistance float64
	// speed only influences the order in which drones are considered
	speed float64
	// available marks drones that may be planned in this run
	available bool
	// guard ensures the drone was properly constructed
	guard guard.ConstructorGuard
}

// NewDrone creates a Drone, validating every field and reporting all problems at once.
//
// Parameters:
//   - id: identifier as read from the snapshot
//   - maxPayload: weight capacity (non-negative)
//   - maxDistance: range (non-negative)
//   - speed: travel speed (non-negative)
//   - available: whether the drone may take orders in this run
//
// Returns:
//   - *Drone: the constructed drone
//   - error: joined validation errors when any field is malformed
func NewDrone(id kernel.ID, maxPayload, maxDistance, speed float64, available bool) (*Drone, error) {
	d := &Drone{
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setMaxPayload(maxPayload),
		d.setMaxDistance(maxDistance),
		d.setSpeed(speed),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the Drone was created through NewDrone.
func (d *Drone) Validate() error {
	if d == nil {
		return ErrDroneIsNotConstructed
	}
	return d.guard.Validate(ErrDroneIsNotConstructed)
}

// IsEqual compares drones by identifier.
func (d *Drone) IsEqual(other *Drone) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the drone identifier.
func (d *Drone) ID() kernel.ID {
	return d.id
}

// MaxPayload returns the weight capacity.
func (d *Drone) MaxPayload() float64 {
	return d.maxPayload
}

// MaxDistance returns the range limit.
func (d *Drone) MaxDistance() float64 {
	return d.maxDistance
}

// Speed returns the travel speed.
func (d *Drone) Speed() float64 {
	return d.speed
}

// IsAvailable reports whether the drone may be planned.
func (d *Drone) IsAvailable() bool {
	return d.available
}

// String implements fmt.Stringer for log output.
func (d *Drone) String() string {
	return fmt.Sprintf("Drone(%s payload=%g range=%g speed=%g available=%t)",
		d.id, d.maxPayload, d.maxDistance, d.speed, d.available)
}

func (d *Drone) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Drone) setMaxPayload(v float64) error {
	if err := kernel.CheckNonNegative("max_payload", v); err != nil {
		return err
	}
	d.maxPayload = v
	return nil
}

func (d *Drone) setMaxDistance(v float64) error {
	if err := kernel.CheckNonNegative("max_distance", v); err != nil {
		return err
	}
	d.maxDistance = v
	return nil
}

func (d *Drone) setSpeed(v float64) error {
	if err := kernel.CheckNonNegative("speed", v); err != nil {
		return err
	}
	d.speed = v
	return nil
}
