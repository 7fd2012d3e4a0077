package snapshot

import (
	"errors"
	"fmt"
	"slices"

	"dronedelivery/internal/core/domain/model/drone"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/order"
	"dronedelivery/internal/pkg/errs"
)

// ErrSnapshotIsNotConstructed is returned when a Snapshot was not created through NewSnapshot.
var ErrSnapshotIsNotConstructed = errors.New("Snapshot must be created via NewSnapshot constructor")

// Snapshot is the fleet state and order backlog a planning run starts from.
// Fleet and backlog keep their input order; planning depends on it.
type Snapshot struct {
	grid          kernel.GridSize
	drones        []*drone.Drone
	orders        []*order.Order
	isConstructed bool
}

// NewSnapshot validates every entity and rejects duplicate identifiers within
// the fleet or within the backlog.
func NewSnapshot(grid kernel.GridSize, drones []*drone.Drone, orders []*order.Order) (*Snapshot, error) {
	var err error

	droneIDs := make(map[kernel.ID]int, len(drones))
	for i, d := range drones {
		if vErr := d.Validate(); vErr != nil {
			err = errors.Join(err, fmt.Errorf("drones.fleet[%d]: %w", i, vErr))
			continue
		}
		if prev, ok := droneIDs[d.ID()]; ok {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("drones.fleet[%d].id", i),
				fmt.Errorf("duplicate of drones.fleet[%d]", prev)))
			continue
		}
		droneIDs[d.ID()] = i
	}

	orderIDs := make(map[kernel.ID]int, len(orders))
	for i, o := range orders {
		if vErr := o.Validate(); vErr != nil {
			err = errors.Join(err, fmt.Errorf("orders[%d]: %w", i, vErr))
			continue
		}
		if prev, ok := orderIDs[o.ID()]; ok {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("orders[%d].id", i),
				fmt.Errorf("duplicate of orders[%d]", prev)))
			continue
		}
		orderIDs[o.ID()] = i
	}

	if err != nil {
		return nil, err
	}

	return &Snapshot{
		grid:          grid,
		drones:        slices.Clone(drones),
		orders:        slices.Clone(orders),
		isConstructed: true,
	}, nil
}

// Validate ensures the Snapshot was created through NewSnapshot.
func (s *Snapshot) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSnapshotIsNotConstructed
	}
	return nil
}

func (s *Snapshot) Grid() kernel.GridSize { return s.grid }

// Drones returns the fleet in input order.
func (s *Snapshot) Drones() []*drone.Drone { return slices.Clone(s.drones) }

// Orders returns the backlog in input order.
func (s *Snapshot) Orders() []*order.Order { return slices.Clone(s.orders) }
