// Package codec translates planning documents to and from the domain model.
//
// Snapshots are read from JSON or YAML in the shape
//
//	{"city": {"grid_size": {"width": 10, "height": 10}},
//	 "drones": {"fleet": [{"id": "D1", "max_payload": 10, "max_distance": 20, "speed": 1, "available": true}]},
//	 "orders": [{"id": "O1", "delivery_x": 2, "delivery_y": 3, "package_weight": 5}]}
//
// and every field is required. Validation failures name the offending field,
// e.g. drones.fleet[2].max_payload. Plans are written as
// {"assignments": [{"id": ..., "orders": [...], "total_distance": N}]}.
package codec

import (
	"errors"
	"fmt"
	"math"

	"dronedelivery/internal/core/domain/model/drone"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/order"
	"dronedelivery/internal/core/domain/model/snapshot"
)

// SnapshotDTO is the document form of a snapshot.
type SnapshotDTO struct {
	City   *CityDTO    `json:"city"   yaml:"city"`
	Drones *FleetDTO   `json:"drones" yaml:"drones"`
	Orders *[]OrderDTO `json:"orders" yaml:"orders"`
}

type CityDTO struct {
	GridSize *GridSizeDTO `json:"grid_size" yaml:"grid_size"`
}

type FleetDTO struct {
	Fleet *[]DroneDTO `json:"fleet" yaml:"fleet"`
}

type DroneDTO struct {
	ID          IDValue  `json:"id"           yaml:"id"`
	MaxPayload  *float64 `json:"max_payload"  yaml:"max_payload"`
	MaxDistance *float64 `json:"max_distance" yaml:"max_distance"`
	Speed       *float64 `json:"speed"        yaml:"speed"`
	Available   *bool    `json:"available"    yaml:"available"`
}

type OrderDTO struct {
	ID            IDValue  `json:"id"             yaml:"id"`
	DeliveryX     *float64 `json:"delivery_x"     yaml:"delivery_x"`
	DeliveryY     *float64 `json:"delivery_y"     yaml:"delivery_y"`
	PackageWeight *float64 `json:"package_weight" yaml:"package_weight"`
}

// SnapshotToDTO converts a snapshot to its document form.
func SnapshotToDTO(s *snapshot.Snapshot) SnapshotDTO {
	drones := make([]DroneDTO, 0, len(s.Drones()))
	for _, d := range s.Drones() {
		drones = append(drones, DroneDTO{
			ID:          NewIDValue(d.ID()),
			MaxPayload:  ptr(d.MaxPayload()),
			MaxDistance: ptr(d.MaxDistance()),
			Speed:       ptr(d.Speed()),
			Available:   ptr(d.IsAvailable()),
		})
	}

	orders := make([]OrderDTO, 0, len(s.Orders()))
	for _, o := range s.Orders() {
		orders = append(orders, OrderDTO{
			ID:            NewIDValue(o.ID()),
			DeliveryX:     ptr(float64(o.Destination().X())),
			DeliveryY:     ptr(float64(o.Destination().Y())),
			PackageWeight: ptr(o.Weight()),
		})
	}

	return SnapshotDTO{
		City:   &CityDTO{GridSize: &GridSizeDTO{Width: ptr(s.Grid().Width()), Height: ptr(s.Grid().Height())}},
		Drones: &FleetDTO{Fleet: &drones},
		Orders: &orders,
	}
}

// ToDomain validates the document and builds the snapshot. All field errors are
// reported together.
func (dto SnapshotDTO) ToDomain() (*snapshot.Snapshot, error) {
	var joined error

	var grid kernel.GridSize
	switch {
	case dto.City == nil:
		joined = errors.Join(joined, required("city"))
	case dto.City.GridSize == nil:
		joined = errors.Join(joined, required("city.grid_size"))
	default:
		g, err := dto.City.GridSize.toDomain("city.grid_size")
		joined = errors.Join(joined, err)
		grid = g
	}

	var drones []*drone.Drone
	switch {
	case dto.Drones == nil:
		joined = errors.Join(joined, required("drones"))
	case dto.Drones.Fleet == nil:
		joined = errors.Join(joined, required("drones.fleet"))
	default:
		drones = make([]*drone.Drone, 0, len(*dto.Drones.Fleet))
		for i, row := range *dto.Drones.Fleet {
			d, err := row.toDomain(fmt.Sprintf("drones.fleet[%d]", i))
			if err != nil {
				joined = errors.Join(joined, err)
				continue
			}
			drones = append(drones, d)
		}
	}

	var orders []*order.Order
	if dto.Orders == nil {
		joined = errors.Join(joined, required("orders"))
	} else {
		orders = make([]*order.Order, 0, len(*dto.Orders))
		for i, row := range *dto.Orders {
			o, err := row.toDomain(fmt.Sprintf("orders[%d]", i))
			if err != nil {
				joined = errors.Join(joined, err)
				continue
			}
			orders = append(orders, o)
		}
	}

	if joined != nil {
		return nil, joined
	}
	return snapshot.NewSnapshot(grid, drones, orders)
}

func (dto DroneDTO) toDomain(path string) (*drone.Drone, error) {
	id, err := dto.ID.ToDomain(path + ".id")
	if dto.MaxPayload == nil {
		err = errors.Join(err, required(path+".max_payload"))
	}
	if dto.MaxDistance == nil {
		err = errors.Join(err, required(path+".max_distance"))
	}
	if dto.Speed == nil {
		err = errors.Join(err, required(path+".speed"))
	}
	if dto.Available == nil {
		err = errors.Join(err, required(path+".available"))
	}
	if err != nil {
		return nil, err
	}

	d, err := drone.NewDrone(id, *dto.MaxPayload, *dto.MaxDistance, *dto.Speed, *dto.Available)
	if err != nil {
		return nil, fieldError(path, err)
	}
	return d, nil
}

func (dto OrderDTO) toDomain(path string) (*order.Order, error) {
	id, err := dto.ID.ToDomain(path + ".id")
	x, xErr := coordinate(path+".delivery_x", dto.DeliveryX)
	y, yErr := coordinate(path+".delivery_y", dto.DeliveryY)
	err = errors.Join(err, xErr, yErr)
	if dto.PackageWeight == nil {
		err = errors.Join(err, required(path+".package_weight"))
	}
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(id, kernel.NewPoint(x, y), *dto.PackageWeight)
	if err != nil {
		return nil, fieldError(path, err)
	}
	return o, nil
}

// coordinate accepts any whole number, so 2 and 2.0 both decode to cell 2.
func coordinate(path string, v *float64) (int, error) {
	switch {
	case v == nil:
		return 0, required(path)
	case math.IsNaN(*v) || math.IsInf(*v, 0):
		return 0, invalid(path, "must be finite")
	case *v != math.Trunc(*v):
		return 0, invalid(path, "must be a whole number")
	case *v > math.MaxInt32 || *v < math.MinInt32:
		return 0, invalid(path, "is too large")
	}
	return int(*v), nil
}

func ptr[T any](v T) *T {
	return &v
}
