// Package snapshotrepo maps planning snapshots to relational tables. A snapshot
// row owns its fleet and backlog rows; the position column keeps the original
// input order, which the planner depends on for tie breaking.
package snapshotrepo

import (
	"errors"
	"fmt"
	"time"

	"dronedelivery/internal/core/domain/model/drone"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/order"
	"dronedelivery/internal/core/domain/model/snapshot"
)

// SnapshotDTO represents the database structure for a named snapshot.
type SnapshotDTO struct {
	Name       string     `gorm:"type:varchar(255);primaryKey"`
	GridWidth  int        `gorm:"type:int;not null"`
	GridHeight int        `gorm:"type:int;not null"`
	CreatedAt  time.Time  `gorm:"not null"`
	Drones     []DroneDTO `gorm:"foreignKey:SnapshotName;references:Name;constraint:OnDelete:CASCADE"`
	Orders     []OrderDTO `gorm:"foreignKey:SnapshotName;references:Name;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default "snapshot_dtos".
func (SnapshotDTO) TableName() string {
	return "snapshots"
}

// DroneDTO is one fleet entry of a snapshot.
type DroneDTO struct {
	SnapshotName string  `gorm:"type:varchar(255);primaryKey"`
	Position     int     `gorm:"type:int;primaryKey"`
	ID           string  `gorm:"type:varchar(255);not null"`
	IDNumeric    bool    `gorm:"not null;default:false"`
	MaxPayload   float64 `gorm:"type:double precision;not null"`
	MaxDistance  float64 `gorm:"type:double precision;not null"`
	Speed        float64 `gorm:"type:double precision;not null"`
	Available    bool    `gorm:"not null"`
}

func (DroneDTO) TableName() string {
	return "drones"
}

// OrderDTO is one backlog entry of a snapshot.
type OrderDTO struct {
	SnapshotName string  `gorm:"type:varchar(255);primaryKey"`
	Position     int     `gorm:"type:int;primaryKey"`
	ID           string  `gorm:"type:varchar(255);not null"`
	IDNumeric    bool    `gorm:"not null;default:false"`
	DeliveryX    int     `gorm:"type:int;not null"`
	DeliveryY    int     `gorm:"type:int;not null"`
	Weight       float64 `gorm:"type:double precision;not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(name string, s *snapshot.Snapshot) SnapshotDTO {
	drones := s.Drones()
	droneDTOs := make([]DroneDTO, 0, len(drones))
	for i, d := range drones {
		droneDTOs = append(droneDTOs, DroneDTO{
			SnapshotName: name,
			Position:     i,
			ID:           d.ID().String(),
			IDNumeric:    d.ID().IsNumeric(),
			MaxPayload:   d.MaxPayload(),
			MaxDistance:  d.MaxDistance(),
			Speed:        d.Speed(),
			Available:    d.IsAvailable(),
		})
	}

	orders := s.Orders()
	orderDTOs := make([]OrderDTO, 0, len(orders))
	for i, o := range orders {
		orderDTOs = append(orderDTOs, OrderDTO{
			SnapshotName: name,
			Position:     i,
			ID:           o.ID().String(),
			IDNumeric:    o.ID().IsNumeric(),
			DeliveryX:    o.Destination().X(),
			DeliveryY:    o.Destination().Y(),
			Weight:       o.Weight(),
		})
	}

	return SnapshotDTO{
		Name:       name,
		GridWidth:  s.Grid().Width(),
		GridHeight: s.Grid().Height(),
		Drones:     droneDTOs,
		Orders:     orderDTOs,
	}
}

// toDomain rebuilds the snapshot through the domain constructors, so rows that
// were tampered with fail the same validation as file input.
func toDomain(dto SnapshotDTO) (*snapshot.Snapshot, error) {
	grid, err := kernel.NewGridSize(dto.GridWidth, dto.GridHeight)
	if err != nil {
		return nil, err
	}

	var joined error
	drones := make([]*drone.Drone, 0, len(dto.Drones))
	for _, row := range dto.Drones {
		d, dErr := droneToDomain(row)
		if dErr != nil {
			joined = errors.Join(joined, fmt.Errorf("drones[%d]: %w", row.Position, dErr))
			continue
		}
		drones = append(drones, d)
	}

	orders := make([]*order.Order, 0, len(dto.Orders))
	for _, row := range dto.Orders {
		o, oErr := orderToDomain(row)
		if oErr != nil {
			joined = errors.Join(joined, fmt.Errorf("orders[%d]: %w", row.Position, oErr))
			continue
		}
		orders = append(orders, o)
	}
	if joined != nil {
		return nil, joined
	}

	return snapshot.NewSnapshot(grid, drones, orders)
}

func droneToDomain(dto DroneDTO) (*drone.Drone, error) {
	id, err := kernel.RestoreID(dto.ID, dto.IDNumeric)
	if err != nil {
		return nil, err
	}
	return drone.NewDrone(id, dto.MaxPayload, dto.MaxDistance, dto.Speed, dto.Available)
}

func orderToDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.RestoreID(dto.ID, dto.IDNumeric)
	if err != nil {
		return nil, err
	}
	return order.NewOrder(id, kernel.NewPoint(dto.DeliveryX, dto.DeliveryY), dto.Weight)
}
