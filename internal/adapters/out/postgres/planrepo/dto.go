// Package planrepo stores computed plans. Plans are append-only: every planning
// run of a snapshot adds a new plan row with its assignments and order rows.
package planrepo

import (
	"time"

	"dronedelivery/internal/core/domain/model/plan"

	"github.com/google/uuid"
)

// PlanDTO is the header row of a persisted plan.
type PlanDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SnapshotName  string          `gorm:"type:varchar(255);not null;index"`
	CreatedAt     time.Time       `gorm:"not null;index"`
	TotalDistance int             `gorm:"type:int;not null"`
	Assignments   []AssignmentDTO `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
	Orders        []PlanOrderDTO  `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
}

func (PlanDTO) TableName() string {
	return "plans"
}

// AssignmentDTO is one drone's tour within a plan.
type AssignmentDTO struct {
	PlanID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position       int       `gorm:"type:int;primaryKey"`
	DroneID        string    `gorm:"type:varchar(255);not null"`
	DroneIDNumeric bool      `gorm:"not null;default:false"`
	TotalDistance  int       `gorm:"type:int;not null"`
}

func (AssignmentDTO) TableName() string {
	return "plan_assignments"
}

// PlanOrderDTO places one order of a plan. Assignment is the position of the
// owning assignment, or NULL for orders no drone took.
type PlanOrderDTO struct {
	PlanID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position       int       `gorm:"type:int;primaryKey"`
	Assignment     *int      `gorm:"type:int;index"`
	OrderID        string    `gorm:"type:varchar(255);not null"`
	OrderIDNumeric bool      `gorm:"not null;default:false"`
}

func (PlanOrderDTO) TableName() string {
	return "plan_orders"
}

func fromDomain(id uuid.UUID, snapshotName string, p *plan.Plan, createdAt time.Time) PlanDTO {
	assignments := p.Assignments()
	assignmentDTOs := make([]AssignmentDTO, 0, len(assignments))
	orderDTOs := make([]PlanOrderDTO, 0, p.AssignedOrders()+len(p.Unassigned()))

	for i, a := range assignments {
		assignmentDTOs = append(assignmentDTOs, AssignmentDTO{
			PlanID:         id,
			Position:       i,
			DroneID:        a.DroneID().String(),
			DroneIDNumeric: a.DroneID().IsNumeric(),
			TotalDistance:  a.TotalDistance(),
		})
		for _, orderID := range a.OrderIDs() {
			orderDTOs = append(orderDTOs, PlanOrderDTO{
				PlanID:         id,
				Position:       len(orderDTOs),
				Assignment:     &i,
				OrderID:        orderID.String(),
				OrderIDNumeric: orderID.IsNumeric(),
			})
		}
	}
	for _, orderID := range p.Unassigned() {
		orderDTOs = append(orderDTOs, PlanOrderDTO{
			PlanID:         id,
			Position:       len(orderDTOs),
			OrderID:        orderID.String(),
			OrderIDNumeric: orderID.IsNumeric(),
		})
	}

	return PlanDTO{
		ID:            id,
		SnapshotName:  snapshotName,
		CreatedAt:     createdAt,
		TotalDistance: p.TotalDistance(),
		Assignments:   assignmentDTOs,
		Orders:        orderDTOs,
	}
}
