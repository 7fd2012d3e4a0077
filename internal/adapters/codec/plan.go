package codec

import (
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/plan"
)

// PlanDTO is the output artifact of a planning run. Unassigned orders are not
// part of the artifact.
type PlanDTO struct {
	Assignments []AssignmentDTO `json:"assignments" yaml:"assignments"`
}

// AssignmentDTO is one drone tour. ID is the drone id.
type AssignmentDTO struct {
	ID            IDValue   `json:"id"             yaml:"id"`
	Orders        []IDValue `json:"orders"         yaml:"orders"`
	TotalDistance int       `json:"total_distance" yaml:"total_distance"`
}

// PlanToDTO converts a plan. Assignments is never nil so an empty plan is
// written as {"assignments": []}.
func PlanToDTO(p *plan.Plan) PlanDTO {
	assignments := make([]AssignmentDTO, 0, len(p.Assignments()))
	for _, a := range p.Assignments() {
		assignments = append(assignments, NewAssignmentDTO(a.DroneID(), a.OrderIDs(), a.TotalDistance()))
	}
	return PlanDTO{Assignments: assignments}
}

// NewAssignmentDTO builds an assignment entry from raw parts, for read models
// that do not carry a domain plan.
func NewAssignmentDTO(droneID kernel.ID, orderIDs []kernel.ID, totalDistance int) AssignmentDTO {
	return AssignmentDTO{
		ID:            NewIDValue(droneID),
		Orders:        IDValues(orderIDs),
		TotalDistance: totalDistance,
	}
}

// IDValues wraps identifiers for encoding.
func IDValues(ids []kernel.ID) []IDValue {
	out := make([]IDValue, 0, len(ids))
	for _, id := range ids {
		out = append(out, NewIDValue(id))
	}
	return out
}
