package queries

import (
	"context"
	"database/sql"
	"errors"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetLatestPlanQueryHandler reads the newest plan of a snapshot. Plan ids are
// time-ordered, so ties on created_at fall back to the id.
type GetLatestPlanQueryHandler struct {
	db *gorm.DB
}

// NewGetLatestPlanQueryHandler creates the handler.
func NewGetLatestPlanQueryHandler(db *gorm.DB) GetLatestPlanQueryHandler {
	return GetLatestPlanQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when the snapshot has no stored plan.
func (h GetLatestPlanQueryHandler) Handle(
	ctx context.Context,
	query GetLatestPlanQuery,
) (*GetLatestPlanQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	resp := &GetLatestPlanQueryResponse{
		Assignments: make([]PlanAssignmentView, 0),
		Unassigned:  make([]kernel.ID, 0),
	}

	row := db.Raw(`
		SELECT
			id,
			snapshot_name,
			created_at,
			total_distance
		FROM plans
		WHERE snapshot_name = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, query.SnapshotName()).Row()
	if err := row.Scan(&resp.PlanID, &resp.SnapshotName, &resp.CreatedAt, &resp.TotalDistance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("plan", query.SnapshotName())
		}
		return nil, err
	}

	if err := h.loadAssignments(db, resp); err != nil {
		return nil, err
	}
	if err := h.loadOrders(db, resp); err != nil {
		return nil, err
	}

	return resp, nil
}

func (h GetLatestPlanQueryHandler) loadAssignments(db *gorm.DB, resp *GetLatestPlanQueryResponse) error {
	rows, err := db.Raw(`
		SELECT
			drone_id,
			drone_id_numeric,
			total_distance
		FROM plan_assignments
		WHERE plan_id = ?
		ORDER BY position
	`, resp.PlanID).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			droneID string
			numeric bool
			view    PlanAssignmentView
		)
		if err = rows.Scan(&droneID, &numeric, &view.TotalDistance); err != nil {
			return err
		}
		if view.DroneID, err = kernel.RestoreID(droneID, numeric); err != nil {
			return err
		}
		view.Orders = make([]kernel.ID, 0)
		resp.Assignments = append(resp.Assignments, view)
	}
	return rows.Err()
}

func (h GetLatestPlanQueryHandler) loadOrders(db *gorm.DB, resp *GetLatestPlanQueryResponse) error {
	rows, err := db.Raw(`
		SELECT
			assignment,
			order_id,
			order_id_numeric
		FROM plan_orders
		WHERE plan_id = ?
		ORDER BY position
	`, resp.PlanID).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			assignment sql.NullInt64
			orderID    string
			numeric    bool
		)
		if err = rows.Scan(&assignment, &orderID, &numeric); err != nil {
			return err
		}
		id, idErr := kernel.RestoreID(orderID, numeric)
		if idErr != nil {
			return idErr
		}

		if !assignment.Valid {
			resp.Unassigned = append(resp.Unassigned, id)
			continue
		}
		i := int(assignment.Int64)
		if i < 0 || i >= len(resp.Assignments) {
			return errs.NewValueIsOutOfRangeError("plan_orders.assignment", i, 0, len(resp.Assignments)-1)
		}
		resp.Assignments[i].Orders = append(resp.Assignments[i].Orders, id)
	}
	return rows.Err()
}

