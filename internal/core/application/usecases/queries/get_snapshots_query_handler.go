package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetSnapshotsQueryHandler lists stored snapshots with fleet, backlog and plan counts.
type GetSnapshotsQueryHandler struct {
	db *gorm.DB
}

func NewGetSnapshotsQueryHandler(db *gorm.DB) GetSnapshotsQueryHandler {
	return GetSnapshotsQueryHandler{db: db}
}

func (h GetSnapshotsQueryHandler) Handle(
	ctx context.Context,
	query GetSnapshotsQuery,
) ([]GetSnapshotsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	snapshots := make([]GetSnapshotsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.name,
			s.grid_width,
			s.grid_height,
			(SELECT COUNT(*) FROM drones d WHERE d.snapshot_name = s.name),
			(SELECT COUNT(*) FROM orders o WHERE o.snapshot_name = s.name),
			(SELECT COUNT(*) FROM plans p WHERE p.snapshot_name = s.name),
			s.created_at
		FROM snapshots s
		ORDER BY s.name
		LIMIT ?
	`, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s GetSnapshotsQueryResponse
		if err = rows.Scan(
			&s.Name,
			&s.GridWidth,
			&s.GridHeight,
			&s.Drones,
			&s.Orders,
			&s.Plans,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return snapshots, nil
}
