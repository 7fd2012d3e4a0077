package postgres

import (
	"dronedelivery/internal/adapters/out/postgres/planrepo"
	"dronedelivery/internal/adapters/out/postgres/snapshotrepo"

	"gorm.io/gorm"
)

// Models lists every table owned by the planner in creation order.
func Models() []any {
	return []any{
		&snapshotrepo.SnapshotDTO{},
		&snapshotrepo.DroneDTO{},
		&snapshotrepo.OrderDTO{},
		&planrepo.PlanDTO{},
		&planrepo.AssignmentDTO{},
		&planrepo.PlanOrderDTO{},
	}
}

// Migrate creates or updates the planner schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
