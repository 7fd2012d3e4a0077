// Package postgres provides the GORM-based Unit of Work and the database-backed
// planning adapters.
//
// A unit of work hands out repositories bound to its transaction once Begin has
// been called, and to the plain connection otherwise:
//
//	uow := NewGormUnitOfWorkFactory(db).Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if _, err := uow.PlanRepository().Add(ctx, "nightly", p); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Each goroutine must use its own UnitOfWork; instances are not safe for
// concurrent use.
package postgres

import (
	"context"

	"dronedelivery/internal/adapters/out/postgres/planrepo"
	"dronedelivery/internal/adapters/out/postgres/snapshotrepo"
	"dronedelivery/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with no active transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across repositories.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts a transaction. Calling Begin again while one is active is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the active transaction.
// Returns gorm.ErrInvalidTransaction when there is none.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the active transaction.
// Returns gorm.ErrInvalidTransaction when there is none, which makes a deferred
// Rollback after a successful Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// SnapshotRepository returns a snapshot repository bound to the current transaction, if any.
func (uow *GormUnitOfWork) SnapshotRepository() ports.SnapshotRepository {
	return snapshotrepo.NewGormSnapshotRepository(uow.conn())
}

// PlanRepository returns a plan repository bound to the current transaction, if any.
func (uow *GormUnitOfWork) PlanRepository() ports.PlanRepository {
	return planrepo.NewGormPlanRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
