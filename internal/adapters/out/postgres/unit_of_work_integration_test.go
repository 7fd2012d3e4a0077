package postgres_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	postgres_adapter "dronedelivery/internal/adapters/out/postgres"
	"dronedelivery/internal/core/application/usecases/commands"
	"dronedelivery/internal/core/domain/model/drone"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/order"
	"dronedelivery/internal/core/domain/model/plan"
	"dronedelivery/internal/core/domain/model/snapshot"
	"dronedelivery/internal/core/ports"
	"dronedelivery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM Unit of Work and the Store
// built on top of it against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest truncates all planner tables.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE drones, orders, snapshots, plan_orders, plan_assignments, plans").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.SnapshotRepository())
	suite.NotNil(uow1.PlanRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.SnapshotRepository().Save(ctx, "nightly", createTestSnapshot(suite)))
	_, err := uow.PlanRepository().Add(ctx, "nightly", createTestPlan(suite))
	suite.Require().NoError(err)

	_, err = uow.SnapshotRepository().Get(ctx, "nightly")
	suite.Require().NoError(err, "transaction should see its own snapshot")

	suite.Require().NoError(uow.Commit(ctx))

	restored, err := suite.factory.Create().SnapshotRepository().Get(ctx, "nightly")
	suite.Require().NoError(err)
	suite.Len(restored.Orders(), 2)
	suite.Equal(int64(1), suite.count("plans"))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsEverything() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.SnapshotRepository().Save(ctx, "nightly", createTestSnapshot(suite)))
	_, err := uow.PlanRepository().Add(ctx, "nightly", createTestPlan(suite))
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().SnapshotRepository().Get(ctx, "nightly")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Zero(suite.count("plans"))
	suite.Zero(suite.count("plan_orders"))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.SnapshotRepository().Save(ctx, "first", createTestSnapshot(suite)))
	suite.Require().NoError(uow2.SnapshotRepository().Save(ctx, "second", createTestSnapshot(suite)))

	_, err := uow1.SnapshotRepository().Get(ctx, "second")
	suite.Require().Error(err, "UOW1 should not see uncommitted snapshot of UOW2")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	names, err := suite.factory.Create().SnapshotRepository().Names(ctx)
	suite.Require().NoError(err)
	suite.Equal([]string{"first"}, names)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.SnapshotRepository().Save(ctx, "nightly", createTestSnapshot(suite)))

	_, err := suite.factory.Create().SnapshotRepository().Get(ctx, "nightly")
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestStore_ReadAndWriteBySnapshotName() {
	ctx := context.Background()
	store := postgres_adapter.NewStore(suite.factory, slog.New(slog.NewTextHandler(io.Discard, nil)))
	suite.Require().NoError(suite.factory.Create().SnapshotRepository().Save(ctx, "nightly", createTestSnapshot(suite)))

	s, err := store.Read(ctx, "nightly")
	suite.Require().NoError(err)
	suite.Len(s.Drones(), 1)

	suite.Require().NoError(store.Write(ctx, "nightly", createTestPlan(suite)))
	suite.Require().NoError(store.Write(ctx, "nightly", createTestPlan(suite)))
	suite.Equal(int64(2), suite.count("plans"))

	names, err := store.Names(ctx)
	suite.Require().NoError(err)
	suite.Equal([]string{"nightly"}, names)

	_, err = store.Read(ctx, "missing")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

type planningUoWFactory struct{ factory ports.UnitOfWorkFactory }

func (f planningUoWFactory) Create() commands.PlanningUoW { return f.factory.Create() }

func (suite *UnitOfWorkIntegrationTestSuite) TestPersistPlan_FailedPlanWriteKeepsStoredSnapshot() {
	ctx := context.Background()
	suite.Require().NoError(suite.factory.Create().SnapshotRepository().Save(ctx, "nightly", createTestSnapshot(suite)))

	grid, err := kernel.NewGridSize(5, 5)
	suite.Require().NoError(err)
	d, err := drone.NewDrone(kernel.MustNewID("D9"), 1, 1, 1, true)
	suite.Require().NoError(err)
	replacement, err := snapshot.NewSnapshot(grid, []*drone.Drone{d}, nil)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.db.Exec("ALTER TABLE plans RENAME TO plans_offline").Error)
	defer func() {
		suite.Require().NoError(suite.db.Exec("ALTER TABLE plans_offline RENAME TO plans").Error)
	}()

	handler := commands.NewPersistPlanCommandHandler(
		planningUoWFactory{factory: suite.factory}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	cmd, err := commands.NewPersistPlanCommand("nightly", replacement, plan.EmptyPlan())
	suite.Require().NoError(err)

	_, err = handler.Handle(ctx, cmd)
	suite.Require().Error(err)

	stored, err := suite.factory.Create().SnapshotRepository().Get(ctx, "nightly")
	suite.Require().NoError(err)
	suite.Equal(10, stored.Grid().Width())
	suite.Len(stored.Orders(), 2)
	suite.Equal("D1", stored.Drones()[0].ID().String())
}

func (suite *UnitOfWorkIntegrationTestSuite) count(table string) int64 {
	var n int64
	suite.Require().NoError(suite.db.Table(table).Count(&n).Error)
	return n
}

func createTestSnapshot(suite *UnitOfWorkIntegrationTestSuite) *snapshot.Snapshot {
	grid, err := kernel.NewGridSize(10, 10)
	suite.Require().NoError(err)
	d, err := drone.NewDrone(kernel.MustNewID("D1"), 10, 20, 1, true)
	suite.Require().NoError(err)
	o1, err := order.NewOrder(kernel.MustNewID("O1"), kernel.NewPoint(2, 3), 5)
	suite.Require().NoError(err)
	o2, err := order.NewOrder(kernel.MustNewID("O2"), kernel.NewPoint(9, 9), 1)
	suite.Require().NoError(err)
	s, err := snapshot.NewSnapshot(grid, []*drone.Drone{d}, []*order.Order{o1, o2})
	suite.Require().NoError(err)
	return s
}

func createTestPlan(suite *UnitOfWorkIntegrationTestSuite) *plan.Plan {
	a, err := plan.NewAssignment(kernel.MustNewID("D1"), []kernel.ID{kernel.MustNewID("O1")}, 10)
	suite.Require().NoError(err)
	p, err := plan.NewPlan([]plan.Assignment{a}, []kernel.ID{kernel.MustNewID("O2")})
	suite.Require().NoError(err)
	return p
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
