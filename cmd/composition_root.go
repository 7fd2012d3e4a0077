package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"dronedelivery/internal/adapters/in/http"
	"dronedelivery/internal/adapters/out/filesystem"
	"dronedelivery/internal/adapters/out/metrics"
	"dronedelivery/internal/adapters/out/postgres"
	"dronedelivery/internal/core/application/usecases/commands"
	"dronedelivery/internal/core/application/usecases/queries"
	"dronedelivery/internal/core/domain/services"
	"dronedelivery/internal/core/ports"
	"dronedelivery/internal/jobs"

	"github.com/labstack/echo/v4"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// CompositionRoot wires adapters into use cases. gormDB is nil for runs that
// only touch files; the database-backed builders must not be called then.
type CompositionRoot struct {
	config     Config
	logger     *slog.Logger
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	metrics    *metrics.Recorder
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	root := CompositionRoot{
		config:  config,
		logger:  logger,
		gormDB:  gormDB,
		metrics: metrics.NewRecorder(),
	}
	if gormDB != nil {
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
	}
	return root
}

// OpenDatabase connects to the configured Postgres database.
func OpenDatabase(config Config) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

func (c *CompositionRoot) CreateAssignmentEngine() services.AssignmentEngine {
	if c.config.RangePolicy == RangePolicyTour {
		router := services.NewNearestNeighborRoutePlanner()
		return services.NewAssignmentEngine(
			services.WithSelector(services.NewTourRangeSelector(router)),
			services.WithRoutePlanner(router),
		)
	}
	return services.NewAssignmentEngine()
}

func (c *CompositionRoot) CreatePlanSnapshotCommandHandler(m ports.PlanMetrics) commands.PlanSnapshotCommandHandler {
	return commands.NewPlanSnapshotCommandHandler(c.CreateAssignmentEngine(), m, c.logger)
}

// CreateFilePlanBatchCommandHandler plans snapshot files into plan files.
// One-shot runs have nobody scraping metrics, so they are discarded.
func (c *CompositionRoot) CreateFilePlanBatchCommandHandler() commands.PlanBatchCommandHandler {
	m := metrics.Noop{}
	return commands.NewPlanBatchCommandHandler(
		filesystem.NewSnapshotFileReader(),
		filesystem.NewPlanFileWriter(),
		c.CreatePlanSnapshotCommandHandler(m),
		m,
		c.config.Concurrency,
		c.logger,
	)
}

// CreateStorePlanBatchCommandHandler plans stored snapshots and appends the
// plans to the database.
func (c *CompositionRoot) CreateStorePlanBatchCommandHandler() commands.PlanBatchCommandHandler {
	store := c.CreateStore()
	return commands.NewPlanBatchCommandHandler(
		store,
		store,
		c.CreatePlanSnapshotCommandHandler(c.metrics),
		c.metrics,
		c.config.Concurrency,
		c.logger,
	)
}

func (c *CompositionRoot) CreateImportSnapshotCommandHandler() commands.ImportSnapshotCommandHandler {
	var f commands.SnapshotUoWFactory = FuncSnapshotUoWFactory(func() commands.SnapshotUoW {
		return c.uowFactory.Create()
	})
	return commands.NewImportSnapshotCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreatePersistPlanCommandHandler() commands.PersistPlanCommandHandler {
	var f commands.PlanningUoWFactory = FuncPlanningUoWFactory(func() commands.PlanningUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPersistPlanCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateGetLatestPlanQueryHandler() queries.GetLatestPlanQueryHandler {
	return queries.NewGetLatestPlanQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSnapshotsQueryHandler() queries.GetSnapshotsQueryHandler {
	return queries.NewGetSnapshotsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateStore() *postgres.Store {
	return postgres.NewStore(c.uowFactory, c.logger)
}

func (c *CompositionRoot) CreateServer() *http.Server {
	return http.NewServer(
		c.CreatePlanSnapshotCommandHandler(c.metrics),
		c.CreatePersistPlanCommandHandler(),
		c.CreateGetLatestPlanQueryHandler(),
		c.CreateGetSnapshotsQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	return http.NewRouter(ctx, c.CreateServer(), c.metrics, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	job := jobs.NewPlanningJob(
		c.config.Schedule,
		c.config.Snapshots,
		c.CreateStore(),
		c.CreateStorePlanBatchCommandHandler(),
		c.logger,
	)
	return jobs.NewJobManager(job)
}

func (c *CompositionRoot) Migrate() error {
	return postgres.Migrate(c.gormDB)
}

type FuncSnapshotUoWFactory func() commands.SnapshotUoW

func (f FuncSnapshotUoWFactory) Create() commands.SnapshotUoW {
	return f()
}

type FuncPlanningUoWFactory func() commands.PlanningUoW

func (f FuncPlanningUoWFactory) Create() commands.PlanningUoW {
	return f()
}
