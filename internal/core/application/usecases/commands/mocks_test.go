package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"dronedelivery/internal/core/application/usecases/commands"
	"dronedelivery/internal/core/domain/model/drone"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/order"
	"dronedelivery/internal/core/domain/model/plan"
	"dronedelivery/internal/core/domain/model/snapshot"
	"dronedelivery/internal/core/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSnapshotRepository struct{ mock.Mock }

func (m *MockSnapshotRepository) Save(ctx context.Context, name string, s *snapshot.Snapshot) error {
	args := m.Called(ctx, name, s)
	return args.Error(0)
}

func (m *MockSnapshotRepository) Get(ctx context.Context, name string) (*snapshot.Snapshot, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*snapshot.Snapshot), args.Error(1)
}

func (m *MockSnapshotRepository) Names(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockSnapshotUoW struct{ mock.Mock }

func (m *MockSnapshotUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSnapshotUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSnapshotUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSnapshotUoW) SnapshotRepository() ports.SnapshotRepository {
	args := m.Called()
	return args.Get(0).(ports.SnapshotRepository)
}

type MockSnapshotUoWFactory struct{ mock.Mock }

func (m *MockSnapshotUoWFactory) Create() commands.SnapshotUoW {
	args := m.Called()
	return args.Get(0).(commands.SnapshotUoW)
}

type MockPlanRepository struct{ mock.Mock }

func (m *MockPlanRepository) Add(ctx context.Context, snapshotName string, p *plan.Plan) (uuid.UUID, error) {
	args := m.Called(ctx, snapshotName, p)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type MockPlanningUoW struct{ mock.Mock }

func (m *MockPlanningUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlanningUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlanningUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlanningUoW) SnapshotRepository() ports.SnapshotRepository {
	args := m.Called()
	return args.Get(0).(ports.SnapshotRepository)
}

func (m *MockPlanningUoW) PlanRepository() ports.PlanRepository {
	args := m.Called()
	return args.Get(0).(ports.PlanRepository)
}

type MockPlanningUoWFactory struct{ mock.Mock }

func (m *MockPlanningUoWFactory) Create() commands.PlanningUoW {
	args := m.Called()
	return args.Get(0).(commands.PlanningUoW)
}

type MockSnapshotReader struct{ mock.Mock }

func (m *MockSnapshotReader) Read(ctx context.Context, location string) (*snapshot.Snapshot, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*snapshot.Snapshot), args.Error(1)
}

type MockPlanWriter struct{ mock.Mock }

func (m *MockPlanWriter) Write(ctx context.Context, location string, p *plan.Plan) error {
	args := m.Called(ctx, location, p)
	return args.Error(0)
}

type MockPlanMetrics struct{ mock.Mock }

func (m *MockPlanMetrics) ObservePlan(p *plan.Plan, elapsed time.Duration) {
	m.Called(p, elapsed)
}

func (m *MockPlanMetrics) ObserveFailure(stage string) {
	m.Called(stage)
}

type MockPlanner struct{ mock.Mock }

func (m *MockPlanner) Assign(drones []*drone.Drone, orders []*order.Order) (*plan.Plan, error) {
	args := m.Called(drones, orders)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plan.Plan), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSnapshot(t *testing.T) *snapshot.Snapshot {
	t.Helper()
	grid, err := kernel.NewGridSize(10, 10)
	require.NoError(t, err)
	d, err := drone.NewDrone(kernel.MustNewID("D1"), 10, 20, 1, true)
	require.NoError(t, err)
	o1, err := order.NewOrder(kernel.MustNewID("O1"), kernel.NewPoint(2, 3), 5)
	require.NoError(t, err)
	o2, err := order.NewOrder(kernel.MustNewID("O2"), kernel.NewPoint(9, 9), 1)
	require.NoError(t, err)
	s, err := snapshot.NewSnapshot(grid, []*drone.Drone{d}, []*order.Order{o1, o2})
	require.NoError(t, err)
	return s
}
