package commands_test

import (
	"errors"
	"testing"

	"dronedelivery/internal/core/application/usecases/commands"
	"dronedelivery/internal/core/domain/model/plan"
	"dronedelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewPersistPlanCommand(t *testing.T) {
	t.Run("should create command for named snapshot and plan", func(t *testing.T) {
		s := testSnapshot(t)
		p := plan.EmptyPlan()

		cmd, err := commands.NewPersistPlanCommand("nightly", s, p)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "nightly", cmd.Name())
		assert.Same(t, s, cmd.Snapshot())
		assert.Same(t, p, cmd.Plan())
	})

	t.Run("should reject blank name, missing snapshot and missing plan", func(t *testing.T) {
		_, err := commands.NewPersistPlanCommand("", nil, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "value is required: name")
		assert.Contains(t, err.Error(), "value is required: plan")
		assert.Contains(t, err.Error(), "Snapshot must be created")
	})

	t.Run("should fail validation for zero value", func(t *testing.T) {
		var cmd commands.PersistPlanCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrPersistPlanCommandIsNotConstructed)
	})
}

func TestPersistPlanCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	s := testSnapshot(t)
	p := plan.EmptyPlan()
	cmd, _ := commands.NewPersistPlanCommand("nightly", s, p)
	planID := uuid.MustParse("01920000-0000-7000-8000-000000000001")

	snapshots := new(MockSnapshotRepository)
	plans := new(MockPlanRepository)
	uow := new(MockPlanningUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SnapshotRepository").Return(snapshots).Once(),
		snapshots.On("Save", ctx, "nightly", s).Return(nil).Once(),
		uow.On("PlanRepository").Return(plans).Once(),
		plans.On("Add", ctx, "nightly", p).Return(planID, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockPlanningUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPersistPlanCommandHandler(factory, discardLogger())
	id, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, planID, id)
	snapshots.AssertExpectations(t)
	plans.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPersistPlanCommandHandler_Handle_PlanErrorRollsBackSnapshot(t *testing.T) {
	ctx := t.Context()
	s := testSnapshot(t)
	p := plan.EmptyPlan()
	cmd, _ := commands.NewPersistPlanCommand("nightly", s, p)

	snapshots := new(MockSnapshotRepository)
	plans := new(MockPlanRepository)
	uow := new(MockPlanningUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SnapshotRepository").Return(snapshots).Once(),
		snapshots.On("Save", ctx, "nightly", s).Return(nil).Once(),
		uow.On("PlanRepository").Return(plans).Once(),
		plans.On("Add", ctx, "nightly", p).Return(uuid.Nil, errors.New("disk full")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockPlanningUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPersistPlanCommandHandler(factory, discardLogger())
	id, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "disk full")
	assert.Equal(t, uuid.Nil, id)
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertExpectations(t)
}

func TestPersistPlanCommandHandler_Handle_SaveError(t *testing.T) {
	ctx := t.Context()
	s := testSnapshot(t)
	cmd, _ := commands.NewPersistPlanCommand("nightly", s, plan.EmptyPlan())

	snapshots := new(MockSnapshotRepository)
	uow := new(MockPlanningUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SnapshotRepository").Return(snapshots).Once(),
		snapshots.On("Save", ctx, "nightly", s).Return(errors.New("save error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockPlanningUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPersistPlanCommandHandler(factory, discardLogger())
	_, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "save error")
	uow.AssertNotCalled(t, "PlanRepository")
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertExpectations(t)
}

func TestPersistPlanCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockPlanningUoWFactory)
	h := commands.NewPersistPlanCommandHandler(factory, discardLogger())

	_, err := h.Handle(t.Context(), commands.PersistPlanCommand{})

	require.ErrorIs(t, err, commands.ErrPersistPlanCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
