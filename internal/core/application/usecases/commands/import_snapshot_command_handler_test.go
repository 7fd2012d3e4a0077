package commands_test

import (
	"errors"
	"testing"

	"dronedelivery/internal/core/application/usecases/commands"
	"dronedelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewImportSnapshotCommand(t *testing.T) {
	t.Run("should create command for named snapshot", func(t *testing.T) {
		s := testSnapshot(t)

		cmd, err := commands.NewImportSnapshotCommand("nightly", s)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "nightly", cmd.Name())
		assert.Same(t, s, cmd.Snapshot())
	})

	t.Run("should reject blank name and missing snapshot", func(t *testing.T) {
		_, err := commands.NewImportSnapshotCommand(" ", nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "Snapshot must be created")
	})

	t.Run("should fail validation for zero value", func(t *testing.T) {
		var cmd commands.ImportSnapshotCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrImportSnapshotCommandIsNotConstructed)
	})
}

func TestImportSnapshotCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	s := testSnapshot(t)
	cmd, _ := commands.NewImportSnapshotCommand("nightly", s)

	repo := new(MockSnapshotRepository)
	uow := new(MockSnapshotUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SnapshotRepository").Return(repo).Once(),
		repo.On("Save", ctx, "nightly", s).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockSnapshotUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewImportSnapshotCommandHandler(factory, discardLogger())
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestImportSnapshotCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockSnapshotUoWFactory)
	h := commands.NewImportSnapshotCommandHandler(factory, discardLogger())

	err := h.Handle(t.Context(), commands.ImportSnapshotCommand{})

	require.ErrorIs(t, err, commands.ErrImportSnapshotCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestImportSnapshotCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewImportSnapshotCommand("nightly", testSnapshot(t))

	uow := new(MockSnapshotUoW)
	factory := new(MockSnapshotUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewImportSnapshotCommandHandler(factory, discardLogger())
	err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
	uow.AssertExpectations(t)
}

func TestImportSnapshotCommandHandler_Handle_SaveError(t *testing.T) {
	ctx := t.Context()
	s := testSnapshot(t)
	cmd, _ := commands.NewImportSnapshotCommand("nightly", s)

	repo := new(MockSnapshotRepository)
	uow := new(MockSnapshotUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SnapshotRepository").Return(repo).Once(),
		repo.On("Save", ctx, "nightly", s).Return(errors.New("save error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockSnapshotUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewImportSnapshotCommandHandler(factory, discardLogger())
	err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "save error")
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertExpectations(t)
}

func TestImportSnapshotCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	s := testSnapshot(t)
	cmd, _ := commands.NewImportSnapshotCommand("nightly", s)

	repo := new(MockSnapshotRepository)
	uow := new(MockSnapshotUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SnapshotRepository").Return(repo).Once(),
		repo.On("Save", ctx, "nightly", s).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockSnapshotUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewImportSnapshotCommandHandler(factory, discardLogger())
	err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
	uow.AssertExpectations(t)
}
