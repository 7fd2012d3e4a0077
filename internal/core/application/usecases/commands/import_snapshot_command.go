package commands

import (
	"errors"
	"strings"

	"dronedelivery/internal/core/domain/model/snapshot"
	"dronedelivery/internal/pkg/errs"
	"dronedelivery/internal/pkg/guard"
)

var ErrImportSnapshotCommandIsNotConstructed = errors.New(
	"ImportSnapshotCommand must be created via NewImportSnapshotCommand constructor",
)

// ImportSnapshotCommand stores a snapshot under a name so scheduled runs and the
// HTTP API can plan it later.
//
// Example:
//
//	cmd, err := NewImportSnapshotCommand("nightly", s)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type ImportSnapshotCommand struct {
	name     string
	snapshot *snapshot.Snapshot

	guard guard.ConstructorGuard
}

// NewImportSnapshotCommand validates the name and the snapshot.
func NewImportSnapshotCommand(name string, s *snapshot.Snapshot) (ImportSnapshotCommand, error) {
	var err error
	if strings.TrimSpace(name) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("name"))
	}
	if vErr := s.Validate(); vErr != nil {
		err = errors.Join(err, vErr)
	}
	if err != nil {
		return ImportSnapshotCommand{}, err
	}

	return ImportSnapshotCommand{
		name:     name,
		snapshot: s,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ImportSnapshotCommand) Validate() error {
	return c.guard.Validate(ErrImportSnapshotCommandIsNotConstructed)
}

func (c ImportSnapshotCommand) Name() string                 { return c.name }
func (c ImportSnapshotCommand) Snapshot() *snapshot.Snapshot { return c.snapshot }
