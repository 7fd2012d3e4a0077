package commands

import (
	"errors"
	"strings"

	"dronedelivery/internal/core/domain/model/plan"
	"dronedelivery/internal/core/domain/model/snapshot"
	"dronedelivery/internal/pkg/errs"
	"dronedelivery/internal/pkg/guard"
)

var ErrPersistPlanCommandIsNotConstructed = errors.New(
	"PersistPlanCommand must be created via NewPersistPlanCommand constructor",
)

// PersistPlanCommand stores a snapshot under a name together with the plan
// computed from it. Either both are stored or neither is.
type PersistPlanCommand struct {
	name     string
	snapshot *snapshot.Snapshot
	plan     *plan.Plan

	guard guard.ConstructorGuard
}

// NewPersistPlanCommand validates the name, the snapshot and the plan.
func NewPersistPlanCommand(name string, s *snapshot.Snapshot, p *plan.Plan) (PersistPlanCommand, error) {
	var err error
	if strings.TrimSpace(name) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("name"))
	}
	if vErr := s.Validate(); vErr != nil {
		err = errors.Join(err, vErr)
	}
	if p == nil {
		err = errors.Join(err, errs.NewValueIsRequiredError("plan"))
	}
	if err != nil {
		return PersistPlanCommand{}, err
	}

	return PersistPlanCommand{
		name:     name,
		snapshot: s,
		plan:     p,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PersistPlanCommand) Validate() error {
	return c.guard.Validate(ErrPersistPlanCommandIsNotConstructed)
}

func (c PersistPlanCommand) Name() string                 { return c.name }
func (c PersistPlanCommand) Snapshot() *snapshot.Snapshot { return c.snapshot }
func (c PersistPlanCommand) Plan() *plan.Plan             { return c.plan }
