package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"dronedelivery/internal/pkg/errs"
	"dronedelivery/internal/pkg/guard"
)

var ErrPlanBatchCommandIsNotConstructed = errors.New(
	"PlanBatchCommand must be created via NewPlanBatchCommand constructor",
)

// Pair names where one run reads its snapshot and where it writes the plan.
type Pair struct {
	Input  string
	Output string
}

// DerivePair builds the output location for input by replacing "input" with
// "output" in its base name, e.g. cases/input_1.json -> cases/output_1.json.
// Inputs whose base name lacks "input" get an "output_" prefix instead so the
// input is never overwritten.
func DerivePair(input string) Pair {
	dir, base := filepath.Split(input)
	out := strings.ReplaceAll(base, "input", "output")
	if out == base {
		out = "output_" + base
	}
	return Pair{Input: input, Output: dir + out}
}

// PlanBatchCommand plans several independent snapshots.
type PlanBatchCommand struct {
	pairs []Pair

	guard guard.ConstructorGuard
}

// NewPlanBatchCommand validates that there is at least one pair, that every pair
// has both locations, and that no two pairs write to the same output.
func NewPlanBatchCommand(pairs []Pair) (PlanBatchCommand, error) {
	if len(pairs) == 0 {
		return PlanBatchCommand{}, errs.NewValueIsRequiredError("pairs")
	}

	var err error
	outputs := make(map[string]int, len(pairs))
	for i, p := range pairs {
		if strings.TrimSpace(p.Input) == "" {
			err = errors.Join(err, errs.NewValueIsRequiredError(fmt.Sprintf("pairs[%d].input", i)))
		}
		if strings.TrimSpace(p.Output) == "" {
			err = errors.Join(err, errs.NewValueIsRequiredError(fmt.Sprintf("pairs[%d].output", i)))
			continue
		}
		if prev, ok := outputs[p.Output]; ok {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("pairs[%d].output", i), fmt.Errorf("same output as pairs[%d]", prev)))
		}
		outputs[p.Output] = i
	}
	if err != nil {
		return PlanBatchCommand{}, err
	}

	return PlanBatchCommand{
		pairs: append([]Pair(nil), pairs...),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PlanBatchCommand) Validate() error {
	return c.guard.Validate(ErrPlanBatchCommandIsNotConstructed)
}

// Pairs returns a copy of the pairs in command order.
func (c PlanBatchCommand) Pairs() []Pair {
	return append([]Pair(nil), c.pairs...)
}
