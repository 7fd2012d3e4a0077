package kernel

import (
	"math"
	"strconv"
	"strings"

	"dronedelivery/internal/pkg/errs"
	"dronedelivery/internal/pkg/guard"
)

// ErrIDIsNotConstructed is returned when an ID was not created through NewID or NewNumericID.
var ErrIDIsNotConstructed = errs.NewValueIsRequiredError("id must be created via NewID or NewNumericID constructors")

// ID identifies a drone or an order exactly as it appeared in the input snapshot.
// Snapshots may carry identifiers as strings ("D1") or as numbers (7); the form is
// remembered so that writers can emit the identifier the way it was read.
type ID struct { //nolint:recvcheck //using for validation
	value   string
	numeric bool
	guard   guard.ConstructorGuard
}

// NewID creates a textual identifier. Blank values are rejected.
func NewID(value string) (ID, error) {
	if strings.TrimSpace(value) == "" {
		return ID{}, errs.NewValueIsRequiredError("id")
	}

	return ID{value: value, guard: guard.NewConstructorGuard()}, nil
}

// NewNumericID creates an identifier that was written as a number in the input.
// The literal text is kept verbatim so 7 and 7.0 stay distinct.
func NewNumericID(literal string) (ID, error) {
	if literal == "" {
		return ID{}, errs.NewValueIsRequiredError("id")
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ID{}, errs.NewValueIsInvalidError("id")
	}

	return ID{value: literal, numeric: true, guard: guard.NewConstructorGuard()}, nil
}

// MustNewID is NewID for literals known to be valid, mostly in tests.
func MustNewID(value string) ID {
	id, err := NewID(value)
	if err != nil {
		panic(err)
	}
	return id
}

// Validate reports whether the ID was built by a constructor.
func (id ID) Validate() error {
	return id.guard.Validate(ErrIDIsNotConstructed)
}

// String returns the identifier text.
func (id ID) String() string {
	return id.value
}

// IsNumeric reports whether the identifier was a JSON/YAML number in the input.
func (id ID) IsNumeric() bool {
	return id.numeric
}

// IsEqual compares two identifiers by text and form.
func (id ID) IsEqual(other ID) bool {
	return id.value == other.value && id.numeric == other.numeric
}

// RestoreID rebuilds an identifier from its persisted text and form.
func RestoreID(value string, numeric bool) (ID, error) {
	if numeric {
		return NewNumericID(value)
	}
	return NewID(value)
}
