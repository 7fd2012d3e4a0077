package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"dronedelivery/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

func required(path string) error {
	return errs.NewValueIsRequiredError(path)
}

func invalid(path, reason string) error {
	return errs.NewValueIsInvalidErrorWithCause(path, errors.New(reason))
}

// fieldError prefixes a domain validation error with the document path.
func fieldError(path string, err error) error {
	return fmt.Errorf("%s: %w", path, err)
}

// decodeError maps parser failures onto errs types. Type mismatches keep the
// dotted field path the JSON decoder reports.
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		path := typeErr.Field
		if path == "" {
			path = "snapshot"
		}
		return errs.NewValueIsInvalidErrorWithCause(path, err)
	}

	var yamlErr *yaml.TypeError
	if errors.As(err, &yamlErr) {
		return errs.NewValueIsInvalidErrorWithCause("snapshot", err)
	}

	if errors.Is(err, errs.ErrValueIsInvalid) || errors.Is(err, errs.ErrValueIsRequired) {
		return err
	}

	return errs.NewValueIsInvalidErrorWithCause("snapshot", err)
}
