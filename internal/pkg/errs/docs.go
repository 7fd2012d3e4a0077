// Package errs holds the typed errors shared by the domain, the codecs and the
// adapters of the planner.
//
// Every type pairs with a sentinel so callers can branch with errors.Is
// without knowing the concrete type:
//
//	ErrValueIsRequired   <- *ValueIsRequiredError   a field is absent
//	ErrValueIsInvalid    <- *ValueIsInvalidError    a field has the wrong shape or a duplicate id
//	ErrValueIsOutOfRange <- *ValueIsOutOfRangeError a number is outside [Min, Max]
//	ErrObjectNotFound    <- *ObjectNotFoundError    a snapshot, plan or file does not exist
//
// ParamName carries the field path of the offending value, e.g.
// "drones.fleet[2].max_payload", so a joined validation error lists every
// problem of a snapshot at once. The HTTP adapter maps the first three to 400
// and the last one to 404.
package errs
