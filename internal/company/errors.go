package company

import "fmt"

// InvalidIdentifierError is returned for a blank identifier or one that a
// provider does not recognize.
type InvalidIdentifierError struct {
	Identifier string
	Err        error
}

func (e *InvalidIdentifierError) Error() string {
	if e.Identifier == "" {
		return "invalid company identifier: empty"
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid company identifier %q: %v", e.Identifier, e.Err)
	}
	return fmt.Sprintf("invalid company identifier %q", e.Identifier)
}

func (e *InvalidIdentifierError) Unwrap() error { return e.Err }

// NotInitializedError is returned by accessors called before Populate
// has succeeded.
type NotInitializedError struct {
	Identifier string
	Operation  string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("company %s: %s requires a populated profile", e.Identifier, e.Operation)
}

// AlreadyPopulatedError is returned by a second Populate call.
type AlreadyPopulatedError struct {
	Identifier string
}

func (e *AlreadyPopulatedError) Error() string {
	return fmt.Sprintf("company %s is already populated", e.Identifier)
}
