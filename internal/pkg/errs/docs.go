// Package errs provides standardized error types for the dispatch service.
// Domain constructors, repositories and use cases build their failures from
// these types so callers can classify them with errors.Is and errors.As.
//
// The package includes:
//   - ValueIsRequiredError: a mandatory value is missing or blank
//   - ValueIsInvalidError: a value is present but unusable
//   - ValueIsOutOfRangeError: a numeric value lies outside its bounds
//   - ObjectNotFoundError: a looked-up object does not exist
//
// Each error type follows the same shape:
//   - a sentinel error variable (e.g., ErrValueIsRequired)
//   - a struct type carrying the details
//   - constructors with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
package errs
