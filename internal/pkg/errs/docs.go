// Package errs provides the standardized error types shared by the fulfillment
// engine. Every type follows the same pattern:
//   - a sentinel error variable (e.g., ErrValueIsRequired) usable with errors.Is
//   - a struct carrying the error details
//   - constructors with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// The family covers missing, invalid and out-of-range values, missing objects,
// and actors that attempt to modify something they do not own (ErrNotAuthorized).
package errs
