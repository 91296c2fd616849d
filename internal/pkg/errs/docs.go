// Package errs provides standardized error types for the routing application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - a sentinel error variable (e.g. ErrObjectNotFound)
//   - a struct type with fields for error details
//   - constructor functions with and without cause
//   - Error() for formatting and Unwrap() for classification via errors.Is
//
// Domain-specific sentinels (empty problem, solve failure, malformed
// geometry) live in their owning packages; errs covers the cross-cutting
// validation and lookup failures.
package errs
