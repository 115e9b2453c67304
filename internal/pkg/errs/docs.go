// Package errs provides the error taxonomy of the ordering service.
//
// Every error type follows the same shape:
//   - a sentinel (ErrObjectNotFound, ErrInvalidTransition, ...) for errors.Is checks
//   - a struct carrying the details
//   - constructors with and without a cause
//   - Unwrap returning the sentinel
//
// The families map onto the lifecycle failures callers must tell apart:
// not found, validation (invalid, out of range, required), invalid transition,
// failed precondition and concurrent modification.
package errs
