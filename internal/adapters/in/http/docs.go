// Package http is the inbound REST adapter built on echo.
//
// Client routes live under /api/v1 and act as CLIENT; admin routes under
// /api/v1/admin act as ADMIN. Every command response re-reads the order, so
// the body always reflects the committed state including the new version.
//
// Requests under /api are validated against the embedded OpenAPI document
// before reaching a handler. Errors map as follows:
//
//	ObjectNotFound                               404
//	ValueIsInvalid, ValueIsRequired, OutOfRange  400
//	InvalidTransition, ConcurrentModification    409
//	PreconditionFailed                           422
//	anything else                                500 (logged, message hidden)
package http
