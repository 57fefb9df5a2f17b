// Package api provides the HTTP and websocket client for the account
// console's device endpoints.
//
// This package implements the three external device services the panel
// consumes: fetching the account's device collection, persisting a row's
// edited fields, and removing a device. It also provides an optional
// websocket subscription to device-change events used for live refresh.
//
// # Error Taxonomy
//
// Every failure is reported as a *PanelError tagged with the operation that
// failed (OpFetch, OpPersist, OpRemoval) and a failure kind (network, auth,
// HTTP, parse, timeout). Fetch failures replace the panel's empty-state
// message; persist and removal failures are logged and surfaced as per-row
// indicators rather than propagated as exceptions.
//
// Retryable failures (timeouts, connection refusals, 5xx responses) are
// retried with exponential backoff before being reported.
package api
