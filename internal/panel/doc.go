// Package panel implements the device list reconciliation core: normalizing
// raw console records into uniform rows, classifying geolocation validity,
// the per-row edit session state machine, and copy-on-write row mutations.
//
// Everything in this package is pure data shaping with no I/O; the TUI layer
// owns the state and calls in here for every transition, so the invariants
// (single edit session, location/coordinate agreement, order-preserving
// removal) are enforced in one place and unit-testable without a terminal.
package panel
