// Package tui implements the interactive device panel.
//
// PanelModel is the top-level Bubble Tea model and the single owner of all
// panel state: the normalized row list, the derived invalid-location count,
// the per-row edit session, and the removal confirmation slot. External
// collaborators (device services, the event stream, the map surface) are
// consumed through interfaces and commands so the state machine itself
// stays synchronous and testable.
package tui
