// Package ui provides styled terminal output helpers for CLI commands:
// result boxes, a simple printer, and the typed confirmation prompt that
// gates destructive operations on the non-interactive path.
package ui
