// Package logging provides structured logging for the devicepanel project.
//
// Logging is built on go.uber.org/zap and is silent by default so that CLI
// output stays clean. Set the DEVICEPANEL_LOG_LEVEL environment variable to
// "debug", "info", "warn" or "error" to enable diagnostic output on stderr.
//
// Persist and removal failures against the console API are reported through
// this channel rather than surfaced as hard errors in the panel, so enabling
// debug logging is the first step when edits do not appear to stick.
package logging
