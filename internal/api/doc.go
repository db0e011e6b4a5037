// Package api defines wire-format types for the status HTTP API and a small
// client used by the CLI.
//
// DaemonStatus reports whether the daemon is running, the scheduler state,
// the last batch, and the resolved destinations. LedgerResponse lists
// delivered screenshot paths.
//
// DTOs use camelCase JSON tags. Timestamps use RFC3339 with milliseconds.
package api
