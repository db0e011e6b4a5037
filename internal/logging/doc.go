// Package logging assembles structured slog loggers and formatting helpers used
// across runeshot.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so batch code can tag every log
// line with the batch run ID. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits the same field names (component, event_type, error_hint, impact).
package logging
