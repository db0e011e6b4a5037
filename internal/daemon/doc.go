// Package daemon coordinates the long-running runeshot process.
//
// It wires configuration, the delivery ledger, destination resolution, the
// dispatcher, and the scheduler into a single lifecycle with flock-based
// locking so two processes never share one ledger. Startup initializes the
// ledger and ensures every destination channel exists before the first
// batch. The optional status API is served from here.
//
// Keep orchestration logic here: delivery steps live in their respective
// packages while the daemon focuses on startup, shutdown, and status.
package daemon
