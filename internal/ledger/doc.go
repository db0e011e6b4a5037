// Package ledger persists the set of screenshots that have already been
// delivered so restarts never post the same file twice.
//
// The Ledger is append-only: ids are added by Record after a successful send
// and never removed. Storage goes through a Backend that exposes a single
// keyed record with exists/get/set semantics; the default Backend is a SQLite
// file under the data directory, with PostgreSQL and in-memory backends
// selectable by DSN.
//
// Read-modify-write in Record is not atomic across concurrent callers. The
// scheduler runs at most one batch at a time and the daemon holds a process
// lock, so there is only ever one writer.
package ledger
