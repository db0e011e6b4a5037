// Package dispatch delivers screenshots to their destinations.
//
// DispatchOne handles a single file: skip it if the ledger already has it,
// otherwise classify, resolve the destination, send, and record. RunBatch
// scans the screenshot directory and dispatches each file oldest first,
// stopping at the first failure so later files are retried on the next
// batch in their original order.
package dispatch
