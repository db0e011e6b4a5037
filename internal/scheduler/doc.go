// Package scheduler runs delivery batches on a fixed interval.
//
// A Scheduler is Idle between batches and Running while one executes. Ticks
// that arrive while a batch is running are dropped rather than queued. In
// one-shot mode the scheduler runs a single batch, waits a short grace
// period so in-flight uploads settle, and moves to the terminal Stopped
// state.
package scheduler
