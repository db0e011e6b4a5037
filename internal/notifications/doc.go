// Package notifications delivers operator alerts via ntfy.
//
// Alerts cover batch deliveries (opt-in), send failures, startup failures,
// and a manual test message. When no ntfy topic is configured the service is
// a no-op. Send-failure alerts are deduplicated per screenshot path so a file
// stuck behind a persistent error alerts once per window rather than every
// batch.
package notifications
