package api

import (
	"time"

	"runeshot/internal/destination"
	"runeshot/internal/dispatch"
)

// FromBatchResult converts a dispatcher result to its wire form.
func FromBatchResult(result dispatch.BatchResult) BatchSummary {
	return BatchSummary{
		RunID:      result.RunID,
		StartedAt:  formatTime(result.Started),
		DurationMs: result.Duration.Milliseconds(),
		Scanned:    result.Scanned,
		Delivered:  result.Delivered,
		Skipped:    result.Skipped,
		Failed:     result.Failed,
		FailedPath: result.FailedPath,
		Error:      result.Error(),
	}
}

// FromDestinations converts resolved destinations, preserving order.
func FromDestinations(dests []destination.Destination) []DestinationStatus {
	out := make([]DestinationStatus, 0, len(dests))
	for _, dest := range dests {
		out = append(out, DestinationStatus{
			Category:  dest.Category.String(),
			Name:      dest.Name,
			ChannelID: dest.ChannelID,
		})
	}
	return out
}

// FormatTime renders t in the API timestamp format.
func FormatTime(t time.Time) string { return formatTime(t) }

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}
