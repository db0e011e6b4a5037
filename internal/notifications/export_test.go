package notifications

import "time"

// SetClock replaces the clock used for failure deduplication.
func SetClock(svc Service, now func() time.Time) {
	if n, ok := svc.(*ntfyService); ok {
		n.now = now
	}
}
