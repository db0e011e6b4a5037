package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// BatchSummary describes one scan-and-dispatch pass.
type BatchSummary struct {
	RunID      string `json:"runId"`
	StartedAt  string `json:"startedAt,omitempty"`
	DurationMs int64  `json:"durationMs"`
	Scanned    int    `json:"scanned"`
	Delivered  int    `json:"delivered"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
	FailedPath string `json:"failedPath,omitempty"`
	Error      string `json:"error,omitempty"`
}

// DestinationStatus is a resolved destination channel.
type DestinationStatus struct {
	Category  string `json:"category"`
	Name      string `json:"name"`
	ChannelID string `json:"channelId"`
}

// SchedulerStatus summarizes scheduler execution state.
type SchedulerStatus struct {
	State           string        `json:"state"`
	IntervalSeconds int           `json:"intervalSeconds"`
	Batches         int           `json:"batches"`
	LastBatch       *BatchSummary `json:"lastBatch,omitempty"`
}

// DaemonStatus aggregates daemon runtime information for API consumers.
type DaemonStatus struct {
	Running       bool                `json:"running"`
	PID           int                 `json:"pid"`
	StartedAt     string              `json:"startedAt,omitempty"`
	ScreenshotDir string              `json:"screenshotDir"`
	LockFilePath  string              `json:"lockFilePath"`
	LedgerEntries int                 `json:"ledgerEntries"`
	Scheduler     SchedulerStatus     `json:"scheduler"`
	Destinations  []DestinationStatus `json:"destinations"`
}

// LedgerResponse lists delivered screenshot paths in delivery order.
type LedgerResponse struct {
	Count   int      `json:"count"`
	Entries []string `json:"entries"`
}

// ErrorResponse is the body of non-2xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
