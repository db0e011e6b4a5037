package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"runeshot/internal/config"
)

const userAgent = "runeshot/0.1.0"

// scanFailureKey dedups scan alerts alongside per-path send alerts.
const scanFailureKey = "\x00scan"

// Service defines the notification surface exposed to the daemon.
type Service interface {
	NotifyBatchCompleted(ctx context.Context, delivered, skipped int, duration time.Duration) error
	NotifySendFailure(ctx context.Context, path string, err error) error
	NotifyScanFailure(ctx context.Context, err error) error
	NotifyStartupFailure(ctx context.Context, err error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:    topic,
		client:      &http.Client{Timeout: timeout},
		batch:       cfg.Notifications.Batch,
		failures:    cfg.Notifications.Failures,
		dedupWindow: time.Duration(cfg.Notifications.DedupWindowSeconds) * time.Second,
		lastFailure: make(map[string]time.Time),
		now:         time.Now,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	batch    bool
	failures bool

	dedupWindow time.Duration
	mu          sync.Mutex
	lastFailure map[string]time.Time
	now         func() time.Time
}

func (n *ntfyService) NotifyBatchCompleted(ctx context.Context, delivered, skipped int, duration time.Duration) error {
	if !n.batch || delivered == 0 {
		return nil
	}
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	noun := "screenshots"
	if delivered == 1 {
		noun = "screenshot"
	}
	data := payload{
		title:   "runeshot - Posted",
		message: fmt.Sprintf("📸 Posted %d %s (%d already posted) in %s", delivered, noun, skipped, duration),
		tags:    []string{"runeshot", "batch", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifySendFailure(ctx context.Context, path string, err error) error {
	if !n.failures || !n.shouldAlert(path) {
		return nil
	}
	reason := "unknown"
	if err != nil {
		reason = strings.TrimSpace(err.Error())
	}
	data := payload{
		title:    "runeshot - Delivery Failed",
		message:  fmt.Sprintf("❌ Could not post %s: %s\nWill retry on the next scan", filepath.Base(path), reason),
		tags:     []string{"runeshot", "error", "delivery"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyScanFailure(ctx context.Context, err error) error {
	if !n.failures || !n.shouldAlert(scanFailureKey) {
		return nil
	}
	reason := "unknown"
	if err != nil {
		reason = strings.TrimSpace(err.Error())
	}
	data := payload{
		title:    "runeshot - Scan Failed",
		message:  fmt.Sprintf("❌ Could not read screenshots: %s", reason),
		tags:     []string{"runeshot", "error", "scan"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyStartupFailure(ctx context.Context, err error) error {
	reason := "unknown"
	if err != nil {
		reason = strings.TrimSpace(err.Error())
	}
	data := payload{
		title:    "runeshot - Startup Failed",
		message:  fmt.Sprintf("❌ runeshot could not start: %s", reason),
		tags:     []string{"runeshot", "error", "startup"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "runeshot - Test",
		message:  "🧪 Notification system test",
		tags:     []string{"runeshot", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

// shouldAlert records path and reports whether it has not alerted within the
// dedup window.
func (n *ntfyService) shouldAlert(path string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	now := n.now()
	if last, ok := n.lastFailure[path]; ok && n.dedupWindow > 0 && now.Sub(last) < n.dedupWindow {
		return false
	}
	for key, at := range n.lastFailure {
		if now.Sub(at) >= n.dedupWindow {
			delete(n.lastFailure, key)
		}
	}
	n.lastFailure[path] = now
	return true
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyBatchCompleted(context.Context, int, int, time.Duration) error { return nil }
func (noopService) NotifySendFailure(context.Context, string, error) error              { return nil }
func (noopService) NotifyScanFailure(context.Context, error) error                      { return nil }
func (noopService) NotifyStartupFailure(context.Context, error) error                   { return nil }
func (noopService) TestNotification(context.Context) error                              { return nil }
