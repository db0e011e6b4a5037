package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client queries a running daemon's status API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient builds a client for bind, which may be a host:port listener
// address or a full URL.
func NewClient(bind, token string) (*Client, error) {
	bind = strings.TrimSpace(bind)
	if bind == "" {
		return nil, errors.New("api bind address is not configured")
	}
	base := bind
	if !strings.Contains(base, "://") {
		if strings.HasPrefix(base, ":") || strings.HasPrefix(base, "0.0.0.0:") {
			base = "127.0.0.1:" + base[strings.LastIndex(base, ":")+1:]
		}
		base = "http://" + base
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		token:   token,
		http:    &http.Client{Timeout: 5 * time.Second},
	}, nil
}

// Status fetches /api/status.
func (c *Client) Status(ctx context.Context) (DaemonStatus, error) {
	var status DaemonStatus
	err := c.get(ctx, "/api/status", &status)
	return status, err
}

// Ledger fetches /api/ledger.
func (c *Client) Ledger(ctx context.Context) (LedgerResponse, error) {
	var resp LedgerResponse
	err := c.get(ctx, "/api/ledger", &resp)
	return resp, err
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("query daemon: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr ErrorResponse
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("daemon returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("daemon returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
