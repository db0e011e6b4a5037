package netutil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "dial tcp: deadline" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain", err: errors.New("403 Forbidden: Missing Access"), want: false},
		{name: "deadline", err: fmt.Errorf("send: %w", context.DeadlineExceeded), want: true},
		{name: "etimedout errno", err: &net.OpError{Op: "dial", Err: syscall.ETIMEDOUT}, want: true},
		{name: "dns", err: &url.Error{Op: "Get", URL: "https://discord.com", Err: &net.DNSError{Err: "no such host", Name: "discord.com"}}, want: true},
		{name: "net timeout", err: &url.Error{Op: "Post", URL: "https://discord.com", Err: timeoutErr{}}, want: true},
		{name: "getaddrinfo text", err: errors.New("getaddrinfo ENOTFOUND discord.com"), want: true},
		{name: "took too long text", err: errors.New("Request took too long"), want: true},
		{name: "ETIMEDOUT text", err: errors.New("connect ETIMEDOUT 162.159.128.233:443"), want: true},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "connection reset", err: errors.New("read tcp: connection reset by peer"), want: false},
		{name: "errno reset", err: &net.OpError{Op: "read", Err: syscall.ECONNRESET}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Fatalf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
