// Package netutil classifies network errors.
package netutil

import (
	"errors"
	"net"
	"strings"
	"syscall"
)

// transientMarkers are substrings of errors that indicate a flaky network
// rather than a bad request. Discord and resolver errors often reach us
// flattened to text.
var transientMarkers = []string{
	"etimedout",
	"getaddrinfo",
	"took too long",
	"i/o timeout",
	"no such host",
	"temporary failure in name resolution",
	"tls handshake timeout",
}

// IsTransient reports whether err is a timeout or name resolution failure
// that is expected to clear up on its own. The CLI exits with
// ExitTransient for these so a supervisor restarts the process.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.ETIMEDOUT) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	// context.DeadlineExceeded also reports Timeout.
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// ExitTransient is the process exit status used for transient network
// failures.
const ExitTransient = 200
