package transport

import (
	"context"
	"errors"
	"net"
	"syscall"

	"dpm-integrator/internal/core/domain"
)

// classify wraps a failed request into a TransportError of the matching kind.
// Timeouts win over dial errors so a connect timeout reads as a timeout.
// Dial failures other than a refused connection stay uncategorized.
func classify(url string, err error) *domain.TransportError {
	return &domain.TransportError{Kind: kindOf(err), URL: url, Err: err}
}

func kindOf(err error) domain.TransportErrorKind {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && !dnsErr.IsTimeout {
		return domain.TransportUnresolvableHost
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return domain.TransportTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.TransportTimeout
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return domain.TransportConnectionRefused
	}

	return domain.TransportUncategorized
}
