package transport

import (
	"bytes"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	headerRequestID  = "X-Request-ID"
	bodySnippetBytes = 1024
)

var redactedHeaders = map[string]bool{
	"Authorization": true,
	"Cookie":        true,
	"Set-Cookie":    true,
}

// loggingRoundTripper tags each request with an X-Request-ID and logs the
// exchange: summary at info, headers at debug, body snippets at trace.
type loggingRoundTripper struct {
	next   http.RoundTripper
	logger log.FieldLogger
}

func newLoggingRoundTripper(next http.RoundTripper, logger log.FieldLogger) http.RoundTripper {
	return &loggingRoundTripper{next: next, logger: logger}
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	requestID := req.Header.Get(headerRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
		req.Header.Set(headerRequestID, requestID)
	}

	entry := l.logger.WithFields(log.Fields{
		"method":     req.Method,
		"url":        req.URL.String(),
		"request_id": requestID,
	})
	entry.Info("sending request")
	if isEnabled(l.logger, log.DebugLevel) {
		entry.WithField("headers", formatHeaders(req.Header)).Debug("request headers")
	}
	if isEnabled(l.logger, log.TraceLevel) && req.GetBody != nil {
		if body, err := req.GetBody(); err == nil {
			entry.WithField("body", snippet(body)).Trace("request body")
		}
	}

	start := time.Now()
	resp, err := l.next.RoundTrip(req)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		entry.WithFields(log.Fields{
			"latency_ms": latency,
			"error":      err.Error(),
		}).Info("request failed")
		return nil, err
	}

	respEntry := entry.WithFields(log.Fields{
		"status":     resp.StatusCode,
		"latency_ms": latency,
	})
	respEntry.Info("response received")
	if isEnabled(l.logger, log.DebugLevel) {
		respEntry.WithField("headers", formatHeaders(resp.Header)).Debug("response headers")
	}
	if isEnabled(l.logger, log.TraceLevel) {
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(body))
		if readErr == nil {
			respEntry.WithField("body", truncate(body)).Trace("response body")
		}
	}

	return resp, nil
}

func isEnabled(logger log.FieldLogger, level log.Level) bool {
	switch l := logger.(type) {
	case *log.Logger:
		return l.IsLevelEnabled(level)
	case *log.Entry:
		return l.Logger.IsLevelEnabled(level)
	default:
		return false
	}
}

func formatHeaders(h http.Header) string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		value := strings.Join(h.Values(name), ", ")
		if redactedHeaders[http.CanonicalHeaderKey(name)] {
			value = "<redacted>"
		}
		lines = append(lines, name+": "+value)
	}
	return strings.Join(lines, "; ")
}

func snippet(r io.ReadCloser) string {
	defer r.Close()
	b, _ := io.ReadAll(io.LimitReader(r, bodySnippetBytes))
	return string(b)
}

func truncate(b []byte) string {
	if len(b) > bodySnippetBytes {
		b = b[:bodySnippetBytes]
	}
	return string(b)
}
