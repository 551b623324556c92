// Package transport executes HTTP requests for the DPM tool client and maps
// failures into domain transport and HTTP errors.
package transport

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"dpm-integrator/internal/config"
	"dpm-integrator/internal/core/domain"
)

// Result is a received response with its body fully read.
type Result struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (r *Result) IsSuccessful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

type Transport struct {
	httpClient *http.Client
	logger     log.FieldLogger
}

// New builds a transport owning its own http.Client. The connect and
// response-header timeouts are the only timeouts applied.
func New(cfg config.HTTPConfig, logger log.FieldLogger) *Transport {
	base := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   cfg.ConnectTimeout,
		ResponseHeaderTimeout: cfg.ResponseTimeout,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
	}

	return &Transport{
		httpClient: &http.Client{
			Transport: newLoggingRoundTripper(base, logger),
		},
		logger: logger,
	}
}

// Do sends req and reads the whole response. Only failures to get a response
// are errors here; see Execute for the status check.
func (t *Transport) Do(req *http.Request) (*Result, error) {
	url := req.URL.String()

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, classify(url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(url, fmt.Errorf("read response body: %w", err))
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       body,
	}, nil
}

// Execute is Do plus the 2xx check. operation names the call in HTTP errors.
func (t *Transport) Execute(req *http.Request, operation string) ([]byte, error) {
	result, err := t.Do(req)
	if err != nil {
		return nil, err
	}
	if err := expectSuccess(operation, result); err != nil {
		return nil, err
	}
	return result.Body, nil
}

// Enqueue starts req on its own goroutine and returns immediately. The
// goroutine only records the outcome.
func (t *Transport) Enqueue(req *http.Request, operation string) *PendingOperation {
	op := &PendingOperation{operation: operation, url: req.URL.String()}

	t.logger.WithFields(log.Fields{
		"operation": operation,
		"url":       op.url,
	}).Debug("dispatching asynchronous request")

	go func() {
		result, err := t.Do(req)
		if err != nil {
			op.fail(err)
			return
		}
		op.succeed(result)
	}()

	return op
}

func expectSuccess(operation string, result *Result) error {
	if result.IsSuccessful() {
		return nil
	}
	return &domain.HTTPError{
		Operation:  operation,
		StatusCode: result.StatusCode,
		Body:       string(result.Body),
	}
}
