package transport

import (
	"sync/atomic"

	"dpm-integrator/internal/core/domain"
)

type outcome struct {
	result *Result
	err    error
}

// PendingOperation holds the outcome of an enqueued request. The slot is
// written once, by the request goroutine, and read any number of times.
type PendingOperation struct {
	operation string
	url       string
	slot      atomic.Pointer[outcome]
}

func (p *PendingOperation) Completed() bool {
	return p.slot.Load() != nil
}

func (p *PendingOperation) Pending() bool {
	return !p.Completed()
}

// Result returns the response body of a completed, successful operation.
// Transport failures and non-2xx responses come back as errors.
func (p *PendingOperation) Result() (string, error) {
	o := p.slot.Load()
	if o == nil {
		return "", domain.ErrUploadPending
	}
	if o.err != nil {
		return "", o.err
	}
	if err := expectSuccess(p.operation, o.result); err != nil {
		return "", err
	}
	return string(o.result.Body), nil
}

func (p *PendingOperation) succeed(r *Result) {
	p.slot.CompareAndSwap(nil, &outcome{result: r})
}

func (p *PendingOperation) fail(err error) {
	p.slot.CompareAndSwap(nil, &outcome{err: err})
}
