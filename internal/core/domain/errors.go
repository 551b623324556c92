package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ============================================================================
// Session Errors
// ============================================================================

var (
	ErrNotAuthenticated = errors.New("not authenticated: authorized request attempted before authentication")
	ErrMissingToken     = errors.New("authentication response did not contain an access_token")
)

// ============================================================================
// Resolution Errors
// ============================================================================

var (
	ErrNoModelFound         = errors.New("no data model found with given name")
	ErrAmbiguousModel       = errors.New("multiple data models having given name")
	ErrModelHasNoVersion    = errors.New("data model does not have any version")
	ErrModelVersionMismatch = errors.New("data model ID and version ID do not match")
)

// ResolutionError reports why a model name could not be turned into a version.
type ResolutionError struct {
	Name string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("data model selection failed: %v: %s", e.Err, e.Name)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// ============================================================================
// Import Errors
// ============================================================================

var (
	ErrEmptyTaskID   = errors.New("database upload response did not contain a task id")
	ErrUploadPending = errors.New("database upload has not completed yet")
	ErrWaitTimeout   = errors.New("gave up waiting for the database import")
	ErrTaskFailed    = errors.New("database import failed")
)

// TaskFailedError is a terminal non-FINISHED status reported by the import
// service. Status holds the value exactly as the service sent it.
type TaskFailedError struct {
	TaskID string
	Status TaskStatus
}

func (e *TaskFailedError) Error() string {
	return fmt.Sprintf("database import failed. Status message: %s (task %s)", e.Status, e.TaskID)
}

func (e *TaskFailedError) Unwrap() error { return ErrTaskFailed }

// ============================================================================
// Transport Errors
// ============================================================================

type TransportErrorKind int

const (
	TransportUncategorized TransportErrorKind = iota
	TransportUnresolvableHost
	TransportConnectionRefused
	TransportTimeout
)

func (k TransportErrorKind) String() string {
	switch k {
	case TransportUnresolvableHost:
		return "unresolvable host"
	case TransportConnectionRefused:
		return "connection refused"
	case TransportTimeout:
		return "timeout"
	default:
		return "uncategorized"
	}
}

// TransportError is a failure below HTTP: no response was received.
type TransportError struct {
	Kind TransportErrorKind
	URL  string
	Err  error
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case TransportUnresolvableHost:
		return fmt.Sprintf("could not determine the server IP address. Url: %s", e.URL)
	case TransportConnectionRefused:
		return fmt.Sprintf("could not connect the server. Url: %s", e.URL)
	case TransportTimeout:
		return fmt.Sprintf("the server communication timeout. Url: %s", e.URL)
	default:
		return fmt.Sprintf("request failed. Url: %s: %v", e.URL, e.Err)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError is a response whose status code is outside 200-299.
type HTTPError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s failed. HTTP status: %d. Response body: %s", e.Operation, e.StatusCode, e.Body)
}

// ============================================================================
// Validation Errors
// ============================================================================

type ValidationError struct {
	Field   string
	Problem string
	Value   string
}

func (e ValidationError) String() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Field, e.Problem, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Problem)
}

// ValidationErrors keeps every violation found, in the order the checks ran.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var b strings.Builder
	b.WriteString("Error:")
	for _, v := range e {
		b.WriteString("\n- ")
		b.WriteString(v.String())
	}
	return b.String()
}

// Err returns nil for an empty list so callers can return it directly.
func (e ValidationErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
