package cli

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"dpm-integrator/internal/core/domain"
)

// errorMessage renders a command failure for the console.
func errorMessage(err error) string {
	var (
		violations    domain.ValidationErrors
		taskErr       *domain.TaskFailedError
		transportErr  *domain.TransportError
		resolutionErr *domain.ResolutionError
		httpErr       *domain.HTTPError
	)

	switch {
	// Parameter and config document problems
	case errors.As(err, &violations):
		return violations.Error()

	// Remote import task ended badly
	case errors.As(err, &taskErr):
		return "Database import failed. Status message: " + string(taskErr.Status)

	// No usable response
	case errors.As(err, &transportErr),
		errors.As(err, &resolutionErr):
		return upperFirst(err.Error())

	// Response with a failure status
	case errors.As(err, &httpErr):
		return httpErr.Error()

	default:
		return "Error: " + err.Error()
	}
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
