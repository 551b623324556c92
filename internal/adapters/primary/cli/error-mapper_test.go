package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"dpm-integrator/internal/core/domain"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "validation",
			err:  domain.ValidationErrors{{Field: "username", Problem: "missing required parameter value"}},
			want: "Error:\n- username: missing required parameter value",
		},
		{
			name: "task failed",
			err:  &domain.TaskFailedError{TaskID: "t1", Status: "ERROR"},
			want: "Database import failed. Status message: ERROR",
		},
		{
			name: "transport",
			err:  &domain.TransportError{Kind: domain.TransportTimeout, URL: "http://x/api"},
			want: "The server communication timeout. Url: http://x/api",
		},
		{
			name: "wrapped resolution",
			err:  fmt.Errorf("import: %w", &domain.ResolutionError{Name: "Sales", Err: domain.ErrAmbiguousModel}),
			want: "Import: data model selection failed: multiple data models having given name: Sales",
		},
		{
			name: "http",
			err:  &domain.HTTPError{Operation: "Listing data models", StatusCode: 503, Body: "down"},
			want: "Listing data models failed. HTTP status: 503. Response body: down",
		},
		{
			name: "other",
			err:  errors.New("boom"),
			want: "Error: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage(tt.err))
		})
	}
}
