package ports

import (
	"context"

	"dpm-integrator/internal/core/domain"
)

// PendingUpload is an upload dispatched without blocking the caller. Its
// outcome is set once by the transport and read by polling.
type PendingUpload interface {
	// Completed reports whether the outcome has been recorded.
	Completed() bool
	// Result returns the response body or the failure. Before completion it
	// returns domain.ErrUploadPending.
	Result() (string, error)
}

// DPMToolClient defines the contract for the remote data-modeling service.
type DPMToolClient interface {
	// Session
	Authenticate(ctx context.Context, username, password string) error

	// Catalog
	ListDataModels(ctx context.Context) ([]domain.DataModelInfo, error)

	// Import
	ScheduleImport(ctx context.Context, databasePath, dataModelID string) (PendingUpload, error)
	FetchTaskStatus(ctx context.Context, taskID, dataModelVersionID string) (*domain.TaskStatusInfo, error)
}
