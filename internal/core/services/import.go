package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"dpm-integrator/internal/core/domain"
	ports "dpm-integrator/internal/core/ports/output"
)

const DefaultPollInterval = 2500 * time.Millisecond

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// ImportService uploads a database file into an existing data model version
// and waits for the server-side import task to finish.
type ImportService struct {
	client      ports.DPMToolClient
	clock       ports.Clock
	interval    time.Duration
	waitTimeout time.Duration
	observer    ImportObserver
	logger      log.FieldLogger
}

// ImportObserver receives progress notifications. Nil fields are skipped.
type ImportObserver struct {
	// Waiting is called before each poll interval sleep.
	Waiting func()
	// UploadAccepted is called once the upload response carried a task id.
	UploadAccepted func(taskID string)
}

type ImportOption func(*ImportService)

func WithClock(c ports.Clock) ImportOption {
	return func(s *ImportService) { s.clock = c }
}

func WithPollInterval(d time.Duration) ImportOption {
	return func(s *ImportService) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithWaitTimeout bounds the total time spent polling. Zero polls until a
// terminal state is reached.
func WithWaitTimeout(d time.Duration) ImportOption {
	return func(s *ImportService) { s.waitTimeout = d }
}

func WithObserver(o ImportObserver) ImportOption {
	return func(s *ImportService) { s.observer = o }
}

func WithLogger(l log.FieldLogger) ImportOption {
	return func(s *ImportService) { s.logger = l }
}

func NewImportService(client ports.DPMToolClient, opts ...ImportOption) *ImportService {
	s := &ImportService{
		client:   client,
		clock:    systemClock{},
		interval: DefaultPollInterval,
		logger:   log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitAndAwait schedules the upload of databasePath into target and polls
// until the import task reaches a terminal status. The returned status is
// always FINISHED when err is nil.
func (s *ImportService) SubmitAndAwait(ctx context.Context, databasePath string, target *domain.DataModelVersionInfo) (*domain.TaskStatusInfo, error) {
	w := s.newWaiter()

	upload, err := s.client.ScheduleImport(ctx, databasePath, target.DataModelID)
	if err != nil {
		return nil, err
	}

	taskID, err := s.awaitUpload(ctx, w, upload)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(log.Fields{
		"task_id":            taskID,
		"data_model_version": target.ID,
	}).Info("database upload accepted, waiting for import task")
	if s.observer.UploadAccepted != nil {
		s.observer.UploadAccepted(taskID)
	}

	return s.awaitTask(ctx, w, taskID, target.ID)
}

func (s *ImportService) awaitUpload(ctx context.Context, w *waiter, upload ports.PendingUpload) (string, error) {
	for !upload.Completed() {
		if err := w.wait(ctx); err != nil {
			return "", err
		}
	}

	body, err := upload.Result()
	if err != nil {
		return "", err
	}

	taskID := strings.TrimSpace(body)
	if taskID == "" {
		return "", domain.ErrEmptyTaskID
	}
	return taskID, nil
}

func (s *ImportService) awaitTask(ctx context.Context, w *waiter, taskID, versionID string) (*domain.TaskStatusInfo, error) {
	for {
		status, err := s.client.FetchTaskStatus(ctx, taskID, versionID)
		if err != nil {
			return nil, err
		}

		s.logger.WithFields(log.Fields{
			"task_id": taskID,
			"status":  status.TaskStatus,
		}).Debug("import task status")

		if status.TaskStatus.IsTerminal() {
			if !status.TaskStatus.IsSuccess() {
				return status, &domain.TaskFailedError{TaskID: taskID, Status: status.TaskStatus}
			}
			return status, nil
		}

		if err := w.wait(ctx); err != nil {
			return nil, err
		}
	}
}

// waiter sleeps one poll interval at a time and enforces the optional
// overall deadline.
type waiter struct {
	s        *ImportService
	deadline time.Time
}

func (s *ImportService) newWaiter() *waiter {
	w := &waiter{s: s}
	if s.waitTimeout > 0 {
		w.deadline = s.clock.Now().Add(s.waitTimeout)
	}
	return w
}

func (w *waiter) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !w.deadline.IsZero() && !w.s.clock.Now().Before(w.deadline) {
		return fmt.Errorf("%w after %s", domain.ErrWaitTimeout, w.s.waitTimeout)
	}
	if w.s.observer.Waiting != nil {
		w.s.observer.Waiting()
	}
	w.s.clock.Sleep(w.s.interval)
	return nil
}
