package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"dpm-integrator/internal/core/domain"
	ports "dpm-integrator/internal/core/ports/output"
)

// MockDPMToolClient is a mock of DPMToolClient.
type MockDPMToolClient struct {
	mock.Mock
}

func (m *MockDPMToolClient) Authenticate(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

func (m *MockDPMToolClient) ListDataModels(ctx context.Context) ([]domain.DataModelInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DataModelInfo), args.Error(1)
}

func (m *MockDPMToolClient) ScheduleImport(ctx context.Context, databasePath, dataModelID string) (ports.PendingUpload, error) {
	args := m.Called(ctx, databasePath, dataModelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.PendingUpload), args.Error(1)
}

func (m *MockDPMToolClient) FetchTaskStatus(ctx context.Context, taskID, dataModelVersionID string) (*domain.TaskStatusInfo, error) {
	args := m.Called(ctx, taskID, dataModelVersionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskStatusInfo), args.Error(1)
}

// ScriptedUpload stays pending for PendingPolls calls to Completed, then
// reports Body or Err.
type ScriptedUpload struct {
	PendingPolls int
	Body         string
	Err          error

	mu    sync.Mutex
	polls int
}

func (u *ScriptedUpload) Completed() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.polls++
	return u.polls > u.PendingPolls
}

func (u *ScriptedUpload) Result() (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.polls <= u.PendingPolls {
		return "", domain.ErrUploadPending
	}
	return u.Body, u.Err
}

// FakeClock records sleeps and advances its time by each of them.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

func (c *FakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}
