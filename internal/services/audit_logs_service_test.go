package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockActivityRepository) ListSince(ctx context.Context, since time.Time, limit int) ([]*models.ActivityLog, error) {
	args := m.Called(ctx, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ActivityLog), args.Error(1)
}

// gatedActivityRepository blocks every Create until release is closed
type gatedActivityRepository struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
	mu      sync.Mutex
	entries []*models.ActivityLog
}

func (g *gatedActivityRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	g.once.Do(func() { close(g.started) })
	<-g.release
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries = append(g.entries, entry)
	return nil
}

func (g *gatedActivityRepository) ListSince(ctx context.Context, since time.Time, limit int) ([]*models.ActivityLog, error) {
	return nil, nil
}

func TestActivityDispatcher_PersistsRecords(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := &MockActivityRepository{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(entry *models.ActivityLog) bool {
		return entry.UserID == "U1" && entry.Action == models.ActionLogin && entry.StatusCode == "200" &&
			entry.UserRole == models.RoleCustomer && len(entry.LogID) == 10
	})).Return(nil).Once()

	dispatcher := NewActivityDispatcher(repo, 4, 2)
	dispatcher.Dispatch(models.ActivityRecord{UserID: "U1", Action: models.ActionLogin, UserRole: models.RoleCustomer, StatusCode: 200})
	dispatcher.Close()

	repo.AssertExpectations(t)
}

func TestActivityDispatcher_DropsWhenFull(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := &gatedActivityRepository{started: make(chan struct{}), release: make(chan struct{})}
	dispatcher := NewActivityDispatcher(repo, 1, 1)

	dispatcher.Dispatch(models.ActivityRecord{UserID: "U1", Action: models.ActionRegister, StatusCode: 201})
	<-repo.started
	dispatcher.Dispatch(models.ActivityRecord{UserID: "U2", Action: models.ActionRegister, StatusCode: 201})

	done := make(chan struct{})
	go func() {
		dispatcher.Dispatch(models.ActivityRecord{UserID: "U3", Action: models.ActionRegister, StatusCode: 201})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}

	assert.Equal(t, uint64(1), dispatcher.Dropped())
	close(repo.release)
	dispatcher.Close()

	require.Len(t, repo.entries, 2)
	assert.Equal(t, "U1", repo.entries[0].UserID)
	assert.Equal(t, "U2", repo.entries[1].UserID)
}

func TestActivityDispatcher_IgnoresAfterClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := &MockActivityRepository{}
	dispatcher := NewActivityDispatcher(repo, 1, 1)
	dispatcher.Close()
	dispatcher.Close()

	dispatcher.Dispatch(models.ActivityRecord{UserID: "U1", Action: models.ActionLogin, StatusCode: 200})
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
