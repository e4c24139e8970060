package services

import (
	"context"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

const activityWriteTimeout = 5 * time.Second

// ActivityDispatcher persists activity records off the request path.
// Dispatch never blocks: when the queue is full the record is dropped.
type ActivityDispatcher struct {
	repo    repositories.ActivityRepository
	inbox   chan models.ActivityRecord
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

func NewActivityDispatcher(repo repositories.ActivityRepository, buffer, workers int) *ActivityDispatcher {
	if buffer <= 0 {
		buffer = 256
	}
	if workers <= 0 {
		workers = 1
	}
	d := &ActivityDispatcher{
		repo:  repo,
		inbox: make(chan models.ActivityRecord, buffer),
	}
	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.run()
	}
	return d
}

func (d *ActivityDispatcher) Dispatch(record models.ActivityRecord) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		log.Printf("activity dispatcher closed, dropping %s for user %s", record.Action, record.UserID)
		return
	}
	select {
	case d.inbox <- record:
	default:
		d.dropped.Add(1)
		log.Printf("activity queue full, dropping %s for user %s", record.Action, record.UserID)
	}
}

// Dropped reports how many records were discarded because the queue was full
func (d *ActivityDispatcher) Dropped() uint64 {
	return d.dropped.Load()
}

// Close stops accepting records and waits until the queued ones are written
func (d *ActivityDispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.inbox)
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *ActivityDispatcher) run() {
	defer d.wg.Done()
	for record := range d.inbox {
		d.persist(record)
	}
}

func (d *ActivityDispatcher) persist(record models.ActivityRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), activityWriteTimeout)
	defer cancel()

	entry := &models.ActivityLog{
		LogID:      newShortID(),
		UserID:     record.UserID,
		Action:     record.Action,
		StatusCode: strconv.Itoa(record.StatusCode),
		UserRole:   record.UserRole,
	}
	if err := d.repo.Create(ctx, entry); err != nil {
		log.Printf("failed to record activity %s for user %s: %v", record.Action, record.UserID, err)
	}
}
