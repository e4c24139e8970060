package background

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

const defaultArchiveBatch = 1000

type watermarkStore interface {
	GetArchiveWatermark(ctx context.Context) (time.Time, error)
	SetArchiveWatermark(ctx context.Context, until time.Time) error
}

type archiveStore interface {
	PutArchive(ctx context.Context, objectName string, data []byte) error
}

// ActivityArchiver copies activity rows newer than the watermark to object storage
type ActivityArchiver struct {
	repo      repositories.ActivityRepository
	watermark watermarkStore
	storage   archiveStore
	batch     int
	now       func() time.Time
}

func NewActivityArchiver(repo repositories.ActivityRepository, watermark watermarkStore, storage archiveStore) *ActivityArchiver {
	return &ActivityArchiver{
		repo:      repo,
		watermark: watermark,
		storage:   storage,
		batch:     defaultArchiveBatch,
		now:       time.Now,
	}
}

// Run archives one batch and returns how many rows it wrote. The watermark only
// moves after the object is stored.
func (a *ActivityArchiver) Run(ctx context.Context) (int, error) {
	since, err := a.watermark.GetArchiveWatermark(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read archive watermark: %w", err)
	}

	entries, err := a.repo.ListSince(ctx, since, a.batch)
	if err != nil {
		return 0, fmt.Errorf("failed to list activity since %s: %w", since.Format(time.RFC3339), err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	data, err := encodeLines(entries)
	if err != nil {
		return 0, err
	}

	now := a.now().UTC()
	objectName := fmt.Sprintf("activity/%s/%d.jsonl", now.Format("2006/01/02"), now.Unix())
	if err := a.storage.PutArchive(ctx, objectName, data); err != nil {
		return 0, fmt.Errorf("failed to store %s: %w", objectName, err)
	}

	last := entries[len(entries)-1].LogDate
	if err := a.watermark.SetArchiveWatermark(ctx, last); err != nil {
		return len(entries), fmt.Errorf("failed to advance archive watermark: %w", err)
	}
	return len(entries), nil
}

func encodeLines(entries []*models.ActivityLog) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			return nil, fmt.Errorf("failed to encode activity %s: %w", entry.LogID, err)
		}
	}
	return buf.Bytes(), nil
}

func (a *ActivityArchiver) runLogged(ctx context.Context) error {
	log.Printf("Starting activity archive")
	n, err := a.Run(ctx)
	if err != nil {
		log.Printf("Activity archive failed: %v", err)
		return err
	}
	log.Printf("Archived %d activity records", n)
	return nil
}
