package journal

import (
	"context"

	"github.com/dmitrijs2005/photodesk/internal/client/models"
)

// Repository persists ingest batches.
type Repository interface {
	// SaveBatch stores the batch and all its uploads atomically.
	SaveBatch(ctx context.Context, b models.Batch) error

	// LatestFailed returns the newest batch for eventID with only its failed
	// uploads attached. It returns common.ErrNotFound when no batch exists.
	LatestFailed(ctx context.Context, eventID string) (models.Batch, error)

	// ListBatches returns batch headers for eventID, newest first. An empty
	// eventID lists every event.
	ListBatches(ctx context.Context, eventID string) ([]models.Batch, error)
}
