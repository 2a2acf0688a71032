package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/photodesk/internal/client/models"
	"github.com/dmitrijs2005/photodesk/internal/common"
	"github.com/dmitrijs2005/photodesk/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) SaveBatch(ctx context.Context, b models.Batch) error {
	if b.ID == "" || b.EventID == "" {
		return fmt.Errorf("%w: batch needs an id and an event id", common.ErrValidation)
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO batches (id, event_id, started_at, total, confirmed) VALUES (?, ?, ?, ?, ?)`,
			b.ID, b.EventID, b.StartedAt.UnixNano(), b.Total, b.Confirmed)
		if err != nil {
			return fmt.Errorf("failed to insert batch: %w", err)
		}

		for _, u := range b.Uploads {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO uploads (batch_id, position, path, filename, content_type,
					status, stage, reason, object_key, photo_id)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				b.ID, u.Position, u.Path, u.Filename, u.ContentType,
				string(u.Status), u.Stage, u.Reason, u.ObjectKey, u.PhotoID)
			if err != nil {
				return fmt.Errorf("failed to insert upload %d: %w", u.Position, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) LatestFailed(ctx context.Context, eventID string) (models.Batch, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, event_id, started_at, total, confirmed FROM batches
		WHERE event_id = ? ORDER BY started_at DESC, rowid DESC LIMIT 1`, eventID)

	b, err := scanBatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Batch{}, fmt.Errorf("no batch for event %s: %w", eventID, common.ErrNotFound)
	}
	if err != nil {
		return models.Batch{}, fmt.Errorf("query latest batch: %w", err)
	}

	b.Uploads, err = dbx.QueryAll(ctx, r.db, scanUpload, `
		SELECT position, path, filename, content_type, status, stage, reason, object_key, photo_id
		FROM uploads WHERE batch_id = ? AND status = ? ORDER BY position`,
		b.ID, string(models.UploadFailed))
	if err != nil {
		return models.Batch{}, fmt.Errorf("query failed uploads: %w", err)
	}
	return b, nil
}

func (r *SQLiteRepository) ListBatches(ctx context.Context, eventID string) ([]models.Batch, error) {
	query := `SELECT id, event_id, started_at, total, confirmed FROM batches`
	var args []any
	if eventID != "" {
		query += ` WHERE event_id = ?`
		args = append(args, eventID)
	}
	query += ` ORDER BY started_at DESC, rowid DESC`

	batches, err := dbx.QueryAll(ctx, r.db, func(rows *sql.Rows) (models.Batch, error) {
		return scanBatch(rows)
	}, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select batches: %w", err)
	}
	return batches, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBatch(s scanner) (models.Batch, error) {
	var (
		b       models.Batch
		started int64
	)
	if err := s.Scan(&b.ID, &b.EventID, &started, &b.Total, &b.Confirmed); err != nil {
		return models.Batch{}, err
	}
	b.StartedAt = time.Unix(0, started).UTC()
	return b, nil
}

func scanUpload(rows *sql.Rows) (models.BatchUpload, error) {
	var (
		u      models.BatchUpload
		status string
	)
	err := rows.Scan(&u.Position, &u.Path, &u.Filename, &u.ContentType,
		&status, &u.Stage, &u.Reason, &u.ObjectKey, &u.PhotoID)
	u.Status = models.UploadStatus(status)
	return u, err
}
