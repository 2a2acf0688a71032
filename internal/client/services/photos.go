package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/photodesk/internal/client/models"
	"github.com/dmitrijs2005/photodesk/internal/client/repositories/journal"
	"github.com/dmitrijs2005/photodesk/internal/common"
	"github.com/dmitrijs2005/photodesk/internal/ingest"
	"github.com/dmitrijs2005/photodesk/internal/logging"
	"github.com/google/uuid"
)

// Ingester is the part of *ingest.Orchestrator the service drives.
type Ingester interface {
	IngestBatch(ctx context.Context, batchID, eventID string, files []ingest.LocalFile) []ingest.Result
	LoadEventPhotos(ctx context.Context, eventID string) ([]models.PhotoRecord, error)
}

// ObjectStore lists and deletes raw objects in the blob store.
type ObjectStore interface {
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, key string) error
}

// ErrNoObjectStore is returned by FindOrphans when no store is configured.
var ErrNoObjectStore = errors.New("object store is not configured")

// Report is the outcome of one upload or retry run.
type Report struct {
	BatchID string
	Results []ingest.Result
	Summary ingest.Summary
}

// OrphanReport lists stored objects no confirmed photo refers to.
type OrphanReport struct {
	Prefix  string
	Scanned int
	Orphans []string
	Deleted []string
}

type PhotoService interface {
	// Upload ingests the given paths. Directories contribute their image
	// files, in name order.
	Upload(ctx context.Context, eventID string, paths []string) (Report, error)

	// UploadFiles ingests already described files.
	UploadFiles(ctx context.Context, eventID string, files []ingest.LocalFile) (Report, error)

	// Retry re-ingests the failed files of the newest journaled batch for
	// eventID. Each file gets a fresh upload slot.
	Retry(ctx context.Context, eventID string) (Report, error)

	List(ctx context.Context, eventID string) ([]models.PhotoRecord, error)
	History(ctx context.Context, eventID string) ([]models.Batch, error)

	// FindOrphans compares the keys stored under prefix with the event's
	// confirmed photos. With remove set the orphans are deleted; this fails
	// with ErrValidation when any listed photo has no object key. Objects of
	// uploads that are stored but not yet confirmed count as orphans.
	FindOrphans(ctx context.Context, eventID, prefix string, remove bool) (OrphanReport, error)
}

type photoService struct {
	ingester Ingester
	journal  journal.Repository
	store    ObjectStore
	logger   logging.Logger

	now        func() time.Time
	newBatchID func() string
}

type PhotoOption func(*photoService)

func WithObjectStore(s ObjectStore) PhotoOption {
	return func(p *photoService) { p.store = s }
}

func WithLogger(l logging.Logger) PhotoOption {
	return func(p *photoService) { p.logger = l }
}

// NewPhotoService builds the service. repo may be nil, in which case
// batches are not journaled and Retry/History report ErrNotFound.
func NewPhotoService(ing Ingester, repo journal.Repository, opts ...PhotoOption) PhotoService {
	s := &photoService{
		ingester:   ing,
		journal:    repo,
		logger:     logging.Discard(),
		now:        time.Now,
		newBatchID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *photoService) Upload(ctx context.Context, eventID string, paths []string) (Report, error) {
	files, err := collectFiles(paths)
	if err != nil {
		return Report{}, err
	}
	return s.UploadFiles(ctx, eventID, files)
}

func (s *photoService) UploadFiles(ctx context.Context, eventID string, files []ingest.LocalFile) (Report, error) {
	if strings.TrimSpace(eventID) == "" {
		return Report{}, fmt.Errorf("%w: event id is required", common.ErrValidation)
	}
	if len(files) == 0 {
		return Report{}, fmt.Errorf("%w: no files to upload", common.ErrValidation)
	}
	return s.run(ctx, eventID, files), nil
}

func (s *photoService) Retry(ctx context.Context, eventID string) (Report, error) {
	if s.journal == nil {
		return Report{}, fmt.Errorf("journal disabled: %w", common.ErrNotFound)
	}

	last, err := s.journal.LatestFailed(ctx, eventID)
	if err != nil {
		return Report{}, err
	}
	if len(last.Uploads) == 0 {
		return Report{BatchID: last.ID}, nil
	}

	files := make([]ingest.LocalFile, 0, len(last.Uploads))
	for _, u := range last.Uploads {
		if u.Path == "" {
			return Report{}, fmt.Errorf("%w: %s has no local path to retry from", common.ErrValidation, u.Filename)
		}
		f, err := ingest.FromPath(u.Path)
		if err != nil {
			return Report{}, fmt.Errorf("retry %s: %w", u.Filename, err)
		}
		files = append(files, f)
	}

	s.logger.Info(ctx, "retrying failed uploads", "event_id", eventID, "previous_batch", last.ID, "files", len(files))
	return s.run(ctx, eventID, files), nil
}

func (s *photoService) List(ctx context.Context, eventID string) ([]models.PhotoRecord, error) {
	return s.ingester.LoadEventPhotos(ctx, eventID)
}

func (s *photoService) History(ctx context.Context, eventID string) ([]models.Batch, error) {
	if s.journal == nil {
		return nil, fmt.Errorf("journal disabled: %w", common.ErrNotFound)
	}
	return s.journal.ListBatches(ctx, eventID)
}

func (s *photoService) FindOrphans(ctx context.Context, eventID, prefix string, remove bool) (OrphanReport, error) {
	if s.store == nil {
		return OrphanReport{}, ErrNoObjectStore
	}
	if prefix == "" {
		return OrphanReport{}, fmt.Errorf("%w: prefix is required", common.ErrValidation)
	}

	photos, err := s.ingester.LoadEventPhotos(ctx, eventID)
	if err != nil {
		return OrphanReport{}, fmt.Errorf("load photos: %w", err)
	}
	known := make(map[string]struct{}, 2*len(photos))
	for _, p := range photos {
		if p.ObjectKey == "" {
			if remove {
				return OrphanReport{}, fmt.Errorf("%w: photo %s is listed without an object key, refusing to delete", common.ErrValidation, p.ID)
			}
			continue
		}
		known[p.ObjectKey] = struct{}{}
		if p.PreviewKey != "" {
			known[p.PreviewKey] = struct{}{}
		}
	}

	keys, err := s.store.List(ctx, prefix)
	if err != nil {
		return OrphanReport{}, err
	}

	rep := OrphanReport{Prefix: prefix, Scanned: len(keys)}
	for _, k := range keys {
		if _, ok := known[k]; !ok {
			rep.Orphans = append(rep.Orphans, k)
		}
	}
	if !remove {
		return rep, nil
	}

	var errs []error
	for _, k := range rep.Orphans {
		if err := s.store.Delete(ctx, k); err != nil {
			errs = append(errs, err)
			continue
		}
		rep.Deleted = append(rep.Deleted, k)
	}
	s.logger.Info(ctx, "orphans removed", "event_id", eventID, "prefix", prefix, "deleted", len(rep.Deleted))
	return rep, errors.Join(errs...)
}

func (s *photoService) run(ctx context.Context, eventID string, files []ingest.LocalFile) Report {
	batchID := s.newBatchID()
	started := s.now()

	results := s.ingester.IngestBatch(ctx, batchID, eventID, files)
	rep := Report{BatchID: batchID, Results: results, Summary: ingest.Summarize(results)}

	if s.journal != nil {
		b := toBatch(batchID, eventID, started, results)
		// A cancelled run is still worth recording.
		if err := s.journal.SaveBatch(context.WithoutCancel(ctx), b); err != nil {
			s.logger.Warn(ctx, "batch not journaled", "batch_id", batchID, "error", err)
		}
	}
	return rep
}

func toBatch(id, eventID string, started time.Time, results []ingest.Result) models.Batch {
	b := models.Batch{ID: id, EventID: eventID, StartedAt: started, Total: len(results)}
	for i, r := range results {
		u := models.BatchUpload{
			Position:    i,
			Path:        r.File.Path,
			Filename:    r.File.Name,
			ContentType: r.File.ContentType,
			ObjectKey:   r.ObjectKey,
		}
		if r.Confirmed() {
			b.Confirmed++
			u.Status = models.UploadConfirmed
			u.PhotoID = r.Photo.ID
		} else {
			u.Status = models.UploadFailed
			u.Stage = string(r.Stage())
			if r.Err != nil {
				u.Reason = r.Err.Err.Error()
			}
		}
		b.Uploads = append(b.Uploads, u)
	}
	return b
}

// collectFiles resolves paths in argument order. A directory expands to the
// image files directly inside it, in name order.
func collectFiles(paths []string) ([]ingest.LocalFile, error) {
	var files []ingest.LocalFile
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrValidation, err)
		}

		if !info.IsDir() {
			f, err := ingest.FromPath(p)
			if err != nil {
				return nil, err
			}
			files = append(files, f)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.Type().IsRegular() {
				names = append(names, e.Name())
			}
		}

		for _, n := range names {
			f, err := ingest.FromPath(filepath.Join(p, n))
			if err != nil {
				return nil, err
			}
			if strings.HasPrefix(f.ContentType, "image/") {
				files = append(files, f)
			}
		}
	}
	return files, nil
}
